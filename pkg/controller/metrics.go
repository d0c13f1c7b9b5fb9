package controller

import (
	"net/http"
	"strconv"
	"time"
	"usercheck/pkg/metrics"
)

// UnmatchedRoute labels requests that no ServeMux pattern matched.
const UnmatchedRoute = "other"

// WithMetrics returns a middleware recording request count and duration by
// method, route and status. The route is the ServeMux pattern that served the
// request, so next must be (or wrap without cloning the request) a ServeMux.
func WithMetrics(m *metrics.HTTP) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.Pattern
			if route == "" {
				route = UnmatchedRoute
			}
			status := strconv.Itoa(rec.status)
			m.Duration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
			m.Requests.WithLabelValues(r.Method, route, status).Inc()
		})
	}
}
