package controller

import (
	"net/http"
	"time"
)

// TimeoutResponse is the body written when a request runs out of time.
const TimeoutResponse = `{"error":"request timed out"}`

// WithTimeout returns a middleware bounding request handling to d. A request
// still running after d gets a 500 JSON error and its handler's output is
// discarded.
func WithTimeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		th := http.TimeoutHandler(next, d, TimeoutResponse)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			th.ServeHTTP(&timeoutWriter{ResponseWriter: w}, r)
		})
	}
}

// timeoutWriter rewrites the bare 503 http.TimeoutHandler answers on expiry.
// Handler responses reach it with their own headers already copied, so only
// the expiry reply lacks a Content-Type.
type timeoutWriter struct {
	http.ResponseWriter
}

func (w *timeoutWriter) WriteHeader(code int) {
	if code == http.StatusServiceUnavailable && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
		code = http.StatusInternalServerError
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *timeoutWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
