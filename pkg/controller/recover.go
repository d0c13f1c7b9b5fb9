package controller

import (
	"errors"
	"net/http"
	"usercheck/pkg/logger"

	"go.uber.org/zap"
)

// PanicResponse is the body written when a handler panics.
const PanicResponse = `{"error":"internal server error"}`

// WithRecover returns a middleware that turns a panic into a 500 JSON error.
// http.ErrAbortHandler is re-raised so the server can abort the connection.
func WithRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if err, ok := p.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(p)
			}

			logger.Error(r.Context(), "recovered from panic",
				zap.Any("panic", p),
				zap.Stack("stack"),
				zap.String("url", r.URL.String()))

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(PanicResponse))
		}()

		next.ServeHTTP(w, r)
	})
}
