package controller

import "net/http"

// CORSHeaders returns the permissive CORS headers set on every response.
func CORSHeaders() http.Header {
	return http.Header{
		"Access-Control-Allow-Origin":  []string{"*"},
		"Access-Control-Allow-Headers": []string{"Content-Type"},
		"Access-Control-Allow-Methods": []string{"GET, POST, OPTIONS"},
	}
}

// SetCORS copies CORSHeaders onto h.
func SetCORS(h http.Header) {
	for k, v := range CORSHeaders() {
		h[k] = v
	}
}

// WithCORS returns a middleware that sets permissive CORS headers on every
// response and short-circuits OPTIONS preflight requests with 204 No Content.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetCORS(w.Header())

		// handle preflight requests quickly
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)

			return
		}

		next.ServeHTTP(w, r)
	})
}
