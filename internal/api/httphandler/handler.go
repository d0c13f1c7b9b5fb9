// Package httphandler exposes the lookup endpoint as a plain net/http
// handler with no router or middleware stack.
package httphandler

import (
	"io"
	"net/http"
	"usercheck/internal/api/transport"
	"usercheck/internal/lookup"
	"usercheck/pkg/controller"
)

const maxBodyBytes = 1 << 20

// Handler answers lookups on any path. It sets CORS headers itself, answers
// preflight with 204 and never lets a panic escape without a JSON body.
type Handler struct {
	checker lookup.Checker
}

var _ http.Handler = (*Handler)(nil)

// New returns a Handler backed by checker.
func New(checker lookup.Checker) *Handler {
	return &Handler{checker: checker}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	controller.SetCORS(w.Header())
	w.Header().Set("Content-Type", transport.ContentType)

	defer func() {
		if p := recover(); p != nil {
			status, body := transport.PanicBody(r.Context(), p)
			w.WriteHeader(status)
			_, _ = w.Write(body)
		}
	}()

	if r.Method == http.MethodOptions {
		w.Header().Del("Content-Type")
		w.WriteHeader(http.StatusNoContent)

		return
	}

	var body []byte
	if r.Method == http.MethodPost {
		var err error
		if body, err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes)); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write(transport.ErrorBody("invalid request body"))

			return
		}
	}

	status, resp := transport.Handle(r.Context(), h.checker, r.Method, r.URL.Query(), body)
	w.WriteHeader(status)
	_, _ = w.Write(resp)
}
