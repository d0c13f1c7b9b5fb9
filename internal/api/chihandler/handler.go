// Package chihandler exposes the lookup endpoint as a go-chi route.
package chihandler

import (
	"io"
	"net/http"
	"usercheck/internal/api/transport"
	"usercheck/internal/lookup"
	"usercheck/pkg/controller"
	"usercheck/pkg/serrors"

	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds POST bodies.
const maxBodyBytes = 1 << 20

// New returns a router serving GET, POST and OPTIONS on "/".
func New(checker lookup.Checker) http.Handler {
	h := &handler{checker: checker}

	r := chi.NewRouter()
	r.Use(controller.WithRecover)
	r.Use(controller.WithCORS)
	r.MethodNotAllowed(h.methodNotAllowed)
	r.Get("/", h.lookup)
	r.Post("/", h.lookup)

	return r
}

type handler struct {
	checker lookup.Checker
}

func (h *handler) lookup(w http.ResponseWriter, r *http.Request) {
	var body []byte
	if r.Method == http.MethodPost {
		var err error
		body, err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			write(w, transport.ErrorBody("invalid request body"), http.StatusBadRequest)

			return
		}
	}

	status, resp := transport.Handle(r.Context(), h.checker, r.Method, r.URL.Query(), body)
	write(w, resp, status)
}

func (h *handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	status, body := transport.EncodeError(r.Context(),
		serrors.With(serrors.ErrMethodNotAllowed, "method %s not allowed", r.Method))
	write(w, body, status)
}

func write(w http.ResponseWriter, body []byte, status int) {
	w.Header().Set("Content-Type", transport.ContentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
