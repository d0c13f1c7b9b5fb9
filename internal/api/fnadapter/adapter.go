// Package fnadapter serves lookups from a generic function-style event:
// a method, a query, headers and a body in, a status code, headers and a
// body out. It suits serverless runtimes and the invoke command.
package fnadapter

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"usercheck/internal/api/transport"
	"usercheck/internal/lookup"
	"usercheck/pkg/controller"
)

// Request is an incoming event.
type Request struct {
	Method string
	// Query holds query parameters; multiple values are allowed.
	Query   url.Values
	Headers map[string]string
	Body    []byte
}

// Response is the outgoing result.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// Adapter translates events into lookups.
type Adapter struct {
	checker lookup.Checker
}

// New returns an Adapter backed by checker.
func New(checker lookup.Checker) *Adapter {
	return &Adapter{checker: checker}
}

// Invoke handles one event. It always returns a response; panics become a
// 500 JSON error.
func (a *Adapter) Invoke(ctx context.Context, req Request) (resp Response) {
	cors := controller.CORSHeaders()
	headers := make(map[string]string, len(cors)+1)
	for k := range cors {
		headers[k] = cors.Get(k)
	}

	defer func() {
		if p := recover(); p != nil {
			headers["Content-Type"] = transport.ContentType
			status, body := transport.PanicBody(ctx, p)
			resp = Response{StatusCode: status, Headers: headers, Body: body}
		}
	}()

	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}
	if method == http.MethodOptions {
		return Response{StatusCode: http.StatusNoContent, Headers: headers}
	}

	status, body := transport.Handle(ctx, a.checker, method, req.Query, req.Body)
	headers["Content-Type"] = transport.ContentType

	return Response{StatusCode: status, Headers: headers, Body: body}
}
