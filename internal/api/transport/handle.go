package transport

import (
	"context"
	"net/http"
	"net/url"
	"usercheck/internal/lookup"
	"usercheck/pkg/serrors"

	"github.com/go-faster/jx"
)

// Handle serves one lookup: GET reads the query, POST reads the JSON body.
// It returns the status code and the encoded body.
func Handle(ctx context.Context, checker lookup.Checker, method string, query url.Values, body []byte) (int, []byte) {
	var (
		req lookup.Request
		err error
	)
	switch method {
	case http.MethodGet:
		req, err = FromQuery(query)
	case http.MethodPost:
		req, err = FromBody(body)
	default:
		err = serrors.With(serrors.ErrMethodNotAllowed, "method %s not allowed", method)
	}
	if err != nil {
		return EncodeError(ctx, err)
	}

	resp, err := checker.Check(ctx, req)
	if err != nil {
		return EncodeError(ctx, err)
	}

	var e jx.Encoder
	EncodeResponse(&e, resp)

	return http.StatusOK, e.Bytes()
}
