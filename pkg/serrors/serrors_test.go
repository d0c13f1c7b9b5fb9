package serrors_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"usercheck/pkg/serrors"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestErrorFormatting(t *testing.T) {
	base := errors.New("connection refused")

	e1 := serrors.With(serrors.ErrBadRequest, "no valid sites from: %v", []string{"x"})
	require.Equal(t, "no valid sites from: [x]", e1.Error())

	e2 := serrors.Wrap(serrors.ErrUnavailable, base, "loading catalog")
	require.Equal(t, "loading catalog: connection refused", e2.Error())

	e3 := serrors.KindOnly(serrors.ErrTimeout)
	require.Equal(t, "TIMEOUT", e3.Error())
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrInternal, base, "enumerating")

	require.ErrorIs(t, e, serrors.ErrInternal)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrBadRequest)
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrBadRequest, base, "reading")

	var k serrors.Kind
	require.ErrorAs(t, e, &k)
	require.Equal(t, serrors.ErrBadRequest, k)

	var ce *customError
	require.ErrorAs(t, e, &ce)
	require.Equal(t, base, ce)
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrUnavailable, base, "no catalog")
	require.Equal(t, serrors.ErrUnavailable, e.Kind())
	require.Equal(t, "no catalog", e.Message())
	require.Equal(t, base, e.Cause())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad request", serrors.With(serrors.ErrBadRequest, "bad"), http.StatusBadRequest},
		{"wrapped bad request", fmt.Errorf("outer: %w", serrors.KindOnly(serrors.ErrBadRequest)), http.StatusBadRequest},
		{"method", serrors.KindOnly(serrors.ErrMethodNotAllowed), http.StatusMethodNotAllowed},
		{"timeout", serrors.KindOnly(serrors.ErrTimeout), http.StatusInternalServerError},
		{"unavailable", serrors.KindOnly(serrors.ErrUnavailable), http.StatusInternalServerError},
		{"plain", errors.New("plain"), http.StatusInternalServerError},
		{"context", context.Canceled, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, serrors.HTTPStatus(tt.err))
		})
	}
}

func TestKindOf_DefaultsToInternal(t *testing.T) {
	require.Equal(t, serrors.ErrInternal, serrors.KindOf(errors.New("x")))
	require.Equal(t, serrors.ErrBadRequest, serrors.KindOf(serrors.KindOnly(serrors.ErrBadRequest)))
}
