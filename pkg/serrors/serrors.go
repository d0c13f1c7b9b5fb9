// Package serrors provides semantic error kinds that survive wrapping and map
// onto HTTP status codes at the transport boundary.
package serrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a marker interface implemented by all semantic error kinds created
// with NewKind.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind (a sentinel).
func NewKind(name string) Kind { return kind{s: name} }

var (
	// ErrBadRequest indicates the caller sent input that cannot be served.
	ErrBadRequest = NewKind("BAD_REQUEST")
	// ErrMethodNotAllowed indicates the HTTP method is not supported by the endpoint.
	ErrMethodNotAllowed = NewKind("METHOD_NOT_ALLOWED")
	// ErrInternal indicates a server side fault.
	ErrInternal = NewKind("INTERNAL")
	// ErrTimeout indicates the operation did not finish in time. It is a server
	// side failure like ErrInternal.
	ErrTimeout = NewKind("TIMEOUT")
	// ErrUnavailable indicates a dependency (catalog source, engine) could not be reached.
	ErrUnavailable = NewKind("UNAVAILABLE")
)

// Error carries a kind, an optional wrapped cause and an optional message.
//
// errors.Is and errors.As match either the kind or the wrapped cause.
// Error() renders "<msg>: <cause>", "<msg>", "<cause>" or the kind name,
// depending on which parts are set.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With constructs a semantic error with a formatted message.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a semantic error wrapping err with a formatted message.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly creates a semantic error carrying only the kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	case e.kind != nil:
		return e.kind.Error()
	default:
		return "unknown error"
	}
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.err }

// Is matches against the kind or the wrapped cause.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}

	return e.err != nil && errors.Is(e.err, target)
}

// As extracts either the kind or something in the cause chain.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}

	return e.err != nil && errors.As(e.err, target)
}

// Kind returns the kind sentinel, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message attached to this error.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped cause (may be nil).
func (e *Error) Cause() error { return e.err }

// statuses lists kinds in the order they are checked by KindOf.
var statuses = []struct { //nolint: gochecknoglobals
	kind   Kind
	status int
}{
	{ErrBadRequest, http.StatusBadRequest},
	{ErrMethodNotAllowed, http.StatusMethodNotAllowed},
	{ErrTimeout, http.StatusInternalServerError},
	{ErrUnavailable, http.StatusInternalServerError},
	{ErrInternal, http.StatusInternalServerError},
}

// KindOf returns the first known kind found in err's chain, or ErrInternal.
func KindOf(err error) Kind {
	for _, s := range statuses {
		if errors.Is(err, s.kind) {
			return s.kind
		}
	}

	return ErrInternal
}

// HTTPStatus maps err onto an HTTP status code. Unknown errors are 500.
func HTTPStatus(err error) int {
	k := KindOf(err)
	for _, s := range statuses {
		if s.kind == k {
			return s.status
		}
	}

	return http.StatusInternalServerError
}
