package transport

import (
	"context"
	"net/http"
	"usercheck/internal/lookup"
	"usercheck/pkg/logger"
	"usercheck/pkg/serrors"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// ContentType is the media type of every response body.
const ContentType = "application/json"

// EncodeResponse renders a lookup response.
func EncodeResponse(e *jx.Encoder, resp *lookup.Response) {
	e.ObjStart()
	e.FieldStart("username")
	e.Str(resp.Username)
	e.FieldStart("total_sites")
	e.Int(resp.TotalSites)
	e.FieldStart("results")
	e.ArrStart()
	for _, r := range resp.Results {
		e.ObjStart()
		e.FieldStart("site")
		e.Str(r.Site)
		e.FieldStart("url_main")
		optStrEnc(e, r.URLMain)
		e.FieldStart("url_user")
		optStrEnc(e, r.URLUser)
		e.FieldStart("status")
		e.Str(r.Status)
		e.FieldStart("http_status")
		if r.HTTPStatus != nil {
			e.Int(*r.HTTPStatus)
		} else {
			e.Null()
		}
		e.FieldStart("response_time_s")
		if r.ResponseTimeS != nil {
			e.Float64(*r.ResponseTimeS)
		} else {
			e.Null()
		}
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()
}

func optStrEnc(e *jx.Encoder, s *string) {
	if s == nil {
		e.Null()

		return
	}
	e.Str(*s)
}

// ErrorBody renders {"error": msg}.
func ErrorBody(msg string) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("error")
	e.Str(msg)
	e.ObjEnd()

	return e.Bytes()
}

// EncodeError maps err onto a status code and an error body. Server side
// failures are logged.
func EncodeError(ctx context.Context, err error) (int, []byte) {
	status := serrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(ctx, "lookup failed", zap.Error(err))
	} else {
		logger.Debug(ctx, "rejected lookup", zap.Error(err))
	}

	return status, ErrorBody(err.Error())
}

// PanicBody is returned when a handler panics.
func PanicBody(ctx context.Context, p any) (int, []byte) {
	logger.Error(ctx, "recovered from panic", zap.Any("panic", p), zap.Stack("stack"))

	return http.StatusInternalServerError, ErrorBody("internal server error")
}
