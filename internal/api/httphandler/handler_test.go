package httphandler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"usercheck/internal/api/httphandler"
	"usercheck/internal/lookup"
	mocklookup "usercheck/internal/lookup/mock"
	"usercheck/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment, "")
	m.Run()
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func TestHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	checker := mocklookup.NewMockChecker(ctrl)

	req := lookup.NewRequest("alice")
	req.IncludeNSFW = true
	req.OnlyClaimed = false
	checker.EXPECT().Check(gomock.Any(), req).
		Return(&lookup.Response{Username: "alice", TotalSites: 0, Results: []lookup.SiteResult{}}, nil)

	rec := serve(httphandler.New(checker), http.MethodGet, "/?username=alice&nsfw=true&only_found=false", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.JSONEq(t, `{"username":"alice","total_sites":0,"results":[]}`, rec.Body.String())
}

func TestHandler_PostMissingUsername(t *testing.T) {
	ctrl := gomock.NewController(t)

	rec := serve(httphandler.New(mocklookup.NewMockChecker(ctrl)), http.MethodPost, "/", `{"sites":["GitHub"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"username is required"}`, rec.Body.String())
}

func TestHandler_Preflight(t *testing.T) {
	ctrl := gomock.NewController(t)

	rec := serve(httphandler.New(mocklookup.NewMockChecker(ctrl)), http.MethodOptions, "/", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	require.Empty(t, rec.Body.String())
}

func TestHandler_Panic(t *testing.T) {
	ctrl := gomock.NewController(t)
	checker := mocklookup.NewMockChecker(ctrl)
	checker.EXPECT().Check(gomock.Any(), gomock.Any()).Do(func(any, any) { panic("boom") })

	rec := serve(httphandler.New(checker), http.MethodGet, "/?username=alice", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)

	rec := serve(httphandler.New(mocklookup.NewMockChecker(ctrl)), http.MethodPatch, "/", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.JSONEq(t, `{"error":"method PATCH not allowed"}`, rec.Body.String())
}
