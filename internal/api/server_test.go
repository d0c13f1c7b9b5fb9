package api_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"usercheck/internal/api"
	"usercheck/internal/lookup"
	mocklookup "usercheck/internal/lookup/mock"
	"usercheck/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment, "")
	m.Run()
}

func newTestServer(t *testing.T, opts api.Options) (*mocklookup.MockChecker, *httptest.Server) {
	t.Helper()

	ctrl := gomock.NewController(t)
	checker := mocklookup.NewMockChecker(ctrl)
	reg := prometheus.NewRegistry()

	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}
	h, err := api.NewHandler(api.Deps{Checker: checker, Registerer: reg, Gatherer: reg}, opts)
	require.NoError(t, err)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return checker, srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()

	resp, err := http.Get(url) //nolint: noctx
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(b)
}

func TestServer_Bindings(t *testing.T) {
	checker, srv := newTestServer(t, api.Options{})

	checker.EXPECT().Check(gomock.Any(), lookup.NewRequest("alice")).
		Return(&lookup.Response{Username: "alice", Results: []lookup.SiteResult{}}, nil).Times(2)

	for _, path := range []string{"/", "/raw"} {
		resp, body := get(t, srv.URL+path+"?username=alice")
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		require.NotEmpty(t, resp.Header.Get("X-Request-Id"), path)
		require.JSONEq(t, `{"username":"alice","total_sites":0,"results":[]}`, body, path)
	}
}

func TestServer_Ancillary(t *testing.T) {
	_, srv := newTestServer(t, api.Options{})

	resp, body := get(t, srv.URL+"/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"status":"ok"}`, body)

	resp, body = get(t, srv.URL+"/specs/v1.yaml")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "openapi: 3.0.3")

	resp, _ = get(t, srv.URL+"/docs/")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = get(t, srv.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "http_requests_total")

	resp, _ = get(t, srv.URL+"/debug/pprof/")
	require.NotEqual(t, http.StatusOK, resp.StatusCode, "pprof is disabled by default")
}

func TestServer_Pprof(t *testing.T) {
	_, srv := newTestServer(t, api.Options{Pprof: true})

	resp, _ := get(t, srv.URL+"/debug/pprof/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_RequestTimeout(t *testing.T) {
	checker, srv := newTestServer(t, api.Options{RequestTimeout: 50 * time.Millisecond})

	checker.EXPECT().Check(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ lookup.Request) (*lookup.Response, error) {
			<-ctx.Done()

			return nil, ctx.Err()
		}).AnyTimes()

	resp, body := get(t, srv.URL+"/?username=slow")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.JSONEq(t, `{"error":"request timed out"}`, strings.TrimSpace(body))
}

func TestServer_MetricsLabelledByRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	h, err := api.NewHandler(api.Deps{
		Checker:    mocklookup.NewMockChecker(gomock.NewController(t)),
		Registerer: reg,
		Gatherer:   reg,
	}, api.Options{MetricsPath: "/metrics"})
	require.NoError(t, err)

	for i := range 500 {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, fmt.Sprintf("/scan-%d", i), nil))
	}

	n, err := testutil.GatherAndCount(reg, "http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
