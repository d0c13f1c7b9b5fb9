package chihandler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"usercheck/internal/api/chihandler"
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

func TestHandler(t *testing.T) {
	okResp := &lookup.Response{Username: "alice", TotalSites: 1, Results: []lookup.SiteResult{}}

	tests := []struct {
		name   string
		method string
		target string
		body   string
		expect func(m *mocklookup.MockChecker)
		status int
		want   string
	}{
		{
			name:   "get",
			method: http.MethodGet,
			target: "/?username=alice&sites=GitHub,github",
			expect: func(m *mocklookup.MockChecker) {
				req := lookup.NewRequest("alice")
				req.Sites = []string{"GitHub", "github"}
				m.EXPECT().Check(gomock.Any(), req).Return(okResp, nil)
			},
			status: http.StatusOK,
			want:   `{"username":"alice","total_sites":1,"results":[]}`,
		},
		{
			name:   "post",
			method: http.MethodPost,
			target: "/",
			body:   `{"username":"alice","sites":["GitHub"],"max_sites":2}`,
			expect: func(m *mocklookup.MockChecker) {
				req := lookup.NewRequest("alice")
				req.Sites = []string{"GitHub"}
				req.MaxSites = 2
				m.EXPECT().Check(gomock.Any(), req).Return(okResp, nil)
			},
			status: http.StatusOK,
			want:   `{"username":"alice","total_sites":1,"results":[]}`,
		},
		{
			name:   "missing username",
			method: http.MethodGet,
			target: "/",
			status: http.StatusBadRequest,
			want:   `{"error":"username is required"}`,
		},
		{
			name:   "invalid sites",
			method: http.MethodPost,
			target: "/",
			body:   `{"username":"bob","sites":["NotARealSite123"]}`,
			expect: func(m *mocklookup.MockChecker) {
				m.EXPECT().Check(gomock.Any(), gomock.Any()).
					Return(nil, &lookup.InvalidInputError{Missing: []string{"NotARealSite123"}})
			},
			status: http.StatusBadRequest,
			want:   `{"error":"no valid sites from: [\"NotARealSite123\"]"}`,
		},
		{
			name:   "panic",
			method: http.MethodGet,
			target: "/?username=alice",
			expect: func(m *mocklookup.MockChecker) {
				m.EXPECT().Check(gomock.Any(), gomock.Any()).Do(func(any, any) { panic("nil map") })
			},
			status: http.StatusInternalServerError,
			want:   `{"error":"internal server error"}`,
		},
		{
			name:   "method not allowed",
			method: http.MethodPut,
			target: "/",
			status: http.StatusMethodNotAllowed,
			want:   `{"error":"method PUT not allowed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			checker := mocklookup.NewMockChecker(ctrl)
			if tt.expect != nil {
				tt.expect(checker)
			}

			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			chihandler.New(checker).ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code)
			require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
			require.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestHandler_Preflight(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := chihandler.New(mocklookup.NewMockChecker(ctrl))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	require.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}
