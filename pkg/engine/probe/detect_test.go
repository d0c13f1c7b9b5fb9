package probe

import (
	"net/http"
	"testing"

	"usercheck/pkg/domain"

	"github.com/stretchr/testify/require"
)

func TestMethod(t *testing.T) {
	require.Equal(t, http.MethodHead, method(domain.Site{ErrorTypes: []domain.ErrorType{domain.ErrorTypeStatusCode}}))
	require.Equal(t, http.MethodGet, method(domain.Site{ErrorTypes: []domain.ErrorType{domain.ErrorTypeMessage}}))
	require.Equal(t, http.MethodGet, method(domain.Site{
		ErrorTypes: []domain.ErrorType{domain.ErrorTypeStatusCode, domain.ErrorTypeMessage},
	}))
	require.Equal(t, http.MethodPost, method(domain.Site{RequestMethod: "post"}))
}

func TestClassify_MultipleRules(t *testing.T) {
	site := domain.Site{
		ErrorTypes:    []domain.ErrorType{domain.ErrorTypeStatusCode, domain.ErrorTypeMessage},
		ErrorMessages: []string{"gone"},
	}

	s, _ := classify(site, http.StatusOK, "hello")
	require.Equal(t, domain.StatusClaimed, s)

	s, _ = classify(site, http.StatusOK, "user is gone")
	require.Equal(t, domain.StatusAvailable, s)

	s, _ = classify(site, http.StatusNotFound, "hello")
	require.Equal(t, domain.StatusAvailable, s)
}

func TestPayload_EscapesUsername(t *testing.T) {
	got := payload([]byte(`{"u":"{}"}`), `a"b`)
	require.JSONEq(t, `{"u":"a\"b"}`, string(got))
}
