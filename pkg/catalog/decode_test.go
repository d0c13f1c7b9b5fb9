package catalog_test

import (
	"os"
	"testing"

	"usercheck/pkg/catalog"
	"usercheck/pkg/domain"

	"github.com/stretchr/testify/require"
)

func TestDecode_PreservesDocumentOrder(t *testing.T) {
	data, err := os.ReadFile("testdata/sites.json")
	require.NoError(t, err)

	c, err := catalog.Decode(data)
	require.NoError(t, err)

	// "Apple" comes last in the document and must stay last.
	require.Equal(t, []string{"GitHub", "Reddit", "Archive.org", "AdultSite", "Apple"}, c.Names())
}

func TestDecode_Fields(t *testing.T) {
	data, err := os.ReadFile("testdata/sites.json")
	require.NoError(t, err)
	c, err := catalog.Decode(data)
	require.NoError(t, err)

	gh, ok := c.Get("GitHub")
	require.True(t, ok)
	require.Equal(t, "https://www.github.com/{}", gh.URL)
	require.Equal(t, "https://www.github.com/", gh.URLMain)
	require.Equal(t, []domain.ErrorType{domain.ErrorTypeStatusCode}, gh.ErrorTypes)
	require.NotEmpty(t, gh.RegexCheck)
	require.False(t, gh.NSFW)

	reddit, _ := c.Get("Reddit")
	require.Equal(t, []string{"Sorry, nobody on Reddit goes by that name.", "Page not found"}, reddit.ErrorMessages)
	require.Equal(t, map[string]string{"accept-language": "en-US,en;q=0.9"}, reddit.Headers)

	archive, _ := c.Get("Archive.org")
	require.Equal(t, []int{404, 410}, archive.ErrorCodes)
	require.Equal(t, []domain.ErrorType{domain.ErrorTypeStatusCode, domain.ErrorTypeMessage}, archive.ErrorTypes)
	require.Equal(t, []string{"cannot find account"}, archive.ErrorMessages)
	require.Equal(t, "POST", archive.RequestMethod)
	require.JSONEq(t, `{"query": "{}"}`, string(archive.RequestPayload))
	require.Equal(t, "https://archive.org/advancedsearch.php?q={}", archive.URLProbe)

	adult, _ := c.Get("AdultSite")
	require.True(t, adult.NSFW)
	require.Equal(t, "https://adult.example/", adult.ErrorURL)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not an object", `[]`},
		{"site not an object", `{"A": 1}`},
		{"missing url", `{"A": {"urlMain": "https://a"}}`},
		{"bad error code", `{"A": {"url": "https://a/{}", "errorCode": "x"}}`},
		{"truncated", `{"A": {"url": "https://a/{}"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Decode([]byte(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	c, err := catalog.Decode([]byte(`{"$schema": "x"}`))
	require.NoError(t, err)
	require.Equal(t, 0, c.Len())
}
