package catalog_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"usercheck/pkg/catalog"

	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

const smallCatalog = `{"A": {"url": "https://a/{}", "errorType": "status_code"}}`

func newTestLoader(fn rtFunc, opts catalog.Options) *catalog.Loader {
	return catalog.NewLoader(&http.Client{Transport: fn}, opts)
}

func TestLoader_DefaultLocator(t *testing.T) {
	var requested string
	l := newTestLoader(func(r *http.Request) (*http.Response, error) {
		requested = r.URL.String()

		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(smallCatalog))}, nil
	}, catalog.Options{})

	c, err := l.Load(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, catalog.DefaultLocator, requested)
	require.Equal(t, []string{"A"}, c.Names())
}

func TestLoader_RemoteOverride(t *testing.T) {
	l := newTestLoader(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "custom.example", r.URL.Host)

		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(smallCatalog))}, nil
	}, catalog.Options{DefaultLocator: "https://default.example/data.json"})

	c, err := l.Load(context.Background(), "https://custom.example/data.json")
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
}

func TestLoader_RemoteNon200(t *testing.T) {
	l := newTestLoader(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(strings.NewReader("nope"))}, nil
	}, catalog.Options{DefaultLocator: "https://default.example/data.json"})

	_, err := l.Load(context.Background(), "")
	require.Error(t, err)

	var le *catalog.LoadError
	require.ErrorAs(t, err, &le)
	require.False(t, le.Override)
	require.Equal(t, "https://default.example/data.json", le.Locator)
	require.Contains(t, err.Error(), "404")
}

func TestLoader_RemoteTransportError(t *testing.T) {
	boom := errors.New("dial failed")
	l := newTestLoader(func(r *http.Request) (*http.Response, error) {
		return nil, boom
	}, catalog.Options{})

	_, err := l.Load(context.Background(), "https://custom.example/data.json")
	var le *catalog.LoadError
	require.ErrorAs(t, err, &le)
	require.True(t, le.Override)
	require.ErrorIs(t, err, boom)
}

func TestLoader_LocalFile(t *testing.T) {
	l := newTestLoader(func(r *http.Request) (*http.Response, error) {
		t.Fatalf("unexpected request to %s", r.URL)

		return nil, nil
	}, catalog.Options{})

	c, err := l.Load(context.Background(), filepath.Join("testdata", "sites.json"))
	require.NoError(t, err)
	require.Equal(t, 5, c.Len())
}

func TestLoader_LocalFileErrors(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "sites.txt")
	require.NoError(t, os.WriteFile(txt, []byte(smallCatalog), 0o600))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))

	l := newTestLoader(nil, catalog.Options{})

	_, err := l.Load(context.Background(), txt)
	require.ErrorContains(t, err, "incorrect JSON file extension")

	_, err = l.Load(context.Background(), filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	_, err = l.Load(context.Background(), bad)
	require.Error(t, err)
}

func TestLoader_MaxBytes(t *testing.T) {
	l := newTestLoader(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(smallCatalog))}, nil
	}, catalog.Options{MaxBytes: 10})

	_, err := l.Load(context.Background(), "")
	require.ErrorContains(t, err, "exceeds 10 bytes")
}
