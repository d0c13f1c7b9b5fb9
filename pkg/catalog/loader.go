package catalog

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"usercheck/pkg/domain"
	"usercheck/pkg/logger"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// Options configure a Loader.
type Options struct {
	// DefaultLocator is used when Load is called with an empty locator.
	DefaultLocator string
	// MaxBytes caps the size of a catalog document. Zero means 16 MiB.
	MaxBytes int64
}

const defaultMaxBytes = 16 << 20

// Loader is a Source reading catalogs from http(s) URLs or local .json files.
// It does not cache; every Load fetches the document again.
type Loader struct {
	httpClient *http.Client
	options    Options
}

var _ Source = (*Loader)(nil)

// NewLoader returns a Loader using httpClient for remote catalogs.
func NewLoader(httpClient *http.Client, options Options) *Loader {
	if options.DefaultLocator == "" {
		options.DefaultLocator = DefaultLocator
	}
	if options.MaxBytes <= 0 {
		options.MaxBytes = defaultMaxBytes
	}

	return &Loader{httpClient: httpClient, options: options}
}

// Load fetches and decodes the catalog at locator. Failures are *LoadError.
func (l *Loader) Load(ctx context.Context, locator string) (*domain.Catalog, error) {
	override := locator != ""
	if !override {
		locator = l.options.DefaultLocator
	}

	data, err := l.read(ctx, locator)
	if err == nil {
		var c *domain.Catalog
		if c, err = Decode(data); err == nil {
			logger.Debug(ctx, "site catalog loaded",
				zap.String("locator", locator),
				zap.Int("sites", c.Len()))

			return c, nil
		}
	}

	return nil, &LoadError{Locator: locator, Override: override, Err: err}
}

func (l *Loader) read(ctx context.Context, locator string) ([]byte, error) {
	lower := strings.ToLower(locator)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return l.fetch(ctx, locator)
	}

	if !strings.HasSuffix(lower, ".json") {
		return nil, errors.New("incorrect JSON file extension for data file")
	}
	f, err := os.Open(locator)
	if err != nil {
		return nil, errors.Wrap(err, "open data file")
	}
	defer func() {
		_ = f.Close()
	}()

	return l.readAll(f)
}

func (l *Loader) fetch(ctx context.Context, locator string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch data file")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("bad response while accessing data file: %d %s",
			resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return l.readAll(resp.Body)
}

func (l *Loader) readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.options.MaxBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "read data file")
	}
	if int64(len(data)) > l.options.MaxBytes {
		return nil, errors.Errorf("data file exceeds %d bytes", l.options.MaxBytes)
	}

	return data, nil
}
