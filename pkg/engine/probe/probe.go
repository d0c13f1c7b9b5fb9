// Package probe is the default engine.Enumerator. It sends one HTTP request per
// site and classifies the response with the site's error rules.
package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"sync"
	"time"
	"usercheck/pkg/domain"
	"usercheck/pkg/engine"
	"usercheck/pkg/logger"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers      = 20
	defaultTimeout      = 30 * time.Second
	defaultMaxBodyBytes = 1 << 20
	// DefaultUserAgent mimics a desktop browser; many sites reject obvious bots.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:129.0) Gecko/20100101 Firefox/129.0"
)

// Options configure the engine. Zero values select defaults.
type Options struct {
	// Workers bounds the number of concurrent probes per enumeration.
	Workers int
	// UserAgent is sent when a site does not define its own.
	UserAgent string
	// MaxBodyBytes caps how much of a response body is inspected.
	MaxBodyBytes int64
}

// Engine implements engine.Enumerator over plain HTTP.
type Engine struct {
	options Options
}

var _ engine.Enumerator = (*Engine)(nil)

// New returns an Engine.
func New(options Options) *Engine {
	if options.Workers <= 0 {
		options.Workers = defaultWorkers
	}
	if options.UserAgent == "" {
		options.UserAgent = DefaultUserAgent
	}
	if options.MaxBodyBytes <= 0 {
		options.MaxBodyBytes = defaultMaxBodyBytes
	}

	return &Engine{options: options}
}

// Enumerate probes every site concurrently. It only fails when the proxy is
// unusable or ctx ends before all probes finish.
func (e *Engine) Enumerate(ctx context.Context,
	username string,
	sites *domain.Catalog,
	opts engine.Options) (map[string]domain.Result, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cl, err := newClients(e.options.UserAgent, opts.Proxy, timeout)
	if err != nil {
		return nil, fmt.Errorf("could not configure proxy: %w", err)
	}
	defer cl.close()

	var mu sync.Mutex
	results := make(map[string]domain.Result, sites.Len())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.options.Workers)
	for _, site := range sites.Sites() {
		g.Go(func() error {
			res := e.probe(gctx, cl, site, username)
			mu.Lock()
			results[site.Name] = res
			mu.Unlock()

			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("enumeration interrupted: %w", err)
	}

	return results, nil
}

func (e *Engine) probe(ctx context.Context, cl clients, site domain.Site, username string) domain.Result {
	res := domain.Result{
		Site:    site.Name,
		URLMain: site.URLMain,
		URLUser: site.UserURL(username),
	}

	if site.RegexCheck != "" {
		re, err := regexp.Compile(site.RegexCheck)
		switch {
		case err != nil:
			// catalogs are written for other regex engines; skip what RE2 rejects
			logger.Debug(ctx, "ignoring unsupported regexCheck",
				zap.String("site", site.Name), zap.Error(err))
		case !re.MatchString(username):
			res.URLUser = ""
			res.Status = domain.StatusIllegal

			return res
		}
	}

	req, err := e.newRequest(ctx, site, username, res.URLUser)
	if err != nil {
		res.Status = domain.StatusUnknown
		res.Context = err.Error()

		return res
	}

	client := cl.follow
	if !followsRedirects(site) {
		client = cl.noFollow
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		res.Status = domain.StatusUnknown
		res.Context = describe(err)

		return res
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, e.options.MaxBodyBytes))
	res.QueryTime = time.Since(start)
	res.HTTPStatus = resp.StatusCode

	if blockedByWAF(string(body)) {
		res.Status = domain.StatusWAF

		return res
	}
	res.Status, res.Context = classify(site, resp.StatusCode, string(body))

	return res
}

func (e *Engine) newRequest(ctx context.Context, site domain.Site, username, userURL string) (*http.Request, error) {
	target := userURL
	if site.URLProbe != "" {
		target = domain.Interpolate(site.URLProbe, username)
	}

	var body io.Reader
	if len(site.RequestPayload) > 0 {
		body = bytes.NewReader(payload(site.RequestPayload, username))
	}

	req, err := http.NewRequestWithContext(ctx, method(site), target, body)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range site.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// payload substitutes the username into a JSON request payload template.
func payload(template []byte, username string) []byte {
	enc := jx.GetEncoder()
	defer jx.PutEncoder(enc)
	enc.Str(username)
	quoted := enc.Bytes()

	// strip the surrounding quotes; the template already has them
	return bytes.ReplaceAll(template, []byte("{}"), quoted[1:len(quoted)-1])
}

func describe(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return "timeout"
	}

	return err.Error()
}
