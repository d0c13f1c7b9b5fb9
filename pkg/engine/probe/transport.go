package probe

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

// headerTransport sets default headers on requests that do not carry them.
type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (h *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	for k, vs := range h.headers {
		if r.Header.Get(k) != "" {
			continue
		}
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}

	return h.base.RoundTrip(r) //nolint: wrapcheck
}

// clients holds one client following redirects and one that stops at the
// first response, both sharing a transport.
type clients struct {
	follow    *http.Client
	noFollow  *http.Client
	transport *http.Transport
}

// close drops the keep-alive connections left by one enumeration.
func (c clients) close() {
	c.transport.CloseIdleConnections()
}

func newClients(userAgent string, proxyURL string, timeout time.Duration) (clients, error) {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          200,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
		ForceAttemptHTTP2:     true,
	}
	if err := applyProxy(transport, proxyURL); err != nil {
		return clients{}, err
	}

	rt := &headerTransport{
		base:    transport,
		headers: http.Header{"User-Agent": []string{userAgent}},
	}

	return clients{
		transport: transport,
		follow:    &http.Client{Transport: rt, Timeout: timeout},
		noFollow: &http.Client{
			Transport: rt,
			Timeout:   timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

func applyProxy(transport *http.Transport, raw string) error {
	if raw == "" {
		return nil
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("could not parse proxy URL: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		transport.Proxy = http.ProxyURL(u)
	case "socks5", "socks5h":
		var auth *proxy.Auth
		if u.User != nil {
			pass, _ := u.User.Password()
			auth = &proxy.Auth{User: u.User.Username(), Password: pass}
		}
		dialer, err := proxy.SOCKS5("tcp", u.Host, auth, proxy.Direct)
		if err != nil {
			return fmt.Errorf("could not create socks dialer: %w", err)
		}
		ctxDialer, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return fmt.Errorf("socks dialer does not support context")
		}
		transport.Proxy = nil
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			return ctxDialer.DialContext(ctx, network, addr) //nolint: wrapcheck
		}
	default:
		return fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}

	return nil
}
