// Package api configures and exposes the HTTP server, routes, metrics, docs
// and related middleware for the username check service.
package api

import (
	_ "embed"
	"fmt"
	"net/http"
	"time"
	"usercheck/internal/api/chihandler"
	"usercheck/internal/api/httphandler"
	"usercheck/internal/config"
	"usercheck/internal/lookup"
	"usercheck/pkg/controller"
	"usercheck/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
)

// v1Spec is the embedded OpenAPI document of the lookup API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// Options holds configuration for the HTTP server.
// It is typically created from a config.Config via NewOptions.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout bounds request handling via controller.WithTimeout.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// Pprof mounts profiling endpoints under /debug/pprof/.
	Pprof bool
}

// NewOptions maps HTTP server settings from config.Config to Options.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		Pprof:             cfg.HTTP.Pprof,
	}
}

// Deps are the collaborators of the server.
type Deps struct {
	Checker lookup.Checker
	// Registerer and Gatherer default to the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewHandler builds the root handler:
//   - "/" lookup endpoint (chi binding)
//   - "/raw" lookup endpoint (plain net/http binding)
//   - "/healthz"
//   - Prometheus metrics at MetricsPath
//   - embedded OpenAPI spec and Swagger UI at /docs/
//   - pprof endpoints when enabled
//
// It wraps the mux with recovery, metrics and logging middlewares and
// applies the request timeout.
func NewHandler(deps Deps, opts Options) (http.Handler, error) {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	httpMetrics, err := metrics.NewHTTP(deps.Registerer)
	if err != nil {
		return nil, fmt.Errorf("could not create http metrics: %w", err)
	}

	mux := http.NewServeMux()

	// lookup bindings
	mux.Handle("/", chihandler.New(deps.Checker))
	mux.Handle("/raw", httphandler.New(deps.Checker))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// prometheus metrics
	mux.Handle(opts.MetricsPath, promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))

	// specs file and swagger playground
	mux.HandleFunc("GET /specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	mux.Handle("/docs/", v5emb.New(
		"Username Check Service",
		"/specs/v1.yaml",
		"/docs/",
	))

	if opts.Pprof {
		mux.Handle(controller.PprofPrefix, controller.PprofMux())
	}

	handler := controller.WithRecover(mux)
	handler = controller.WithMetrics(httpMetrics)(handler)
	handler = controller.WithLogger(handler)

	if opts.RequestTimeout > 0 {
		handler = controller.WithTimeout(opts.RequestTimeout)(handler)
	}

	return handler, nil
}

// NewServer wires up and returns a configured *http.Server.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	handler, err := NewHandler(deps, opts)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}
