package lookup

import (
	"context"
	"errors"
	"fmt"
	"time"
	"usercheck/pkg/catalog"
	"usercheck/pkg/engine"
	"usercheck/pkg/logger"
	"usercheck/pkg/serrors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// DefaultTimeoutSeconds is the per-site probe timeout used when a request
	// does not set one.
	DefaultTimeoutSeconds = 30
	// DefaultMaxSites caps the selection when a request does not set a cap.
	DefaultMaxSites = 30
	// MaxTimeoutSeconds is the largest per-site probe timeout a request may set.
	MaxTimeoutSeconds = 300

	instrumentationName = "usercheck/internal/lookup"
)

// Request is the transport independent input of a lookup.
type Request struct {
	Username string
	// Sites restricts the lookup to these names, matched case-insensitively.
	Sites       []string
	IncludeNSFW bool
	// TimeoutSeconds bounds each site probe. Non-positive uses the engine
	// default; values above MaxTimeoutSeconds are clamped.
	TimeoutSeconds int
	Proxy          string
	// CatalogSource overrides the default catalog locator.
	CatalogSource string
	// MaxSites caps the selection. Non-positive means no cap.
	MaxSites    int
	OnlyClaimed bool
}

// NewRequest returns a Request for username with every optional field at its
// default.
func NewRequest(username string) Request {
	return Request{
		Username:       username,
		TimeoutSeconds: DefaultTimeoutSeconds,
		MaxSites:       DefaultMaxSites,
		OnlyClaimed:    true,
	}
}

// Options configure a Service. Nil providers fall back to the otel globals.
type Options struct {
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

type instruments struct {
	lookups  metric.Int64Counter
	duration metric.Float64Histogram
	probed   metric.Int64Counter
}

// service is the Checker implementation.
type service struct {
	source     catalog.Source
	enumerator engine.Enumerator
	tracer     trace.Tracer
	metrics    instruments
}

// New creates a Checker loading catalogs from source and probing with enumerator.
func New(source catalog.Source, enumerator engine.Enumerator, options Options) (Checker, error) {
	mp := options.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	tp := options.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	meter := mp.Meter(instrumentationName)
	lookups, err := meter.Int64Counter("usercheck.lookups",
		metric.WithDescription("Number of lookups by outcome"))
	if err != nil {
		return nil, fmt.Errorf("could not create lookups counter: %w", err)
	}
	duration, err := meter.Float64Histogram("usercheck.lookup.duration",
		metric.WithDescription("Lookup duration"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("could not create duration histogram: %w", err)
	}
	probed, err := meter.Int64Counter("usercheck.sites.probed",
		metric.WithDescription("Number of sites handed to the engine"))
	if err != nil {
		return nil, fmt.Errorf("could not create probed counter: %w", err)
	}

	return &service{
		source:     source,
		enumerator: enumerator,
		tracer:     tp.Tracer(instrumentationName),
		metrics: instruments{
			lookups:  lookups,
			duration: duration,
			probed:   probed,
		},
	}, nil
}

// Check runs the whole pipeline: load catalog, resolve and cap the selection,
// enumerate, build the response. It either returns a complete Response or an
// error; there are no partial results.
func (s *service) Check(ctx context.Context, req Request) (_ *Response, err error) {
	ctx, span := s.tracer.Start(ctx, "lookup.Check", trace.WithAttributes(
		attribute.String("username", req.Username),
		attribute.Int("requested_sites", len(req.Sites)),
	))
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = serrors.KindOf(err).Error()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		attrs := metric.WithAttributes(attribute.String("outcome", outcome))
		s.metrics.lookups.Add(ctx, 1, attrs)
		s.metrics.duration.Record(ctx, time.Since(start).Seconds(), attrs)
		span.End()
	}()

	if req.Username == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "username is required")
	}

	all, err := s.source.Load(ctx, req.CatalogSource)
	if err != nil {
		return nil, catalogError(err)
	}

	selection, missing := ResolveSelection(all, req.Sites, req.IncludeNSFW)
	if len(req.Sites) > 0 && selection.Len() == 0 {
		return nil, &InvalidInputError{Missing: missing}
	}
	if len(missing) > 0 {
		logger.Info(ctx, "ignoring unknown sites", zap.Strings("missing", missing))
	}
	selection = ApplySizeCap(selection, req.MaxSites)
	span.SetAttributes(attribute.Int("selected_sites", selection.Len()))

	s.metrics.probed.Add(ctx, int64(selection.Len()))
	results, err := s.enumerator.Enumerate(ctx, req.Username, selection, engine.Options{
		Proxy:   req.Proxy,
		Timeout: time.Duration(min(req.TimeoutSeconds, MaxTimeoutSeconds)) * time.Second,
	})
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, serrors.Wrap(serrors.ErrTimeout, err, "lookup timed out")
	}
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "enumeration failed")
	}

	return BuildResponsePayload(req.Username, selection, results, req.OnlyClaimed), nil
}

// catalogError classifies a catalog failure. A bad caller supplied locator is
// the caller's fault; a broken default source is ours.
func catalogError(err error) error {
	var le *catalog.LoadError
	if errors.As(err, &le) && le.Override {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid catalog source")
	}

	return serrors.Wrap(serrors.ErrUnavailable, err, "site catalog unavailable")
}
