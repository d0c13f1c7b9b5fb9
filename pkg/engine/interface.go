// Package engine defines the contract of a username enumeration engine: given a
// username and a selection of sites it reports, per site, whether the username
// is claimed.
package engine

import (
	"context"
	"time"
	"usercheck/pkg/domain"
)

// Options tune one enumeration.
type Options struct {
	// Proxy is an optional proxy URL (http, https, socks5 or socks5h).
	Proxy string
	// Timeout bounds each site probe.
	Timeout time.Duration
}

// Enumerator probes every site of a selection for a username.
//
// Implementations must return exactly one result per site in sites, keyed by
// site name, and report per-site network failures as domain.StatusUnknown
// rather than as an error. An error means the enumeration as a whole failed.
//
//go:generate mockgen -package mockengine -source=interface.go -destination=mock/mockengine.go *
type Enumerator interface {
	Enumerate(ctx context.Context,
		username string,
		sites *domain.Catalog,
		opts Options) (map[string]domain.Result, error)
}
