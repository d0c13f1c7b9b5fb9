// Package catalog loads the site catalog the enumeration engine probes. A
// catalog is a JSON document mapping site names to detection rules; it can
// live behind a URL or on the local filesystem.
package catalog

import (
	"context"
	"usercheck/pkg/domain"
)

// DefaultLocator is the upstream data file used when no source is configured.
const DefaultLocator = "https://raw.githubusercontent.com/sherlock-project/sherlock/master/sherlock_project/resources/data.json"

// Source loads a catalog. An empty locator selects the source's default.
//
//go:generate mockgen -package mockcatalog -source=interface.go -destination=mock/mockcatalog.go *
type Source interface {
	Load(ctx context.Context, locator string) (*domain.Catalog, error)
}
