// Package lookup is the request pipeline behind every transport binding: it
// resolves which sites to probe, delegates probing to an engine.Enumerator and
// shapes the engine's results into a Response.
package lookup

import (
	"context"
)

// Checker runs one username lookup.
//
//go:generate mockgen -package mocklookup -source=interface.go -destination=mock/mocklookup.go *
type Checker interface {
	Check(ctx context.Context, req Request) (*Response, error)
}
