// Package source fetches raw report rows and owns the data-layer policy:
// stale time, retries, request coalescing and invalidation.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dwh-dashboard/internal/table"
)

// Domain names one report feed.
type Domain string

const (
	Rendimiento Domain = "rendimiento"
	Costos      Domain = "costos"
)

// Domains lists every known feed.
var Domains = []Domain{Rendimiento, Costos}

var ErrUnknownDomain = errors.New("unknown report domain")

// ParseDomain validates a domain name.
func ParseDomain(s string) (Domain, error) {
	for _, d := range Domains {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
}

// Feed returns the raw rows of one report domain.
type Feed interface {
	Fetch(ctx context.Context, d Domain) ([]table.Row, error)
}

// Store keeps fetched rows between requests. Version identifies the current
// generation; Invalidate starts a new one and Save only lands rows in the
// generation it names, so rows fetched before an invalidation are never
// served after it.
type Store interface {
	Version(ctx context.Context) (int64, error)
	Load(ctx context.Context, d Domain) ([]table.Row, bool, error)
	Save(ctx context.Context, d Domain, version int64, rows []table.Row, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}
