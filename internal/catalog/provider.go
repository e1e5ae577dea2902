package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sternensim/StarNavigation/internal/metrics"
)

// Provider returns the catalog objects with their equatorial coordinates at
// time t. Implementations must be safe for concurrent use and must not
// populate any observer-dependent data. Callers treat the returned slice as
// read-only.
type Provider interface {
	Query(ctx context.Context, t time.Time) ([]Object, error)
}

// Static is a fixed object list that ignores the query time.
type Static []Object

// Query returns s.
func (s Static) Query(ctx context.Context, _ time.Time) ([]Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

type merged []Provider

// Merge combines providers into one. Results are concatenated in provider
// order; an object from a later provider replaces an earlier one with the
// same name.
func Merge(providers ...Provider) Provider {
	return merged(providers)
}

func (m merged) Query(ctx context.Context, t time.Time) ([]Object, error) {
	var out []Object
	for i, p := range m {
		objs, err := p.Query(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("catalog provider %d: %w", i, err)
		}
		out = Overlay(out, objs)
	}
	return out, nil
}

// snapshot is one provider result. Immutable after construction; safe for
// concurrent reads.
type snapshot struct {
	at      time.Time
	objects []Object
}

// CachedProvider memoizes the most recent query result of another provider.
// Route variants of one request all query the same instant, so they share a
// single computation.
type CachedProvider struct {
	next   Provider
	logger *slog.Logger
	snap   atomic.Pointer[snapshot]
	mu     sync.Mutex // serializes cache rebuilds
}

// NewCachedProvider wraps next.
func NewCachedProvider(next Provider, logger *slog.Logger) *CachedProvider {
	return &CachedProvider{next: next, logger: logger}
}

// Query returns the cached result for t or queries the wrapped provider
// (double-checked locking). Errors are not cached.
func (c *CachedProvider) Query(ctx context.Context, t time.Time) ([]Object, error) {
	if s := c.snap.Load(); s != nil && s.at.Equal(t) {
		metrics.RecordCatalogCache(true)
		return s.objects, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if s := c.snap.Load(); s != nil && s.at.Equal(t) {
		metrics.RecordCatalogCache(true)
		return s.objects, nil
	}
	metrics.RecordCatalogCache(false)

	objs, err := c.next.Query(ctx, t)
	if err != nil {
		return nil, err
	}

	c.snap.Store(&snapshot{at: t, objects: objs})
	c.logger.Debug("catalog snapshot cached",
		"time", t.UTC().Format(time.RFC3339),
		"objects", len(objs),
	)
	return objs, nil
}
