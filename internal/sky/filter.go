// Package sky filters a catalog down to the objects an observer can use as
// direction references at a given place and time.
package sky

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sternensim/StarNavigation/internal/catalog"
	"github.com/sternensim/StarNavigation/internal/geo"
	"github.com/sternensim/StarNavigation/internal/metrics"
	"github.com/sternensim/StarNavigation/internal/transform"
)

// DefaultMaxMagnitude is the naked-eye visibility threshold.
const DefaultMaxMagnitude = 6.0

// ErrCatalogUnavailable wraps any failure of the catalog provider, including
// a query that exceeded its timeout.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Sighting is an object as seen by one observer at one instant. It is
// computed fresh on every query and never written back to the catalog.
type Sighting struct {
	Object catalog.Object `json:"object"`
	transform.HorizonCoordinates
}

// Query restricts which objects are returned.
type Query struct {
	// Excluded names are never returned.
	Excluded map[string]struct{}
	// PlanetsOnly keeps only planets, the Moon and the Sun.
	PlanetsOnly bool
}

// Visibility is the result of a filter pass.
type Visibility struct {
	Sightings []Sighting
	// Hidden counts objects that met every condition except the exclusion set.
	Hidden int
}

// Filter evaluates catalog visibility for observers.
type Filter struct {
	provider     catalog.Provider
	maxMagnitude float64
	timeout      time.Duration
	logger       *slog.Logger
}

// Config holds filter settings.
type Config struct {
	MaxMagnitude float64       // objects must be strictly brighter (default 6.0)
	Timeout      time.Duration // per provider query; 0 disables
}

// NewFilter creates a Filter over provider.
func NewFilter(provider catalog.Provider, cfg Config, logger *slog.Logger) *Filter {
	if cfg.MaxMagnitude == 0 {
		cfg.MaxMagnitude = DefaultMaxMagnitude
	}
	return &Filter{
		provider:     provider,
		maxMagnitude: cfg.MaxMagnitude,
		timeout:      cfg.Timeout,
		logger:       logger.With("component", "sky"),
	}
}

// Visible returns the objects above the horizon, brighter than the magnitude
// threshold, not excluded and matching the type filter, in catalog order.
// An empty result is not an error; only provider failures are.
func (f *Filter) Visible(ctx context.Context, observer geo.Position, t time.Time, q Query) (Visibility, error) {
	objects, err := f.query(ctx, t)
	if err != nil {
		return Visibility{}, err
	}

	var vis Visibility
	for _, obj := range objects {
		if obj.Magnitude >= f.maxMagnitude {
			continue
		}
		if q.PlanetsOnly && !obj.Type.IsMajor() {
			continue
		}
		hc := transform.Horizontal(obj.RightAscension, obj.Declination, observer, t)
		if !hc.AboveHorizon() {
			continue
		}
		if _, ok := q.Excluded[obj.Name]; ok {
			vis.Hidden++
			continue
		}
		vis.Sightings = append(vis.Sightings, Sighting{Object: obj, HorizonCoordinates: hc})
	}

	f.logger.Debug("visibility evaluated",
		"observer", observer.String(),
		"catalog", len(objects),
		"visible", len(vis.Sightings),
		"hidden", vis.Hidden,
	)
	return vis, nil
}

func (f *Filter) query(ctx context.Context, t time.Time) ([]catalog.Object, error) {
	start := time.Now()
	objects, err := f.queryWithTimeout(ctx, t)
	duration := time.Since(start)

	switch {
	case err == nil:
		metrics.RecordCatalogQuery("ok", duration)
		return objects, nil
	case errors.Is(err, context.DeadlineExceeded):
		metrics.RecordCatalogQuery("timeout", duration)
	default:
		metrics.RecordCatalogQuery("error", duration)
	}
	return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
}

type queryResult struct {
	objects []catalog.Object
	err     error
}

// queryWithTimeout bounds the provider call even when the provider itself
// ignores ctx. An abandoned call finishes in the background.
func (f *Filter) queryWithTimeout(ctx context.Context, t time.Time) ([]catalog.Object, error) {
	if f.timeout <= 0 {
		return f.provider.Query(ctx, t)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	ch := make(chan queryResult, 1)
	go func() {
		objs, err := f.provider.Query(ctx, t)
		ch <- queryResult{objs, err}
	}()

	select {
	case r := <-ch:
		return r.objects, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
