// Package routeset builds sets of distinct routes for one start and target.
//
// The baseline route is planned first with the requested parameters. The
// remaining variants are derived from it (alternate selection policy,
// exclusion of the baseline's first references, flipped major-body
// preference) and planned in parallel. Failed and duplicate variants are
// dropped; the set fails only when every variant failed.
package routeset

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/sternensim/StarNavigation/internal/metrics"
	"github.com/sternensim/StarNavigation/internal/navigation"
)

const tracerName = "github.com/sternensim/StarNavigation/internal/routeset"

// Options configures a Builder. All fields are optional.
type Options struct {
	Cache          Cache
	TracerProvider trace.TracerProvider
	// CatalogID identifies the catalog snapshot in cache keys.
	CatalogID string
	Now       func() time.Time
}

// Builder produces route sets. Safe for concurrent use.
type Builder struct {
	planner Planner
	cache   Cache
	tracer  trace.Tracer
	catalog string
	now     func() time.Time
	logger  *slog.Logger
}

// NewBuilder creates a Builder around planner.
func NewBuilder(planner Planner, opts Options, logger *slog.Logger) *Builder {
	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Builder{
		planner: planner,
		cache:   opts.Cache,
		tracer:  tp.Tracer(tracerName),
		catalog: opts.CatalogID,
		now:     now,
		logger:  logger.With("component", "routeset"),
	}
}

type outcome struct {
	strategy string
	route    *navigation.Route
	err      error
}

// Build returns up to req.MaxRoutes distinct routes.
func (b *Builder) Build(ctx context.Context, req Request) (*Set, error) {
	began := time.Now()

	req = b.normalize(req)
	if err := validate(req); err != nil {
		metrics.RecordRouteSet("invalid_input", time.Since(began))
		return nil, err
	}

	ctx, span := b.tracer.Start(ctx, "routeset.Build", trace.WithAttributes(
		attribute.String("routeset.start", req.Start.String()),
		attribute.String("routeset.target", req.Target.String()),
		attribute.Int("routeset.max_routes", req.MaxRoutes),
	))
	defer span.End()

	key, err := CacheKey(req, b.catalog)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	logger := b.logger.With("key", key[:12])

	if set, ok := b.lookup(ctx, logger, key); ok {
		span.SetAttributes(attribute.Bool("routeset.cache_hit", true), attribute.Int("routeset.routes", len(set.Routes)))
		metrics.RecordRouteSet("cache_hit", time.Since(began))
		return set, nil
	}

	set, err := b.build(ctx, logger, req, key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.RecordRouteSet("failed", time.Since(began))
		return nil, err
	}
	span.SetAttributes(attribute.Int("routeset.routes", len(set.Routes)))
	metrics.RecordRouteSet("success", time.Since(began))

	b.store(ctx, logger, key, set)
	return set, nil
}

func (b *Builder) build(ctx context.Context, logger *slog.Logger, req Request, key string) (*Set, error) {
	base := navigationRequest(req)

	results := []outcome{b.plan(ctx, StrategyBaseline, base)}

	variants := alternates(base, results[0].route)
	if n := req.MaxRoutes - 1; len(variants) > n {
		variants = variants[:n]
	}

	if len(variants) > 0 {
		alt := make([]outcome, len(variants))
		var g errgroup.Group
		g.SetLimit(len(variants))
		for i, v := range variants {
			g.Go(func() error {
				alt[i] = b.plan(ctx, v.strategy, v.req)
				return nil
			})
		}
		g.Wait()
		results = append(results, alt...)
	}

	set := &Set{ObservationTime: req.Time}
	seen := make(map[string]struct{}, len(results))
	var firstErr error
	for _, r := range results {
		if r.err != nil {
			metrics.RecordVariant("failed")
			logger.Info("route variant failed", "strategy", r.strategy, "error", r.err)
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		sig := signature(r.route)
		if _, dup := seen[sig]; dup {
			metrics.RecordVariant("duplicate")
			logger.Debug("route variant duplicates an earlier route", "strategy", r.strategy)
			continue
		}
		seen[sig] = struct{}{}
		metrics.RecordVariant("kept")

		set.Routes = append(set.Routes, Result{
			ID:       routeID(key, r.strategy),
			Label:    fmt.Sprintf("Route %d", len(set.Routes)+1),
			Strategy: r.strategy,
			Route:    *r.route,
		})
	}

	if len(set.Routes) == 0 {
		return nil, firstErr
	}

	logger.Info("route set built",
		"variants", len(results),
		"routes", len(set.Routes),
	)
	return set, nil
}

// plan runs one variant inside its own span.
func (b *Builder) plan(ctx context.Context, strategy string, req navigation.Request) outcome {
	ctx, span := b.tracer.Start(ctx, "routeset.variant", trace.WithAttributes(
		attribute.String("routeset.strategy", strategy),
		attribute.String("navigation.policy", string(req.Policy)),
		attribute.Bool("navigation.prioritize_major", req.PrioritizeMajor),
		attribute.StringSlice("navigation.excluded", req.Excluded),
	))
	defer span.End()

	route, err := b.planner.Plan(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return outcome{strategy: strategy, err: err}
	}
	span.SetAttributes(
		attribute.Int("navigation.waypoints", len(route.Waypoints)),
		attribute.Float64("navigation.total_km", route.TotalDistance),
	)
	return outcome{strategy: strategy, route: route}
}

func (b *Builder) lookup(ctx context.Context, logger *slog.Logger, key string) (*Set, bool) {
	if b.cache == nil {
		return nil, false
	}
	raw, ok, err := b.cache.Get(ctx, key)
	if err != nil {
		metrics.RecordRouteCache("error")
		logger.Warn("route cache lookup failed", "error", err)
		return nil, false
	}
	if !ok {
		metrics.RecordRouteCache("miss")
		return nil, false
	}

	var set Set
	if err := json.Unmarshal(raw, &set); err != nil {
		metrics.RecordRouteCache("error")
		logger.Warn("discarding undecodable cached route set", "error", err)
		return nil, false
	}
	metrics.RecordRouteCache("hit")
	logger.Debug("route set served from cache", "routes", len(set.Routes))
	return &set, true
}

func (b *Builder) store(ctx context.Context, logger *slog.Logger, key string, set *Set) {
	if b.cache == nil {
		return
	}
	raw, err := json.Marshal(set)
	if err == nil {
		err = b.cache.Set(ctx, key, raw)
	}
	if err != nil {
		logger.Warn("route cache store failed", "error", err)
	}
}

// normalize fills defaults so equal requests produce equal cache keys.
func (b *Builder) normalize(req Request) Request {
	if req.Time.IsZero() {
		req.Time = b.now()
	}
	req.Time = req.Time.UTC()
	if req.MaxRoutes == 0 {
		req.MaxRoutes = DefaultMaxRoutes
	}
	if req.StepKm == 0 {
		req.StepKm = navigation.DefaultStepKm
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = navigation.DefaultMaxIterations
	}
	if req.LegStepLimit == 0 {
		req.LegStepLimit = navigation.DefaultLegStepLimit
	}
	if req.Policy == "" {
		req.Policy = navigation.ClosestBearing
	}
	return req
}

func validate(req Request) error {
	if req.MaxRoutes < 1 || req.MaxRoutes > MaxRoutesLimit {
		return fmt.Errorf("%w: max routes %d must be within [1, %d]", navigation.ErrInvalidInput, req.MaxRoutes, MaxRoutesLimit)
	}
	return navigationRequest(req).Validate()
}

func navigationRequest(req Request) navigation.Request {
	return navigation.Request{
		Start:  req.Start,
		Target: req.Target,
		Time:   req.Time,
		Params: navigation.Params{
			StepKm:          req.StepKm,
			MaxIterations:   req.MaxIterations,
			LegStepLimit:    req.LegStepLimit,
			PrioritizeMajor: req.PrioritizeMajor,
			PlanetsOnly:     req.PlanetsOnly,
			Policy:          req.Policy,
		},
	}
}

// signature identifies a waypoint sequence.
func signature(r *navigation.Route) string {
	var sb strings.Builder
	for _, wp := range r.Waypoints {
		name := "-"
		if wp.Reference != nil {
			name = wp.Reference.Name
		}
		fmt.Fprintf(&sb, "%s@%.6f,%.6f;", name, wp.Position.Latitude, wp.Position.Longitude)
	}
	return sb.String()
}
