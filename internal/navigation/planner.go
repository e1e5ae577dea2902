// Package navigation plans surface routes by steering toward celestial
// objects, one reference per leg.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sternensim/StarNavigation/internal/geo"
	"github.com/sternensim/StarNavigation/internal/metrics"
	"github.com/sternensim/StarNavigation/internal/sky"
)

// SkyView reports the usable references for an observer.
type SkyView interface {
	Visible(ctx context.Context, observer geo.Position, t time.Time, q sky.Query) (sky.Visibility, error)
}

// Planner runs the greedy reference-following loop. A Planner holds no
// per-run state and is safe for concurrent use.
type Planner struct {
	sky    SkyView
	logger *slog.Logger
}

// NewPlanner creates a Planner that draws references from view.
func NewPlanner(view SkyView, logger *slog.Logger) *Planner {
	return &Planner{
		sky:    view,
		logger: logger.With("component", "navigation"),
	}
}

// state is the working memory of one run. Never shared.
type state struct {
	current    geo.Position
	excluded   map[string]struct{} // seeds and used objects
	used       []string
	waypoints  []Waypoint
	total      float64
	iterations int
}

// Plan computes a route for req. On failure no partial route is returned.
// The context is checked at every iteration boundary.
func (p *Planner) Plan(ctx context.Context, req Request) (*Route, error) {
	req = req.withDefaults()
	if err := req.Validate(); err != nil {
		metrics.RecordPlan("invalid_input", 0, 0)
		return nil, err
	}

	began := time.Now()
	route, st, err := p.run(ctx, req)
	metrics.RecordPlan(outcome(err), time.Since(began), st.iterations)
	if err != nil {
		return nil, err
	}
	return route, nil
}

func (p *Planner) run(ctx context.Context, req Request) (*Route, *state, error) {
	direct := geo.Distance(req.Start, req.Target)
	tolerance := Tolerance(direct)
	leg := LegConfig{StepKm: req.StepKm, Tolerance: tolerance, StepLimit: req.LegStepLimit}

	st := &state{
		current:  req.Start,
		excluded: make(map[string]struct{}, len(req.Excluded)),
	}
	for _, name := range req.Excluded {
		st.excluded[name] = struct{}{}
	}

	logger := p.logger.With("start", req.Start.String(), "target", req.Target.String())
	logger.Debug("planning route",
		"direct_km", direct,
		"tolerance_km", tolerance,
		"step_km", req.StepKm,
		"policy", req.Policy,
		"prioritize_major", req.PrioritizeMajor,
		"planets_only", req.PlanetsOnly,
		"excluded", len(req.Excluded),
	)

	for st.iterations < req.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, st, fmt.Errorf("planning canceled after %d iterations: %w", st.iterations, err)
		}

		remaining := geo.Distance(st.current, req.Target)
		if remaining <= tolerance {
			st.waypoints = append(st.waypoints, Waypoint{
				Position:         st.current,
				Reason:           TargetReached,
				Timestamp:        req.Time,
				DistanceToTarget: remaining,
			})
			return p.finish(logger, st, direct, tolerance, remaining), st, nil
		}

		bearing := geo.Bearing(st.current, req.Target)
		vis, err := p.sky.Visible(ctx, st.current, req.Time, sky.Query{
			Excluded:    st.excluded,
			PlanetsOnly: req.PlanetsOnly,
		})
		if err != nil {
			return nil, st, fmt.Errorf("iteration %d: %w", st.iterations, err)
		}

		ref, ok := Select(vis.Sightings, bearing, req.Policy, req.PrioritizeMajor)
		if !ok {
			if vis.Hidden > 0 {
				logger.Info("references exhausted",
					"iteration", st.iterations,
					"position", st.current.String(),
					"visible_but_used", vis.Hidden,
				)
				return nil, st, fmt.Errorf("iteration %d at %s: %w", st.iterations, st.current, ErrExhaustedReferences)
			}
			logger.Info("no visible objects",
				"iteration", st.iterations,
				"position", st.current.String(),
			)
			return nil, st, fmt.Errorf("iteration %d at %s: %w", st.iterations, st.current, ErrNoVisibleObjects)
		}

		result, err := Follow(st.current, req.Target, ref, req.Time, leg)
		if errors.Is(err, errLegNonTermination) {
			logger.Warn("leg step limit reached, treating reference as lost",
				"reference", ref.Object.Name,
				"steps", result.Steps,
			)
		}
		metrics.RecordLeg(string(result.Reason), result.Steps)

		toTarget := geo.Distance(result.End, req.Target)
		st.waypoints = append(st.waypoints, Waypoint{
			Position: result.End,
			Reference: &Reference{
				Name:      ref.Object.Name,
				Type:      ref.Object.Type,
				Magnitude: ref.Object.Magnitude,
				Azimuth:   ref.Azimuth,
				Altitude:  ref.Altitude,
			},
			Reason:           result.Reason,
			Timestamp:        req.Time,
			DistanceToTarget: toTarget,
		})
		st.total += geo.Distance(st.current, result.End)
		st.used = append(st.used, ref.Object.Name)
		st.excluded[ref.Object.Name] = struct{}{}
		st.current = result.End
		st.iterations++

		logger.Debug("leg complete",
			"iteration", st.iterations,
			"reference", ref.Object.Name,
			"bearing", bearing,
			"azimuth", ref.Azimuth,
			"reason", result.Reason,
			"steps", result.Steps,
			"remaining_km", toTarget,
		)

		if result.Reason == TargetReached {
			return p.finish(logger, st, direct, tolerance, toTarget), st, nil
		}
	}

	logger.Info("iteration budget exhausted", "max_iterations", req.MaxIterations)
	return nil, st, fmt.Errorf("after %d iterations: %w", st.iterations, ErrMaxIterationsExceeded)
}

// finish closes the route. The remainder left inside the tolerance radius
// counts toward the total, so the total never undercuts the direct distance.
func (p *Planner) finish(logger *slog.Logger, st *state, direct, tolerance, remainder float64) *Route {
	used := st.used
	if used == nil {
		used = []string{}
	}
	route := &Route{
		Waypoints:       st.waypoints,
		TotalDistance:   st.total + remainder,
		DirectDistance:  direct,
		TargetTolerance: tolerance,
		Iterations:      st.iterations,
		UsedObjects:     used,
	}
	logger.Debug("route complete",
		"waypoints", len(route.Waypoints),
		"total_km", route.TotalDistance,
		"iterations", route.Iterations,
	)
	return route
}

// outcome maps a planner error to a metrics label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrExhaustedReferences):
		return "exhausted_references"
	case errors.Is(err, ErrNoVisibleObjects):
		return "no_visible_objects"
	case errors.Is(err, ErrMaxIterationsExceeded):
		return "max_iterations"
	case errors.Is(err, sky.ErrCatalogUnavailable):
		return "catalog_unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "error"
}
