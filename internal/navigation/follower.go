package navigation

import (
	"time"

	"github.com/sternensim/StarNavigation/internal/geo"
	"github.com/sternensim/StarNavigation/internal/sky"
	"github.com/sternensim/StarNavigation/internal/transform"
)

// LegConfig bounds one leg.
type LegConfig struct {
	StepKm    float64
	Tolerance float64 // arrival radius in km
	StepLimit int     // safety ceiling on simulated steps
}

// Leg is where following one reference ended.
type Leg struct {
	End    geo.Position
	Reason Reason
	Steps  int
}

// Follow walks from start toward ref in steps of cfg.StepKm, re-sighting
// ref after every step, until one of:
//
//   - ref drops to or below the horizon: ObjectLost at the last position
//     where it was still visible;
//   - distance to target grows: ClosestApproach at the nearest position seen;
//   - distance to target falls below cfg.Tolerance: TargetReached.
//
// Object coordinates are evaluated at the fixed instant t. If cfg.StepLimit
// steps pass without a stop, Follow returns an ObjectLost leg at the current
// position together with errLegNonTermination.
func Follow(start, target geo.Position, ref sky.Sighting, t time.Time, cfg LegConfig) (Leg, error) {
	cur := start
	azimuth := ref.Azimuth
	prevDist := geo.Distance(cur, target)
	minPos, minDist := cur, prevDist

	for step := 1; step <= cfg.StepLimit; step++ {
		next := geo.Move(cur, azimuth, cfg.StepKm)

		hc := transform.Horizontal(ref.Object.RightAscension, ref.Object.Declination, next, t)
		if !hc.AboveHorizon() {
			return Leg{End: cur, Reason: ObjectLost, Steps: step}, nil
		}

		d := geo.Distance(next, target)
		if d > prevDist {
			return Leg{End: minPos, Reason: ClosestApproach, Steps: step}, nil
		}
		if d < cfg.Tolerance {
			return Leg{End: next, Reason: TargetReached, Steps: step}, nil
		}

		if d < minDist {
			minPos, minDist = next, d
		}
		prevDist = d
		cur = next
		azimuth = hc.Azimuth
	}

	return Leg{End: cur, Reason: ObjectLost, Steps: cfg.StepLimit}, errLegNonTermination
}
