package navigation

import (
	"fmt"
	"math"
	"time"

	"github.com/sternensim/StarNavigation/internal/catalog"
	"github.com/sternensim/StarNavigation/internal/geo"
)

const (
	DefaultStepKm        = 10.0
	DefaultMaxIterations = 100
	DefaultLegStepLimit  = 10000
)

// Reason explains why a leg ended.
type Reason string

const (
	TargetReached   Reason = "target_reached"
	ObjectLost      Reason = "object_lost"
	ClosestApproach Reason = "closest_approach"
)

// Reference is the object a leg was steered by, as it appeared when chosen.
type Reference struct {
	Name      string             `json:"name"`
	Type      catalog.ObjectType `json:"object_type"`
	Magnitude float64            `json:"magnitude"`
	Azimuth   float64            `json:"azimuth"`
	Altitude  float64            `json:"altitude"`
}

// Waypoint is the end of one leg. Reference is nil only for a final entry
// appended because the navigator already stood within tolerance of the target.
type Waypoint struct {
	Position         geo.Position `json:"position"`
	Reference        *Reference   `json:"reference_object"`
	Reason           Reason       `json:"reason"`
	Timestamp        time.Time    `json:"timestamp"`
	DistanceToTarget float64      `json:"distance_to_target"`
}

// Route is the outcome of one successful planner run. TotalDistance sums the
// leg chords plus the closing distance from the last waypoint to the target.
type Route struct {
	Waypoints       []Waypoint `json:"waypoints"`
	TotalDistance   float64    `json:"total_distance"`
	DirectDistance  float64    `json:"direct_distance"`
	TargetTolerance float64    `json:"target_tolerance"`
	Iterations      int        `json:"iterations"`
	UsedObjects     []string   `json:"used_objects"`
}

// Params tunes a planner run. Zero values select the defaults.
type Params struct {
	StepKm          float64
	MaxIterations   int
	LegStepLimit    int
	PrioritizeMajor bool
	PlanetsOnly     bool
	Policy          Policy
	// Excluded names may never be chosen as a reference. They are kept apart
	// from the route's used objects.
	Excluded []string
}

// Request is one route computation from Start to Target as seen at Time.
type Request struct {
	Start  geo.Position
	Target geo.Position
	Time   time.Time
	Params
}

func (r Request) withDefaults() Request {
	if r.StepKm == 0 {
		r.StepKm = DefaultStepKm
	}
	if r.MaxIterations == 0 {
		r.MaxIterations = DefaultMaxIterations
	}
	if r.LegStepLimit == 0 {
		r.LegStepLimit = DefaultLegStepLimit
	}
	if r.Policy == "" {
		r.Policy = ClosestBearing
	}
	return r
}

// Validate reports an ErrInvalidInput for out-of-range input.
func (r Request) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidInput, err)
	}
	if err := r.Target.Validate(); err != nil {
		return fmt.Errorf("%w: target: %v", ErrInvalidInput, err)
	}
	switch {
	case r.Time.IsZero():
		return fmt.Errorf("%w: observation time is required", ErrInvalidInput)
	case math.IsNaN(r.StepKm) || math.IsInf(r.StepKm, 0) || r.StepKm <= 0:
		return fmt.Errorf("%w: step size %v must be positive", ErrInvalidInput, r.StepKm)
	case r.MaxIterations < 1:
		return fmt.Errorf("%w: max iterations %d must be at least 1", ErrInvalidInput, r.MaxIterations)
	case r.LegStepLimit < 1:
		return fmt.Errorf("%w: leg step limit %d must be at least 1", ErrInvalidInput, r.LegStepLimit)
	}
	if _, err := ParsePolicy(string(r.Policy)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// Tolerance is the arrival radius in km for a run whose initial direct
// distance is directKm: 5% of the distance, capped at 5 km.
func Tolerance(directKm float64) float64 {
	return math.Min(directKm*0.05, 5.0)
}
