package routeset

import (
	"context"
	"time"

	"github.com/sternensim/StarNavigation/internal/geo"
	"github.com/sternensim/StarNavigation/internal/navigation"
)

const (
	DefaultMaxRoutes = 1
	MaxRoutesLimit   = 5
)

// Request asks for up to MaxRoutes distinct routes between two positions.
// Zero values select the planner defaults; a zero Time means "now".
type Request struct {
	Start           geo.Position      `json:"start"`
	Target          geo.Position      `json:"target"`
	Time            time.Time         `json:"observation_time"`
	StepKm          float64           `json:"step_size_km"`
	MaxIterations   int               `json:"max_iterations"`
	LegStepLimit    int               `json:"leg_step_limit"`
	PrioritizeMajor bool              `json:"prioritize_major"`
	PlanetsOnly     bool              `json:"planets_only"`
	Policy          navigation.Policy `json:"policy"`
	MaxRoutes       int               `json:"max_routes"`
}

// Result is one route of a set.
type Result struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Strategy string `json:"strategy"`
	navigation.Route
}

// Set is the response to a Request. Routes are in generation order.
type Set struct {
	ObservationTime time.Time `json:"observation_time"`
	Routes          []Result  `json:"routes"`
}

// Planner computes a single route.
type Planner interface {
	Plan(ctx context.Context, req navigation.Request) (*navigation.Route, error)
}

// Cache stores encoded sets. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
