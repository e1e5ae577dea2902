package routeset

import "github.com/sternensim/StarNavigation/internal/navigation"

// Strategy names, in generation order.
const (
	StrategyBaseline        = "baseline"
	StrategyAlternatePolicy = "alternate-policy"
	StrategyExcludeFirst    = "exclude-first"
	StrategyExcludeFirstTwo = "exclude-first-two"
	StrategyFlipMajor       = "flip-major"
)

// flipMajorStepFactor scales the step size of the flip-major variant.
const flipMajorStepFactor = 1.5

type variant struct {
	strategy string
	req      navigation.Request
}

// alternates derives the diversity variants from the baseline request. The
// exclusion seeds need the baseline's references, so they are omitted when
// the baseline failed or used too few objects.
func alternates(base navigation.Request, baseline *navigation.Route) []variant {
	var out []variant

	alt := base
	alt.Policy = navigation.AltitudeWeighted
	if base.Policy == navigation.AltitudeWeighted {
		alt.Policy = navigation.ClosestBearing
	}
	out = append(out, variant{StrategyAlternatePolicy, alt})

	if baseline != nil && len(baseline.UsedObjects) >= 1 {
		r := base
		r.Excluded = []string{baseline.UsedObjects[0]}
		out = append(out, variant{StrategyExcludeFirst, r})
	}
	if baseline != nil && len(baseline.UsedObjects) >= 2 {
		r := base
		r.Excluded = []string{baseline.UsedObjects[0], baseline.UsedObjects[1]}
		out = append(out, variant{StrategyExcludeFirstTwo, r})
	}

	r := base
	r.PrioritizeMajor = !base.PrioritizeMajor
	r.StepKm = base.StepKm * flipMajorStepFactor
	out = append(out, variant{StrategyFlipMajor, r})

	return out
}
