package navigation

import (
	"fmt"
	"math"

	"github.com/sternensim/StarNavigation/internal/geo"
	"github.com/sternensim/StarNavigation/internal/sky"
)

// Policy selects how candidate references are ranked.
type Policy string

const (
	// ClosestBearing picks the object whose azimuth is nearest the bearing to
	// the target.
	ClosestBearing Policy = "closest-bearing"
	// AltitudeWeighted favors high objects, which stay visible for longer
	// legs and so tend to produce fewer waypoints.
	AltitudeWeighted Policy = "altitude-weighted"
)

// ParsePolicy parses a policy name. An empty name is ClosestBearing.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", ClosestBearing:
		return ClosestBearing, nil
	case AltitudeWeighted:
		return AltitudeWeighted, nil
	}
	return "", fmt.Errorf("unknown selection policy %q", s)
}

const (
	// MajorBodyDiscountDeg is subtracted from the bearing error of planets,
	// the Moon and the Sun when major bodies are prioritized.
	MajorBodyDiscountDeg = 30.0
	// AltitudeBonusDeg is the bearing error forgiven for an object at the
	// zenith under AltitudeWeighted, scaled linearly with altitude.
	AltitudeBonusDeg = 20.0
)

// Score returns the ranking key of s for a desired bearing; lower is better.
// It starts as the angular separation between azimuth and bearing and is
// never negative.
func Score(s sky.Sighting, bearing float64, policy Policy, prioritizeMajor bool) float64 {
	score := geo.AngularSeparation(s.Azimuth, bearing)
	if prioritizeMajor && s.Object.Type.IsMajor() {
		score = math.Max(0, score-MajorBodyDiscountDeg)
	}
	if policy == AltitudeWeighted {
		score = math.Max(0, score-s.Altitude/90*AltitudeBonusDeg)
	}
	return score
}

// Select returns the best reference among sightings. Ties on score go to
// the brighter object, then to the lexically smaller name. ok is false when
// sightings is empty.
func Select(sightings []sky.Sighting, bearing float64, policy Policy, prioritizeMajor bool) (best sky.Sighting, ok bool) {
	bestScore := math.Inf(1)
	for _, s := range sightings {
		score := Score(s, bearing, policy, prioritizeMajor)
		if !ok || better(score, s, bestScore, best) {
			best, bestScore, ok = s, score, true
		}
	}
	return best, ok
}

func better(score float64, s sky.Sighting, bestScore float64, best sky.Sighting) bool {
	if score != bestScore {
		return score < bestScore
	}
	if s.Object.Magnitude != best.Object.Magnitude {
		return s.Object.Magnitude < best.Object.Magnitude
	}
	return s.Object.Name < best.Object.Name
}
