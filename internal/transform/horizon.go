package transform

import (
	"math"
	"time"

	"github.com/sternensim/StarNavigation/internal/geo"
)

// HorizonCoordinates is the position of an object in an observer's local
// horizon frame.
type HorizonCoordinates struct {
	Azimuth  float64 `json:"azimuth"`  // degrees, 0 = North, clockwise, [0, 360)
	Altitude float64 `json:"altitude"` // degrees, 0 = horizon, 90 = zenith
}

// AboveHorizon reports whether the object is above the mathematical horizon.
func (h HorizonCoordinates) AboveHorizon() bool { return h.Altitude > 0 }

// Horizontal converts equatorial coordinates (right ascension in hours,
// declination in degrees) to azimuth/altitude for an observer at time t.
//
// No refraction, parallax or horizon dip is applied. Intermediate cosines
// are clamped to [-1, 1] before inverse trig. Azimuth is resolved from
// acos and a hour-angle quadrant test, whose denominator cos(lat)*cos(alt)
// tends to zero at the poles and at the zenith: above 85° observer latitude
// azimuth precision degrades and directly at a pole (or for an object at the
// zenith) azimuth collapses to 0 or 180. Altitude stays well defined
// everywhere.
func Horizontal(raHours, decDeg float64, observer geo.Position, t time.Time) HorizonCoordinates {
	lat := observer.Latitude * math.Pi / 180.0
	dec := decDeg * math.Pi / 180.0
	ha := HourAngle(t, observer.Longitude, raHours) * math.Pi / 180.0

	sinLat, cosLat := math.Sincos(lat)
	sinDec, cosDec := math.Sincos(dec)
	sinHA, cosHA := math.Sincos(ha)

	sinAlt := clampUnit(sinDec*sinLat + cosDec*cosLat*cosHA)
	alt := math.Asin(sinAlt)

	cosAz := clampUnit((sinDec - sinLat*sinAlt) / (cosLat * math.Cos(alt)))
	az := math.Acos(cosAz) * 180.0 / math.Pi

	// West of the meridian (0 < HA < 180) the object lies in the western half.
	if -cosDec*sinHA < 0 {
		az = 360.0 - az
	}

	return HorizonCoordinates{
		Azimuth:  geo.NormalizeDegrees(az),
		Altitude: alt * 180.0 / math.Pi,
	}
}

// clampUnit limits x to [-1, 1]. NaN, which arises from 0/0 at the poles,
// maps to 1.
func clampUnit(x float64) float64 {
	switch {
	case math.IsNaN(x) || x > 1:
		return 1
	case x < -1:
		return -1
	}
	return x
}
