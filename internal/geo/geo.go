// Package geo provides spherical-earth geodesy for surface navigation.
//
// All functions treat Earth as a sphere of radius EarthRadiusKm. Altitude is
// carried on Position for callers but never enters distance or bearing math.
package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EarthRadiusKm is the mean Earth radius used for all great-circle math.
const EarthRadiusKm = 6371.0

// Position is a point on Earth's surface.
type Position struct {
	Latitude  float64 `json:"latitude"`  // degrees, [-90, 90]
	Longitude float64 `json:"longitude"` // degrees, [-180, 180]
	Altitude  float64 `json:"altitude"`  // meters above sea level, >= 0
}

// Validate reports whether p lies inside the accepted coordinate ranges.
func (p Position) Validate() error {
	switch {
	case math.IsNaN(p.Latitude) || p.Latitude < -90 || p.Latitude > 90:
		return fmt.Errorf("latitude %v out of range [-90, 90]", p.Latitude)
	case math.IsNaN(p.Longitude) || p.Longitude < -180 || p.Longitude > 180:
		return fmt.Errorf("longitude %v out of range [-180, 180]", p.Longitude)
	case math.IsNaN(p.Altitude) || p.Altitude < 0:
		return fmt.Errorf("altitude %v must be >= 0", p.Altitude)
	}
	return nil
}

// String formats p as "lat,lon" with four decimals.
func (p Position) String() string {
	return fmt.Sprintf("%.4f,%.4f", p.Latitude, p.Longitude)
}

// ParsePosition parses "lat,lon" or "lat,lon,alt" and validates the result.
func ParsePosition(s string) (Position, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return Position{}, fmt.Errorf("position %q: want lat,lon[,alt]", s)
	}

	vals := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Position{}, fmt.Errorf("position %q: %w", s, err)
		}
		vals[i] = v
	}

	p := Position{Latitude: vals[0], Longitude: vals[1]}
	if len(vals) == 3 {
		p.Altitude = vals[2]
	}
	if err := p.Validate(); err != nil {
		return Position{}, err
	}
	return p, nil
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180.0 }
func toDegrees(rad float64) float64 { return rad * 180.0 / math.Pi }

// Distance returns the haversine great-circle distance between p1 and p2 in km.
func Distance(p1, p2 Position) float64 {
	lat1 := toRadians(p1.Latitude)
	lat2 := toRadians(p2.Latitude)
	dLat := lat2 - lat1
	dLon := toRadians(p2.Longitude - p1.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Bearing returns the initial great-circle bearing from one position to
// another in degrees, in [0, 360). 0 = North, 90 = East.
func Bearing(from, to Position) float64 {
	lat1 := toRadians(from.Latitude)
	lat2 := toRadians(to.Latitude)
	dLon := toRadians(to.Longitude - from.Longitude)

	x := math.Sin(dLon) * math.Cos(lat2)
	y := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	return NormalizeDegrees(toDegrees(math.Atan2(x, y)))
}

// Move projects p distanceKm along the great circle that starts on
// bearingDeg (direct geodesic problem on a sphere). Altitude is preserved and
// the resulting longitude is wrapped into [-180, 180).
func Move(p Position, bearingDeg, distanceKm float64) Position {
	lat1 := toRadians(p.Latitude)
	lon1 := toRadians(p.Longitude)
	brg := toRadians(bearingDeg)
	ang := distanceKm / EarthRadiusKm

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(ang) +
		math.Cos(lat1)*math.Sin(ang)*math.Cos(brg))
	lon2 := lon1 + math.Atan2(
		math.Sin(brg)*math.Sin(ang)*math.Cos(lat1),
		math.Cos(ang)-math.Sin(lat1)*math.Sin(lat2),
	)

	return Position{
		Latitude:  toDegrees(lat2),
		Longitude: wrapLongitude(toDegrees(lon2)),
		Altitude:  p.Altitude,
	}
}

// AngularSeparation returns the circular distance between two bearings or
// azimuths in degrees, in [0, 180].
func AngularSeparation(a, b float64) float64 {
	diff := math.Abs(NormalizeDegrees(a) - NormalizeDegrees(b))
	return math.Min(diff, 360-diff)
}

// NormalizeDegrees maps any angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// math.Mod of a tiny negative value plus 360 rounds to exactly 360.
	if deg >= 360 {
		deg = 0
	}
	return deg
}

func wrapLongitude(lon float64) float64 {
	if lon >= -180 && lon < 180 {
		return lon
	}
	return NormalizeDegrees(lon+180) - 180
}

var cardinals = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Cardinal returns the 8-point compass direction nearest to bearingDeg.
func Cardinal(bearingDeg float64) string {
	idx := int(math.Round(NormalizeDegrees(bearingDeg)/45)) % len(cardinals)
	return cardinals[idx]
}
