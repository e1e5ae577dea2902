package transform

import (
	"math"
	"time"

	"github.com/sternensim/StarNavigation/internal/geo"
)

const (
	// jdJ2000 is the Julian Date of 2000-01-01 12:00 UTC.
	jdJ2000     = 2451545.0
	daysPerCent = 36525.0
)

var epochJ2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// daysSinceJ2000 counts days from the J2000 epoch. time.Duration limits the
// exact range to roughly 1708 through 2292.
func daysSinceJ2000(t time.Time) float64 {
	return float64(t.Sub(epochJ2000)) / float64(24*time.Hour)
}

// JulianDate returns the Julian Date of t. The zone of t is irrelevant.
func JulianDate(t time.Time) float64 {
	return jdJ2000 + daysSinceJ2000(t)
}

// JulianCenturies returns Julian centuries elapsed since J2000.0.
func JulianCenturies(t time.Time) float64 {
	return daysSinceJ2000(t) / daysPerCent
}

// GMST returns Greenwich Mean Sidereal Time in radians, in [0, 2π).
//
// IAU 1982 expression in degrees, with d days and T centuries since J2000
// and UT1 taken as UTC:
//
//	280.46061837 + 360.98564736629 d + 0.000387933 T² - T³/38710000
func GMST(t time.Time) float64 {
	d := daysSinceJ2000(t)
	T := d / daysPerCent

	deg := 280.46061837 +
		360.98564736629*d +
		0.000387933*T*T -
		T*T*T/38710000.0

	return geo.NormalizeDegrees(deg) * math.Pi / 180.0
}

// LocalSiderealTime returns the mean sidereal time at longitude lonDeg
// (east positive) in degrees, in [0, 360).
func LocalSiderealTime(t time.Time, lonDeg float64) float64 {
	return geo.NormalizeDegrees(GMST(t)*180.0/math.Pi + lonDeg)
}

// HourAngle returns the local hour angle in degrees, in [0, 360), of an
// object at right ascension raHours seen from longitude lonDeg.
func HourAngle(t time.Time, lonDeg, raHours float64) float64 {
	return geo.NormalizeDegrees(LocalSiderealTime(t, lonDeg) - raHours*15.0)
}
