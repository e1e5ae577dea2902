package ephemeris

import (
	"time"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/solar"
)

// SunPosition returns the apparent geocentric right ascension (hours) and
// declination (degrees) of the Sun. UTC is used in place of TT; the
// difference of about a minute is far below the navigation step size.
func SunPosition(t time.Time) (raHours, decDeg float64) {
	jde := julian.TimeToJD(t.UTC())
	ra, dec := solar.ApparentEquatorial(jde)
	return normalizeHours(ra.Hour()), dec.Deg()
}

// MoonPosition returns the geocentric right ascension (hours) and
// declination (degrees) of the Moon, referred to the mean equinox of date.
// Topocentric parallax (up to about a degree) is not applied.
func MoonPosition(t time.Time) (raHours, decDeg float64) {
	jde := julian.TimeToJD(t.UTC())
	lon, lat, _ := moonposition.Position(jde)
	sinEps, cosEps := nutation.MeanObliquity(jde).Sincos()
	ra, dec := coord.EclToEq(lon, lat, sinEps, cosEps)
	return normalizeHours(ra.Hour()), dec.Deg()
}
