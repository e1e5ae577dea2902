package ephemeris

import (
	"fmt"
	"math"
	"time"

	"github.com/sternensim/StarNavigation/internal/geo"
	"github.com/sternensim/StarNavigation/internal/transform"
)

// orbitalElements are Keplerian elements referred to the J2000 ecliptic and
// equinox, with linear rates per Julian century (Standish, "Keplerian
// Elements for Approximate Positions of the Major Planets", 1800-2050 AD).
type orbitalElements struct {
	a, e, i, l, peri, node                   float64 // au, -, deg, deg, deg, deg
	aDot, eDot, iDot, lDot, periDot, nodeDot float64 // per century
}

var earthMoonBarycenter = orbitalElements{
	1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0.0,
	0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0.0,
}

var planetElements = map[string]orbitalElements{
	"Mercury": {
		0.38709927, 0.20563593, 7.00497902, 252.25032350, 77.45779628, 48.33076593,
		0.00000037, 0.00001906, -0.00594749, 149472.67411175, 0.16047689, -0.12534081,
	},
	"Venus": {
		0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255,
		0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418,
	},
	"Mars": {
		1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891,
		0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343,
	},
	"Jupiter": {
		5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
		-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106,
	},
	"Saturn": {
		9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
		-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794,
	},
}

// Planets lists the naked-eye planets in order of distance from the Sun.
var Planets = []string{"Mercury", "Venus", "Mars", "Jupiter", "Saturn"}

// obliquityJ2000 is the mean obliquity of the ecliptic at J2000.0 in degrees.
const obliquityJ2000 = 23.43928

type vec3 struct{ x, y, z float64 }

func (a vec3) sub(b vec3) vec3 { return vec3{a.x - b.x, a.y - b.y, a.z - b.z} }

// heliocentric returns the J2000 ecliptic position in au at T Julian
// centuries from J2000.0.
func (el orbitalElements) heliocentric(T float64) vec3 {
	a := el.a + el.aDot*T
	e := el.e + el.eDot*T
	inc := rad(el.i + el.iDot*T)
	l := el.l + el.lDot*T
	peri := el.peri + el.periDot*T
	node := el.node + el.nodeDot*T

	argPeri := rad(peri - node)
	m := rad(geo.NormalizeDegrees(l - peri))
	E := solveKepler(e, m)

	// Position in the orbital plane, x toward perihelion.
	xp := a * (math.Cos(E) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(E)

	sw, cw := math.Sincos(argPeri)
	sn, cn := math.Sincos(rad(node))
	si, ci := math.Sincos(inc)

	return vec3{
		x: (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp,
		y: (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp,
		z: (sw*si)*xp + (cw*si)*yp,
	}
}

// solveKepler solves M = E - e sin E for E by Newton iteration (radians).
func solveKepler(e, m float64) float64 {
	E := m + e*math.Sin(m)
	for i := 0; i < 30; i++ {
		d := (E - e*math.Sin(E) - m) / (1 - e*math.Cos(E))
		E -= d
		if math.Abs(d) < 1e-12 {
			break
		}
	}
	return E
}

// PlanetPosition returns the geocentric right ascension (hours) and
// declination (degrees) of a naked-eye planet, J2000 equinox. Light time and
// aberration are ignored; accuracy is a few arcminutes for 1800-2050.
func PlanetPosition(name string, t time.Time) (raHours, decDeg float64, err error) {
	el, ok := planetElements[name]
	if !ok {
		return 0, 0, fmt.Errorf("unknown planet %q", name)
	}

	T := transform.JulianCenturies(t)
	rel := el.heliocentric(T).sub(earthMoonBarycenter.heliocentric(T))

	se, ce := math.Sincos(rad(obliquityJ2000))
	yEq := rel.y*ce - rel.z*se
	zEq := rel.y*se + rel.z*ce

	raHours = normalizeHours(deg(math.Atan2(yEq, rel.x)) / 15)
	decDeg = deg(math.Atan2(zEq, math.Hypot(rel.x, yEq)))
	return raHours, decDeg, nil
}

func rad(d float64) float64 { return d * math.Pi / 180 }
func deg(r float64) float64 { return r * 180 / math.Pi }

// normalizeHours maps a right ascension into [0, 24).
func normalizeHours(h float64) float64 {
	h = geo.NormalizeDegrees(h*15) / 15
	if h >= 24 {
		h = 0
	}
	return h
}
