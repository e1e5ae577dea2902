package catalog

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ObjectType classifies a celestial object.
type ObjectType string

const (
	Star   ObjectType = "star"
	Planet ObjectType = "planet"
	Moon   ObjectType = "moon"
	Sun    ObjectType = "sun"
)

// IsMajor reports whether t is a solar-system body (planet, Moon or Sun).
func (t ObjectType) IsMajor() bool {
	return t == Planet || t == Moon || t == Sun
}

// ParseObjectType parses a type name case-insensitively. An empty string is a star.
func ParseObjectType(s string) (ObjectType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "star":
		return Star, nil
	case "planet":
		return Planet, nil
	case "moon":
		return Moon, nil
	case "sun":
		return Sun, nil
	}
	return "", fmt.Errorf("unknown object type %q", s)
}

// Object is a catalog entry. It carries only observer-independent data;
// azimuth and altitude are computed per observation by the sky package.
type Object struct {
	Name           string     `json:"name"`
	RightAscension float64    `json:"right_ascension"` // hours, [0, 24)
	Declination    float64    `json:"declination"`     // degrees, [-90, 90]
	Magnitude      float64    `json:"magnitude"`       // lower is brighter
	Type           ObjectType `json:"object_type"`
}

// Validate checks the coordinate ranges of o.
func (o Object) Validate() error {
	switch {
	case strings.TrimSpace(o.Name) == "":
		return fmt.Errorf("object name is empty")
	case math.IsNaN(o.RightAscension) || o.RightAscension < 0 || o.RightAscension >= 24:
		return fmt.Errorf("%s: right ascension %v out of range [0, 24)", o.Name, o.RightAscension)
	case math.IsNaN(o.Declination) || o.Declination < -90 || o.Declination > 90:
		return fmt.Errorf("%s: declination %v out of range [-90, 90]", o.Name, o.Declination)
	case math.IsNaN(o.Magnitude) || math.IsInf(o.Magnitude, 0):
		return fmt.Errorf("%s: magnitude %v is not finite", o.Name, o.Magnitude)
	}
	return nil
}

// Dataset is a loaded set of catalog objects.
type Dataset struct {
	Source   string
	LoadedAt time.Time
	Objects  []Object
}
