// Package ephemeris computes equatorial coordinates of the Sun, the Moon and
// the naked-eye planets, and exposes them as a catalog provider.
package ephemeris

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sternensim/StarNavigation/internal/catalog"
)

// Fixed visual magnitudes used for ranking; real magnitudes vary with phase
// and distance.
var bodyMagnitudes = map[string]float64{
	"Sun":     -26.7,
	"Moon":    -12.7,
	"Mercury": 0.0,
	"Venus":   -4.0,
	"Mars":    0.0,
	"Jupiter": -2.0,
	"Saturn":  0.5,
}

// Provider is a catalog.Provider for solar-system bodies. Safe for concurrent use.
type Provider struct {
	logger *slog.Logger
}

// NewProvider creates an ephemeris provider.
func NewProvider(logger *slog.Logger) *Provider {
	return &Provider{logger: logger}
}

// Query returns the Sun, the Moon and the five naked-eye planets positioned at t.
func (p *Provider) Query(ctx context.Context, t time.Time) ([]catalog.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	objects := make([]catalog.Object, 0, 2+len(Planets))

	ra, dec := SunPosition(t)
	objects = append(objects, body("Sun", catalog.Sun, ra, dec))

	ra, dec = MoonPosition(t)
	objects = append(objects, body("Moon", catalog.Moon, ra, dec))

	for _, name := range Planets {
		ra, dec, err := PlanetPosition(name, t)
		if err != nil {
			return nil, fmt.Errorf("computing %s: %w", name, err)
		}
		objects = append(objects, body(name, catalog.Planet, ra, dec))
	}

	p.logger.Debug("ephemeris computed",
		"time", t.UTC().Format(time.RFC3339),
		"bodies", len(objects),
	)
	return objects, nil
}

func body(name string, typ catalog.ObjectType, ra, dec float64) catalog.Object {
	return catalog.Object{
		Name:           name,
		RightAscension: ra,
		Declination:    dec,
		Magnitude:      bodyMagnitudes[name],
		Type:           typ,
	}
}
