package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sternensim/StarNavigation/internal/geo"
	"github.com/sternensim/StarNavigation/internal/navigation"
	"github.com/sternensim/StarNavigation/internal/routeset"
	"github.com/sternensim/StarNavigation/internal/sky"
)

func buildRequest(start, target, at string) (routeset.Request, error) {
	var req routeset.Request
	if start == "" || target == "" {
		return req, errors.New("-start and -target are required")
	}

	var err error
	if req.Start, err = geo.ParsePosition(start); err != nil {
		return req, fmt.Errorf("start: %w", err)
	}
	if req.Target, err = geo.ParsePosition(target); err != nil {
		return req, fmt.Errorf("target: %w", err)
	}
	if at != "" {
		if req.Time, err = time.Parse(time.RFC3339, at); err != nil {
			return req, fmt.Errorf("time: %w", err)
		}
	}
	return req, nil
}

type errorBody struct {
	Error struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

// errorKind classifies err for callers. Exhausted references are reported
// like no visible objects.
func errorKind(err error) string {
	switch {
	case errors.Is(err, navigation.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, navigation.ErrNoVisibleObjects):
		return "no_visible_objects"
	case errors.Is(err, navigation.ErrMaxIterationsExceeded):
		return "max_iterations_exceeded"
	case errors.Is(err, sky.ErrCatalogUnavailable):
		return "catalog_unavailable"
	default:
		return "internal"
	}
}

func exitCode(err error) int {
	switch errorKind(err) {
	case "invalid_input":
		return 2
	case "no_visible_objects":
		return 3
	case "max_iterations_exceeded":
		return 4
	default:
		return 1
	}
}

func writeError(enc *json.Encoder, err error) {
	var body errorBody
	body.Error.Kind = errorKind(err)
	body.Error.Message = err.Error()
	enc.Encode(body)
}
