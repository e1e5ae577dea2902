package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// Parse reads a catalog file from r. Each record is
//
//	name,ra_hours,dec_deg,magnitude[,type]
//
// Lines starting with '#' are comments and an optional header row whose first
// field is "name" is ignored. Malformed records are skipped with a warning
// log. When a name repeats, the later record replaces the earlier one.
func Parse(r io.Reader, logger *slog.Logger) ([]Object, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var objects []Object
	index := make(map[string]int)
	first := true

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				logger.Warn("skipping malformed catalog record", "line", pe.Line, "error", pe.Err)
				continue
			}
			return nil, fmt.Errorf("reading catalog data: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(rec[0]), "name") {
				continue
			}
		}

		obj, err := parseRecord(rec)
		if err != nil {
			logger.Warn("skipping invalid catalog record", "line", line, "error", err)
			continue
		}

		if i, ok := index[obj.Name]; ok {
			logger.Warn("duplicate catalog entry replaces earlier record", "line", line, "name", obj.Name)
			objects[i] = obj
			continue
		}
		index[obj.Name] = len(objects)
		objects = append(objects, obj)
	}

	return objects, nil
}

func parseRecord(rec []string) (Object, error) {
	if len(rec) < 4 || len(rec) > 5 {
		return Object{}, fmt.Errorf("expected 4 or 5 fields, got %d", len(rec))
	}

	var (
		obj Object
		err error
	)
	obj.Name = strings.TrimSpace(rec[0])

	if obj.RightAscension, err = parseFloat(rec[1]); err != nil {
		return Object{}, fmt.Errorf("invalid right ascension: %w", err)
	}
	if obj.Declination, err = parseFloat(rec[2]); err != nil {
		return Object{}, fmt.Errorf("invalid declination: %w", err)
	}
	if obj.Magnitude, err = parseFloat(rec[3]); err != nil {
		return Object{}, fmt.Errorf("invalid magnitude: %w", err)
	}

	typ := ""
	if len(rec) == 5 {
		typ = rec[4]
	}
	if obj.Type, err = ParseObjectType(typ); err != nil {
		return Object{}, err
	}

	if err := obj.Validate(); err != nil {
		return Object{}, err
	}
	return obj, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// Overlay returns base with every object of overrides applied: an override
// replaces the base entry of the same name in place, new names are appended.
func Overlay(base, overrides []Object) []Object {
	out := make([]Object, len(base), len(base)+len(overrides))
	copy(out, base)

	index := make(map[string]int, len(out))
	for i, o := range out {
		index[o.Name] = i
	}
	for _, o := range overrides {
		if i, ok := index[o.Name]; ok {
			out[i] = o
			continue
		}
		index[o.Name] = len(out)
		out = append(out, o)
	}
	return out
}
