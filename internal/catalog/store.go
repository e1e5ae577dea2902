package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"
)

// ErrEmptyCatalog is returned when a query runs before any dataset is loaded.
var ErrEmptyCatalog = errors.New("no catalog dataset loaded")

// Store provides thread-safe access to the current star dataset.
type Store struct {
	dataset atomic.Pointer[Dataset]
}

// NewStore creates a new empty Store.
func NewStore() *Store {
	return &Store{}
}

// Get returns the current dataset, or nil if none has been loaded.
func (s *Store) Get() *Dataset {
	return s.dataset.Load()
}

// Set atomically replaces the current dataset.
func (s *Store) Set(ds *Dataset) {
	s.dataset.Store(ds)
}

// AgeSeconds returns the age of the current dataset in seconds.
// Returns -1 if no dataset is loaded.
func (s *Store) AgeSeconds() float64 {
	ds := s.dataset.Load()
	if ds == nil {
		return -1
	}
	return time.Since(ds.LoadedAt).Seconds()
}

// Query returns the objects of the current dataset. Star coordinates do not
// depend on t. The returned slice is shared and must not be modified.
func (s *Store) Query(ctx context.Context, _ time.Time) ([]Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ds := s.dataset.Load()
	if ds == nil {
		return nil, ErrEmptyCatalog
	}
	return ds.Objects, nil
}

// Builtin returns a dataset holding the built-in bright-star table.
func Builtin() *Dataset {
	return &Dataset{
		Source:   "builtin",
		LoadedAt: time.Now(),
		Objects:  BrightStars(),
	}
}

// LoadFile parses the catalog file at path and overlays it on the built-in
// bright-star table. An empty path yields the built-in table alone.
func LoadFile(path string, logger *slog.Logger) (*Dataset, error) {
	if path == "" {
		return Builtin(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()

	parsed, err := Parse(f, logger)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
	}

	objects := Overlay(BrightStars(), parsed)
	logger.Info("catalog loaded",
		"source", path,
		"file_objects", len(parsed),
		"total_objects", len(objects),
	)

	return &Dataset{
		Source:   path,
		LoadedAt: time.Now(),
		Objects:  objects,
	}, nil
}
