package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStore(t *testing.T) {
	s := NewStore()
	if s.Get() != nil {
		t.Fatal("new store should be empty")
	}
	if age := s.AgeSeconds(); age != -1 {
		t.Errorf("AgeSeconds on empty store = %v, want -1", age)
	}
	if _, err := s.Query(context.Background(), time.Now()); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("Query on empty store error = %v, want ErrEmptyCatalog", err)
	}

	ds := &Dataset{Source: "test", LoadedAt: time.Now().Add(-10 * time.Second), Objects: BrightStars()[:3]}
	s.Set(ds)

	if s.Get() != ds {
		t.Error("Get did not return the stored dataset")
	}
	if age := s.AgeSeconds(); age < 10 || age > 60 {
		t.Errorf("AgeSeconds = %v, want ~10", age)
	}
	objs, err := s.Query(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(objs) != 3 {
		t.Errorf("Query returned %d objects, want 3", len(objs))
	}
}

func TestStoreQueryCanceled(t *testing.T) {
	s := NewStore()
	s.Set(Builtin())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Query(ctx, time.Now()); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stars.csv")
	data := "Sirius,6.7525,-16.7161,-1.50\nMizar,13.3988,54.9254,2.23\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	ds, err := LoadFile(path, testLogger)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if ds.Source != path {
		t.Errorf("Source = %q, want %q", ds.Source, path)
	}
	if len(ds.Objects) != 51 {
		t.Errorf("got %d objects, want 51 (50 built-in + Mizar)", len(ds.Objects))
	}
	if ds.Objects[0].Name != "Sirius" || ds.Objects[0].Magnitude != -1.50 {
		t.Errorf("Sirius not overridden in place: %+v", ds.Objects[0])
	}
	if last := ds.Objects[len(ds.Objects)-1]; last.Name != "Mizar" {
		t.Errorf("last object = %q, want Mizar", last.Name)
	}
}

func TestLoadFileBuiltin(t *testing.T) {
	ds, err := LoadFile("", testLogger)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if ds.Source != "builtin" || len(ds.Objects) != 50 {
		t.Errorf("got source %q with %d objects, want builtin with 50", ds.Source, len(ds.Objects))
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.csv"), testLogger); err == nil {
		t.Fatal("expected error for missing file")
	}
}
