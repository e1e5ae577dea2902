package routecache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestPostgresNilDB(t *testing.T) {
	ctx := context.Background()
	p := NewPostgres(nil, 0)

	if p.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", p.ttl, DefaultTTL)
	}
	if _, _, err := p.Get(ctx, "k"); err == nil {
		t.Error("Get with nil db returned nil error")
	}
	if err := p.Set(ctx, "k", nil); err == nil {
		t.Error("Set with nil db returned nil error")
	}
	if err := p.EnsureSchema(ctx); err == nil {
		t.Error("EnsureSchema with nil db returned nil error")
	}
}

// TestPostgresRoundTrip runs against a real database when
// STARNAV_TEST_DATABASE_URL is set.
func TestPostgresRoundTrip(t *testing.T) {
	url := os.Getenv("STARNAV_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("STARNAV_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	db, err := OpenPostgres(ctx, url)
	if err != nil {
		t.Fatalf("OpenPostgres: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	p := NewPostgres(db, time.Minute)
	if err := p.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	key := "test-" + time.Now().Format("20060102150405.000000000")
	t.Cleanup(func() { db.Exec(`DELETE FROM route_set_cache WHERE key = $1`, key) })

	if _, ok, err := p.Get(ctx, key); ok || err != nil {
		t.Fatalf("Get before Set = ok %v, err %v", ok, err)
	}
	for _, v := range []string{"first", "second"} {
		if err := p.Set(ctx, key, []byte(v)); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, ok, err := p.Get(ctx, key)
		if err != nil || !ok || string(got) != v {
			t.Errorf("Get = %q, %v, %v; want %q", got, ok, err, v)
		}
	}
}

func TestOpenPostgresUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := OpenPostgres(ctx, "postgres://nobody@127.0.0.1:1/none?connect_timeout=1"); err == nil {
		t.Error("OpenPostgres against closed port returned nil error")
	}
}
