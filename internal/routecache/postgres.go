package routecache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres stores route sets in a SQL table keyed by fingerprint.
type Postgres struct {
	DB  *sql.DB
	ttl time.Duration
}

// OpenPostgres connects to databaseURL through the pgx driver and verifies
// the connection.
func OpenPostgres(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("verify postgres connection: %w", err)
	}
	return db, nil
}

// NewPostgres wraps db. A non-positive ttl uses DefaultTTL.
func NewPostgres(db *sql.DB, ttl time.Duration) *Postgres {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Postgres{DB: db, ttl: ttl}
}

// EnsureSchema creates the cache table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if p.DB == nil {
		return errors.New("route cache: db is nil")
	}
	_, err := p.DB.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS route_set_cache (
		key TEXT PRIMARY KEY,
		value BYTEA NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	);
	`)
	if err != nil {
		return fmt.Errorf("create route_set_cache table: %w", err)
	}
	return nil
}

// Get returns the unexpired value stored under key.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if p.DB == nil {
		return nil, false, errors.New("route cache: db is nil")
	}

	var val []byte
	err := p.DB.QueryRowContext(ctx, `
	SELECT value
	FROM route_set_cache
	WHERE key = $1
		AND expires_at > now();
	`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: query route_set_cache table: %w", err)
	}
	return val, true, nil
}

// Set upserts value under key with a fresh expiry.
func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	if p.DB == nil {
		return errors.New("route cache: db is nil")
	}

	_, err := p.DB.ExecContext(ctx, `
	INSERT INTO route_set_cache (key, value, expires_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
		expires_at = EXCLUDED.expires_at;
	`, key, value, time.Now().Add(p.ttl))
	if err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}
	return nil
}
