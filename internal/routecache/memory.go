// Package routecache stores encoded route sets keyed by request fingerprint.
//
// Memory serves a single process. Redis and Postgres share results between
// planner instances. All backends store opaque bytes; the caller owns the
// encoding.
package routecache

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTTL bounds how long a cached route set is served.
const DefaultTTL = 10 * time.Minute

// DefaultMaxEntries caps the in-memory cache size.
const DefaultMaxEntries = 256

type entry struct {
	value     []byte
	storedAt  time.Time
	expiresAt time.Time
}

// Memory is an in-process TTL cache. Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*entry

	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	logger     *slog.Logger

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewMemory creates a memory cache. Non-positive ttl or maxEntries fall back
// to the package defaults.
func NewMemory(ttl time.Duration, maxEntries int, logger *slog.Logger) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	logger.Info("route cache initialized",
		"backend", "memory",
		"ttl_seconds", ttl.Seconds(),
		"max_entries", maxEntries,
	)
	return &Memory{
		entries:    make(map[string]*entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		logger:     logger,
	}
}

// Get returns the cached value for key. Expired entries count as misses.
func (c *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(e.expiresAt) {
		c.misses.Add(1)
		return nil, false, nil
	}

	c.hits.Add(1)
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true, nil
}

// Set stores value under key, evicting expired entries and then the oldest
// entry when the cache is full.
func (c *Memory) Set(_ context.Context, key string, value []byte) error {
	now := c.now()
	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.entries[key] = &entry{value: stored, storedAt: now, expiresAt: now.Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

// evictLocked drops expired entries, or the oldest one if none expired.
// Caller must hold mu.
func (c *Memory) evictLocked(now time.Time) {
	var removed int
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			removed++
			continue
		}
		if oldestKey == "" || e.storedAt.Before(oldest) {
			oldestKey, oldest = k, e.storedAt
		}
	}
	if removed == 0 && oldestKey != "" {
		delete(c.entries, oldestKey)
		removed = 1
	}
	c.evictions.Add(int64(removed))
	c.logger.Debug("route cache eviction", "entries_removed", removed)
}

// Stats returns current cache statistics.
func (c *Memory) Stats() Stats {
	c.mu.RLock()
	count := len(c.entries)
	c.mu.RUnlock()

	return Stats{
		Entries:   count,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// Stats holds cache counters.
type Stats struct {
	Entries   int
	Hits      int64
	Misses    int64
	Evictions int64
}
