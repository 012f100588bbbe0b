// Package cache provides a concurrent-safe in-memory TTL cache. Instances are
// constructed at process start and passed into consumers explicitly; there are
// no package-level singletons. Expiry is evaluated lazily on read, so an
// expired entry occupies memory until its key is next requested.
package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// Common TTLs used across the service.
const (
	Day      = 24 * time.Hour
	SixHours = 6 * time.Hour
	// Forever is the dataset TTL; datasets are immutable for the process
	// lifetime.
	Forever = 365 * Day
)

// TTLCache is a string-keyed cache whose entries expire after a TTL. A zero
// per-entry TTL falls back to the cache default. At-most-once computation is
// not guaranteed: concurrent misses on the same key may both perform the
// underlying work.
type TTLCache[V any] struct {
	mu         sync.RWMutex
	entries    map[string]entry[V]
	defaultTTL time.Duration
	now        func() time.Time
	hits       atomic.Int64
	misses     atomic.Int64
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Stats reports cache performance counters.
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// New creates a TTLCache with the given default TTL.
func New[V any](defaultTTL time.Duration) *TTLCache[V] {
	return &TTLCache[V]{
		entries:    make(map[string]entry[V]),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// WithNow sets a custom clock for testing.
func (c *TTLCache[V]) WithNow(now func() time.Time) *TTLCache[V] {
	c.now = now
	return c
}

// Get returns the cached value for key. The second return is false on a miss
// or when the entry has expired; expired entries are deleted on read.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		c.misses.Add(1)
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check: a concurrent Set may have refreshed the entry.
		if cur, still := c.entries[key]; still && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		c.misses.Add(1)
		return zero, false
	}
	c.hits.Add(1)
	return e.value, true
}

// Set stores a value under key with the cache's default TTL.
func (c *TTLCache[V]) Set(key string, value V) {
	c.SetTTL(key, value, c.defaultTTL)
}

// SetTTL stores a value under key with an explicit TTL.
func (c *TTLCache[V]) SetTTL(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Len returns the number of stored entries, including any not yet reaped.
func (c *TTLCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *TTLCache[V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
}

// Stats returns hit/miss counters and the current entry count.
func (c *TTLCache[V]) Stats() Stats {
	return Stats{
		Entries: c.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}
