// Package cache provides a duration-based in-memory response cache.
//
// Entries are written whole under a single lock, so a reader never observes
// a partially written value. Concurrent writes to the same key are
// last-writer-wins, which is acceptable because cached values are idempotent
// recomputations of the same upstream query. There is no eviction beyond
// TTL expiry; the key space is bounded by what one user session queries.
package cache

import (
	"strings"
	"sync"
	"time"
)

// entry pairs a value with the time it was stored.
type entry[T any] struct {
	value    T
	storedAt time.Time
}

// TTL is a time-bounded map keyed by normalized strings.
type TTL[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	now     func() time.Time
}

// New creates an empty cache.
func New[T any]() *TTL[T] {
	return &TTL[T]{
		entries: make(map[string]entry[T]),
		now:     time.Now,
	}
}

// WithClock overrides the cache's time source. Used by tests.
func (c *TTL[T]) WithClock(now func() time.Time) *TTL[T] {
	c.now = now
	return c
}

// Key normalizes query inputs into a cache key: each part lowercased and
// trimmed, so "Drake" and "drake " address the same entry.
func Key(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(normalized, "|")
}

// Get returns the entry for key when present and younger than ttl.
func (c *TTL[T]) Get(key string, ttl time.Duration) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().After(e.storedAt.Add(ttl)) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, stamped with the current time.
func (c *TTL[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{value: value, storedAt: c.now()}
}

// GetOrFetch returns the cached value for key when fresh, and otherwise
// invokes fetch, stores its result, and returns it. The boolean reports
// whether the call was a cache hit. A fetch error stores nothing.
func (c *TTL[T]) GetOrFetch(key string, ttl time.Duration, fetch func() (T, error)) (T, bool, error) {
	if v, ok := c.Get(key, ttl); ok {
		return v, true, nil
	}

	v, err := fetch()
	if err != nil {
		var zero T
		return zero, false, err
	}

	c.Set(key, v)
	return v, false, nil
}

// Purge discards every entry.
func (c *TTL[T]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[T])
}

// Len reports the number of stored entries, including expired ones not yet
// overwritten.
func (c *TTL[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
