// Package cache provides a bounded in-memory cache with time-based expiry.
package cache

import (
	"sync"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Defaults applied when New receives non-positive limits.
const (
	DefaultTTL     = 5 * time.Minute
	DefaultMaxSize = 100
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache maps string keys to values that expire ttl after they were stored.
// When full, the oldest inserted entry is evicted first. Reads do not
// reorder entries or extend their lifetime.
//
// Cache is safe for concurrent use by multiple goroutines.
type Cache[V any] struct {
	mu      sync.Mutex
	entries *orderedmap.OrderedMap[string, entry[V]]
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the time source used to stamp and age entries.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New creates a Cache holding at most maxSize entries for ttl each.
func New[V any](ttl time.Duration, maxSize int, opts ...Option) *Cache[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Cache[V]{
		entries: orderedmap.New[string, entry[V]](),
		ttl:     ttl,
		maxSize: maxSize,
		now:     o.now,
	}
}

// Set stores value under key with the current time. A full cache evicts
// its oldest entry first, even when key is already present. An existing
// key keeps its insertion position unless it was the one evicted.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries.Len() >= c.maxSize {
		if oldest := c.entries.Oldest(); oldest != nil {
			c.entries.Delete(oldest.Key)
		}
	}

	c.entries.Set(key, entry[V]{value: value, storedAt: c.now()})
}

// Get returns the value stored under key.
// The bool result is false if the key is missing or its entry has expired;
// expired entries are removed.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries.Get(key)
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		c.entries.Delete(key)
		return zero, false
	}
	return e.value, true
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = orderedmap.New[string, entry[V]]()
}

// Len returns the number of stored entries, including expired entries
// that have not been read since they expired.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// Keys returns the stored keys from oldest to newest.
func (c *Cache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, c.entries.Len())
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}
