package cache

import (
	"sync"
	"time"
)

// TTLCache is a small map-backed cache where every entry expires after a
// fixed duration. No size-based eviction: the key space here is tiny (one
// record-set key, a handful of summary keys) and CleanExpired bounds growth.
type TTLCache[T any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]ttlItem[T]
}

type ttlItem[T any] struct {
	data      T
	expiresAt time.Time
}

var _ Cache[string] = (*TTLCache[string])(nil)
var _ Cleaner = (*TTLCache[string])(nil)

// NewTTLCache creates a cache whose entries live for ttl.
func NewTTLCache[T any](ttl time.Duration) *TTLCache[T] {
	return &TTLCache[T]{
		ttl:   ttl,
		items: make(map[string]ttlItem[T]),
	}
}

// Get retrieves a value from the cache. Expired entries are removed on
// access and reported as missing.
func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	item, exists := c.items[key]
	if !exists {
		return zero, false
	}
	if time.Now().After(item.expiresAt) {
		delete(c.items, key)
		return zero, false
	}
	return item.data, true
}

// Set stores a value, restarting its TTL.
func (c *TTLCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = ttlItem[T]{data: data, expiresAt: time.Now().Add(c.ttl)}
}

// Delete removes a key from the cache.
func (c *TTLCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear removes every entry.
func (c *TTLCache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]ttlItem[T])
}

// CleanExpired removes all expired entries and returns how many were removed.
func (c *TTLCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

// Size returns the current number of items in the cache
func (c *TTLCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
