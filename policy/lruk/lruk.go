// Package lruk implements the LRU-K admission-gated variant: entries must
// be accessed K times before they are promoted into the main LRU cache,
// which shields it from one-shot scans.
package lruk

import (
	"sync"

	"github.com/polycache/polycache/policy"
	"github.com/polycache/polycache/policy/lru"
)

// Cache wraps a main LRU cache with a bounded access-history LRU. The zero
// value is not usable; build one with New or NewCache.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	main    *lru.Cache[K, V]
	history *lru.Cache[K, int]
	k       int
}

// New returns an LRU-K policy factory suitable for policy.NewFunc and for
// cache.Options.NewPolicy. historyCapacity bounds the admission-history
// LRU; k is the access-count threshold (values below 2 are treated as 2,
// since a threshold of 1 degenerates to plain LRU). The capacity passed to
// the returned factory sizes the main cache.
func New[K comparable, V any](historyCapacity, k int) policy.NewFunc[K, V] {
	return func(mainCapacity int) policy.Cache[K, V] {
		return NewCache[K, V](mainCapacity, historyCapacity, k)
	}
}

// NewCache builds a standalone *Cache.
func NewCache[K comparable, V any](mainCapacity, historyCapacity, k int) *Cache[K, V] {
	if k < 2 {
		k = 2
	}
	return &Cache[K, V]{
		main:    lru.NewCache[K, V](mainCapacity),
		history: lru.NewCache[K, int](historyCapacity),
		k:       k,
	}
}

// Put overwrites the value in main if k is already admitted. Otherwise it
// bumps the access history independently of any main-cache state; once the
// history count reaches the threshold, k is admitted into main and its
// history entry is dropped. Below the threshold, the value is not admitted.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.main.Contains(key) {
		c.main.Put(key, value)
		return
	}

	count := c.bumpHistoryLocked(key)
	if count >= c.k {
		c.history.Remove(key)
		c.main.Put(key, value)
	}
}

// Get increments the access history for key and returns main's lookup.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bumpHistoryLocked(key)
	return c.main.Get(key)
}

// GetOrZero returns the value for key, or the zero value of V on a miss.
func (c *Cache[K, V]) GetOrZero(key K) V {
	v, _ := c.Get(key)
	return v
}

// Remove deletes key from both main and the access history.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	removedMain := c.main.Remove(key)
	removedHistory := c.history.Remove(key)
	return removedMain || removedHistory
}

// Purge empties both main and the access history.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.main.Purge()
	c.history.Purge()
}

// Len reports the number of entries admitted into main. Entries still
// waiting in the access history are not counted as resident.
func (c *Cache[K, V]) Len() int {
	return c.main.Len()
}

// bumpHistoryLocked increments key's access count, creating it at 1 if
// absent, and returns the new count. c.mu must be held.
func (c *Cache[K, V]) bumpHistoryLocked(key K) int {
	count := c.history.GetOrZero(key) + 1
	c.history.Put(key, count)
	return count
}

var _ policy.Cache[string, int] = (*Cache[string, int])(nil)
