// Package lru implements a classic move-to-front Least-Recently-Used
// replacement policy.
package lru

import (
	"sync"

	"github.com/polycache/polycache/internal/ilist"
	"github.com/polycache/polycache/policy"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Cache is a fixed-capacity LRU cache. The zero value is not usable; build
// one with New. A Cache owns its own mutex and is safe for concurrent use.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	list     *ilist.List[*entry[K, V]]
	index    map[K]*ilist.Node[*entry[K, V]]
}

// New returns an LRU policy factory suitable for policy.NewFunc and for
// cache.Options.NewPolicy. A capacity <= 0 yields a cache that never
// retains anything: Put is a no-op and Get always misses.
func New[K comparable, V any]() policy.NewFunc[K, V] {
	return func(capacity int) policy.Cache[K, V] {
		return NewCache[K, V](capacity)
	}
}

// NewCache builds a standalone *Cache, for callers that want the concrete
// type (e.g. policy/lruk, which composes two of these).
func NewCache[K comparable, V any](capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		capacity: capacity,
		list:     ilist.New[*entry[K, V]](),
		index:    make(map[K]*ilist.Node[*entry[K, V]]),
	}
}

// Put inserts or updates key→value and moves it to the front.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capacity <= 0 {
		return
	}

	if n, ok := c.index[key]; ok {
		n.Value.value = value
		c.list.MoveToFront(n)
		return
	}

	n := c.list.PushFront(&entry[K, V]{key: key, value: value})
	c.index[key] = n

	if c.list.Len() > c.capacity {
		c.evictLocked()
	}
}

// Get returns the value for key and promotes it to the front on a hit.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.list.MoveToFront(n)
	return n.Value.value, true
}

// GetOrZero returns the value for key, or the zero value of V on a miss.
func (c *Cache[K, V]) GetOrZero(key K) V {
	v, _ := c.Get(key)
	return v
}

// Contains reports whether key is present without promoting it.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.index[key]
	return ok
}

// Remove deletes key if present.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.index[key]
	if !ok {
		return false
	}
	c.list.Remove(n)
	delete(c.index, key)
	return true
}

// Purge discards all entries.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.list = ilist.New[*entry[K, V]]()
	c.index = make(map[K]*ilist.Node[*entry[K, V]])
}

// Len reports the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Len()
}

// evictLocked drops the least-recently-used entry. c.mu must be held.
func (c *Cache[K, V]) evictLocked() {
	tail := c.list.Back()
	if tail == nil {
		return
	}
	delete(c.index, tail.Value.key)
	c.list.Remove(tail)
}

var _ policy.Cache[string, int] = (*Cache[string, int])(nil)
