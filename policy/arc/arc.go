// Package arc implements the Adaptive Replacement Cache policy: capacity
// is split between an LRU-leaning half (T1) and an LFU-leaning half (T2),
// each backed by its own ghost list of recently evicted keys, and the
// split adapts toward whichever half would have avoided the most recent
// ghost hits.
package arc

import (
	"sync"

	"github.com/polycache/polycache/policy"
)

// defaultTransformThreshold is used when the caller passes a
// non-positive value.
const defaultTransformThreshold = 2

// Cache is a fixed-capacity ARC cache. The zero value is not usable; build
// one with New or NewCache.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	t1 *part[K, V] // LRU-leaning half: T1 main, B1 ghost
	t2 *part[K, V] // LFU-leaning half: T2 main, B2 ghost
}

// New returns an ARC policy factory suitable for policy.NewFunc and for
// cache.Options.NewPolicy. transformThreshold is the T1 access count at
// which an entry is promoted (mirrored) into T2; non-positive values
// select the default of 2.
func New[K comparable, V any](transformThreshold int) policy.NewFunc[K, V] {
	return func(capacity int) policy.Cache[K, V] {
		return NewCache[K, V](capacity, transformThreshold)
	}
}

// NewCache builds a standalone *Cache. Capacity is split evenly between T1
// and T2 (T1 gets the extra unit on an odd split). Each half's ghost list
// is sized to the full cache capacity, the classic ARC |T|+|B| <= C
// convention applied per half.
func NewCache[K comparable, V any](capacity, transformThreshold int) *Cache[K, V] {
	if transformThreshold <= 0 {
		transformThreshold = defaultTransformThreshold
	}
	if capacity < 0 {
		capacity = 0
	}
	t1Cap := capacity - capacity/2
	t2Cap := capacity / 2
	return &Cache[K, V]{
		t1: newPart[K, V](t1Cap, capacity, transformThreshold),
		t2: newPart[K, V](t2Cap, capacity, transformThreshold),
	}
}

// Get looks up key. checkGhostsLocked is consulted first (on either half)
// purely for its capacity-rebalancing side effect; a ghost hit never gates
// the lookup itself, since a key can be simultaneously resident in the
// main list of one half while ghosted on the other (checkGhostsLocked
// stops at the first ghost it finds, and a Put driven by a ghost hit lands
// in T1 only, so a stale ghost entry can stay on the other side). A real
// hit in T1 that crosses the
// transform threshold mirrors the entry into T2 so it stays warm under
// LFU-style access-count treatment too.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.checkGhostsLocked(key)

	if v, ok, shouldTransform := c.t1.get(key); ok {
		if shouldTransform {
			c.t2.put(key, v)
		}
		return v, true
	}

	v, ok, _ := c.t2.get(key)
	return v, ok
}

// GetOrZero returns the value for key, or the zero value of V on a miss.
func (c *Cache[K, V]) GetOrZero(key K) V {
	v, _ := c.Get(key)
	return v
}

// Put inserts or updates key→value. It always lands in T1; unless the key
// just came from a ghost hit, it is additionally mirror-inserted into T2
// so popular content stays resident on both halves.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	inGhost := c.checkGhostsLocked(key)
	c.t1.put(key, value)
	if !inGhost {
		c.t2.put(key, value)
	}
}

// Remove deletes key from both halves (main and ghost), reporting whether
// it was found anywhere.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	found := c.t1.remove(key)
	found = c.t2.remove(key) || found
	found = c.t1.checkGhost(key) || found
	found = c.t2.checkGhost(key) || found
	return found
}

// Purge empties both halves entirely, including their ghost lists.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.t1.purge()
	c.t2.purge()
}

// Len reports the number of distinct resident keys. A key mirrored into
// both T1 and T2 is counted once.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.t1.size()
	for k := range c.t2.mainIndex {
		if _, inT1 := c.t1.mainIndex[k]; !inT1 {
			n++
		}
	}
	return n
}

// checkGhostsLocked consults B1 then B2, rebalancing capacity toward
// whichever half the hit implicates. c.mu must be held.
func (c *Cache[K, V]) checkGhostsLocked(key K) bool {
	if c.t1.checkGhost(key) {
		// B1 hit: T1 was too small.
		if c.t2.decreaseCapacity() {
			c.t1.increaseCapacity()
		}
		return true
	}
	if c.t2.checkGhost(key) {
		// B2 hit: T2 was too small.
		if c.t1.decreaseCapacity() {
			c.t2.increaseCapacity()
		}
		return true
	}
	return false
}

var _ policy.Cache[string, int] = (*Cache[string, int])(nil)
