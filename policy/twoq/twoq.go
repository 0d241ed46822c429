// Package twoq implements the 2Q eviction policy: a small first-access
// admission queue (A1in) shields the mature, frequently-reused queue (Am)
// from one-shot scans, and a ghost queue (A1out) gives recently evicted
// first-access keys a second chance to skip straight into Am.
package twoq

import (
	"container/list"
	"sync"

	"github.com/polycache/polycache/policy"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Cache is a fixed-capacity 2Q cache. The zero value is not usable; build
// one with New or NewCache.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	capIn    int
	capAm    int
	capGhost int

	// A1in: first-access admission queue. MRU at Front, LRU at Back.
	inList *list.List
	inIdx  map[K]*list.Element // element.Value is *entry[K,V]

	// Am: mature queue for entries that proved themselves.
	amList *list.List
	amIdx  map[K]*list.Element // element.Value is *entry[K,V]

	// A1out: ghost queue, keys only.
	ghostList *list.List
	ghostIdx  map[K]*list.Element // element.Value is K
}

// New returns a 2Q policy factory suitable for policy.NewFunc and for
// cache.Options.NewPolicy. A1in is sized to roughly a quarter of the total
// capacity (clamped to at least 1), Am takes the remainder, and the ghost
// queue is sized to the full capacity.
func New[K comparable, V any]() policy.NewFunc[K, V] {
	return func(capacity int) policy.Cache[K, V] {
		return NewCache[K, V](capacity)
	}
}

// NewCache builds a standalone *Cache.
func NewCache[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	capIn := capacity / 4
	if capIn < 1 && capacity > 0 {
		capIn = 1
	}
	return &Cache[K, V]{
		capIn:     capIn,
		capAm:     capacity - capIn,
		capGhost:  capacity,
		inList:    list.New(),
		inIdx:     make(map[K]*list.Element),
		amList:    list.New(),
		amIdx:     make(map[K]*list.Element),
		ghostList: list.New(),
		ghostIdx:  make(map[K]*list.Element),
	}
}

// Put inserts or updates key→value.
//
//   - Already in Am: overwrite and promote to MRU.
//   - Already in A1in: overwrite in place (first-access admission doesn't
//     promote on write, only on a subsequent Get).
//   - A ghost hit: second chance, admit straight into Am.
//   - Otherwise: first-time admission into A1in.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capAm+c.capIn <= 0 {
		return
	}

	if el, ok := c.amIdx[key]; ok {
		el.Value.(*entry[K, V]).value = value
		c.amList.MoveToFront(el)
		return
	}
	if el, ok := c.inIdx[key]; ok {
		el.Value.(*entry[K, V]).value = value
		return
	}
	if ge, ok := c.ghostIdx[key]; ok {
		c.ghostList.Remove(ge)
		delete(c.ghostIdx, key)
		c.admitToAm(key, value)
		return
	}
	c.admitToIn(key, value)
}

// Get promotes a first-access hit from A1in into Am, or refreshes an Am
// entry's recency. A miss leaves all state unchanged.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.amIdx[key]; ok {
		c.amList.MoveToFront(el)
		return el.Value.(*entry[K, V]).value, true
	}
	if el, ok := c.inIdx[key]; ok {
		e := el.Value.(*entry[K, V])
		c.inList.Remove(el)
		delete(c.inIdx, key)
		c.admitToAm(e.key, e.value)
		return e.value, true
	}
	var zero V
	return zero, false
}

// GetOrZero returns the value for key, or the zero value of V on a miss.
func (c *Cache[K, V]) GetOrZero(key K) V {
	v, _ := c.Get(key)
	return v
}

// Remove deletes key from whichever queue currently holds it.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.amIdx[key]; ok {
		c.amList.Remove(el)
		delete(c.amIdx, key)
		return true
	}
	if el, ok := c.inIdx[key]; ok {
		c.inList.Remove(el)
		delete(c.inIdx, key)
		return true
	}
	if ge, ok := c.ghostIdx[key]; ok {
		c.ghostList.Remove(ge)
		delete(c.ghostIdx, key)
		return true
	}
	return false
}

// Purge empties all three queues.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inList, c.inIdx = list.New(), make(map[K]*list.Element)
	c.amList, c.amIdx = list.New(), make(map[K]*list.Element)
	c.ghostList, c.ghostIdx = list.New(), make(map[K]*list.Element)
}

// Len reports the number of resident entries across A1in and Am. Ghosts
// carry no value and are not counted.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inList.Len() + c.amList.Len()
}

// admitToAm inserts key→value at the front of Am, evicting Am's LRU entry
// if over capacity. Am evictions do not populate the ghost queue.
func (c *Cache[K, V]) admitToAm(key K, value V) {
	el := c.amList.PushFront(&entry[K, V]{key: key, value: value})
	c.amIdx[key] = el

	for c.amList.Len() > c.capAm {
		tail := c.amList.Back()
		if tail == nil {
			break
		}
		delete(c.amIdx, tail.Value.(*entry[K, V]).key)
		c.amList.Remove(tail)
	}
}

// admitToIn inserts key→value at the front of A1in, evicting A1in's LRU
// entry into the ghost queue if over capacity.
func (c *Cache[K, V]) admitToIn(key K, value V) {
	el := c.inList.PushFront(&entry[K, V]{key: key, value: value})
	c.inIdx[key] = el

	for c.inList.Len() > c.capIn {
		tail := c.inList.Back()
		if tail == nil {
			break
		}
		victim := tail.Value.(*entry[K, V]).key
		delete(c.inIdx, victim)
		c.inList.Remove(tail)

		if old, ok := c.ghostIdx[victim]; ok {
			c.ghostList.Remove(old)
		}
		c.ghostIdx[victim] = c.ghostList.PushFront(victim)

		for c.ghostList.Len() > c.capGhost {
			gt := c.ghostList.Back()
			if gt == nil {
				break
			}
			delete(c.ghostIdx, gt.Value.(K))
			c.ghostList.Remove(gt)
		}
	}
}

var _ policy.Cache[string, int] = (*Cache[string, int])(nil)
