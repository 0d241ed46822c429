package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/polycache/polycache/internal/util"
	"github.com/polycache/polycache/policy/lru"
)

// ErrNoLoader is returned by GetOrLoad when no Loader was configured in Options.
var ErrNoLoader = errors.New("cache: no Loader provided")

// shardedCache is a sharded in-memory KV store with a pluggable eviction
// policy. All methods are safe for concurrent use by multiple goroutines.
type shardedCache[K comparable, V any] struct {
	shards []*shard[K, V]
	hash   func(K) uint64
	closed atomic.Bool

	metrics Metrics
	loader  func(ctx context.Context, k K) (V, error)

	sf singleflight.Group
}

// New constructs a cache with the provided Options.
// Defaults:
//   - nil NewPolicy => LRU
//   - Shards <= 0   => auto, rounded up to the next power of two
//   - nil Metrics   => NoopMetrics
func New[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	if opt.Capacity <= 0 {
		panic("Capacity must be > 0")
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.NewPolicy == nil {
		opt.NewPolicy = lru.New[K, V]()
	}

	sh := opt.Shards
	if sh <= 0 {
		sh = util.ReasonableShardCount()
	} else {
		sh = int(util.NextPow2(uint64(sh)))
	}

	cs := make([]*shard[K, V], sh)
	perShardCap := (opt.Capacity + sh - 1) / sh // split capacity evenly (ceil)
	for i := 0; i < sh; i++ {
		cs[i] = newShard[K, V](perShardCap, opt.NewPolicy)
	}

	return &shardedCache[K, V]{
		shards:  cs,
		hash:    util.Hash64[K],
		metrics: opt.Metrics,
		loader:  opt.Loader,
	}
}

// ---- Cache[K,V] implementation ----

// Put inserts or updates k→v, promoting the entry according to the active
// policy. The resulting size is reported from the shard's own lock, so
// Put never blocks on any other shard.
func (c *shardedCache[K, V]) Put(k K, v V) {
	if c.closed.Load() {
		return
	}
	c.getShard(k).Put(k, v, c.metrics)
}

// Get returns the value for k and a presence flag. On hit, the entry is
// promoted according to the active policy.
func (c *shardedCache[K, V]) Get(k K) (V, bool) {
	if c.closed.Load() {
		var zero V
		return zero, false
	}
	s := c.getShard(k)
	return s.Get(k, c.metrics)
}

// Remove deletes k if present and returns true on success.
func (c *shardedCache[K, V]) Remove(k K) bool {
	if c.closed.Load() {
		return false
	}
	return c.getShard(k).Remove(k)
}

// Purge discards every entry in every shard.
func (c *shardedCache[K, V]) Purge() {
	for _, s := range c.shards {
		s.Purge()
	}
}

// Len returns the total number of resident entries across all shards.
func (c *shardedCache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.Len()
	}
	return total
}

// Close marks the cache as closed. Afterwards Put is ignored, Get misses
// and Remove reports false; Purge and Len still act on the shards, and
// GetOrLoad still calls the Loader but does not cache its result.
func (c *shardedCache[K, V]) Close() error {
	c.closed.Store(true)
	return nil
}

// GetOrLoad returns the value for k; on miss it loads via Options.Loader,
// coalescing concurrent loads for the same key (singleflight).
// If no Loader is configured, returns ErrNoLoader.
func (c *shardedCache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	if c.loader == nil {
		var zero V
		return zero, ErrNoLoader
	}

	sfKey := fmt.Sprint(k)
	v, err, _ := c.sf.Do(sfKey, func() (interface{}, error) {
		if v, ok := c.Get(k); ok {
			return v, nil
		}
		v, err := c.loader(ctx, k)
		if err == nil {
			c.Put(k, v)
		}
		return v, err
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

// getShard picks a shard by hashing the key and mapping into shard space.
func (c *shardedCache[K, V]) getShard(k K) *shard[K, V] {
	h := c.hash(k)
	return c.shards[util.ShardIndex(h, len(c.shards))]
}
