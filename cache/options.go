package cache

import (
	"context"

	"github.com/polycache/polycache/policy"
)

// Metrics exposes cache-level observability hooks. A NoopMetrics
// implementation is provided and used by default.
//
// Size is reported per-shard (entries resident in the one shard that just
// handled a Put), not as a cross-shard total, so that reporting it never
// requires locking any shard but that one. Remove and Purge do not report
// Size.
type Metrics interface {
	Hit()
	Miss()
	Size(entries int)
}

// Options configures the cache behavior. Zero values are safe; sane
// defaults are applied in New():
//   - nil NewPolicy => LRU
//   - Shards <= 0   => auto (rounded up to power of two)
//   - nil Metrics   => NoopMetrics
type Options[K comparable, V any] struct {
	// Capacity is the total entry-count limit, split evenly across shards.
	Capacity int

	// Shards defines the number of shards, rounded up to the next power of
	// two. If 0, an automatic value is chosen (≈ 2*GOMAXPROCS) and rounded
	// the same way.
	Shards int

	// NewPolicy builds a fresh replacement-policy instance sized to a
	// shard's sub-capacity; nil => lru.New[K,V]().
	NewPolicy policy.NewFunc[K, V]

	// Loader fetches a value on cache miss. Used by GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)

	// Metrics receives Hit/Miss/Size signals from every shard. Size is
	// per-shard, not a running cross-shard total.
	Metrics Metrics
}
