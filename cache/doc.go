// Package cache provides a generic, sharded in-memory cache with a
// pluggable replacement policy (LRU by default), optional singleflight
// loading, and lightweight metrics hooks.
//
// Design
//
//   - Concurrency: the cache is split into shards, each wrapping its own
//     independent policy instance with its own lock. The default shard
//     count is chosen by a heuristic (a power of two near 2*GOMAXPROCS).
//     Sharding reduces contention while keeping memory overhead small.
//
//   - Policies: the replacement policy is pluggable via the policy
//     package — policy/lru, policy/lruk, policy/lfu, policy/arc and
//     policy/twoq all implement policy.Cache and can be plugged in via
//     Options.NewPolicy. LRU is the default.
//
//   - GetOrLoad: coalesces concurrent loads for the same key using
//     golang.org/x/sync/singleflight. If Loader is nil, GetOrLoad returns
//     ErrNoLoader.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Size signals. By default
//     NoopMetrics is used; plug in the Prometheus adapter in metrics/prom
//     to export them.
//
// Basic usage
//
//	c := cache.New[string, []byte](cache.Options[string, []byte]{Capacity: 10_000})
//	c.Put("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value
//	}
//	c.Remove("a")
//
// With GetOrLoad (singleflight)
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 1024,
//	    Loader: func(ctx context.Context, k string) (string, error) {
//	        return "v:" + k, nil
//	    },
//	})
//	v, err := c.GetOrLoad(context.Background(), "key")
//
// Using an alternative policy (ARC)
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity:  50_000,
//	    NewPolicy: arc.New[string, string](2),
//	})
//
// Exporting metrics (Prometheus adapter)
//
//	m := prom.New(nil, "cachex", "demo", nil) // implements Metrics
//	c := cache.New[string, []byte](cache.Options[string, []byte]{
//	    Capacity: 10_000,
//	    Metrics:  m,
//	})
//
// Thread-safety & complexity
//
// All methods on Cache are safe for concurrent use. Typical operation cost
// is O(1) expected time: one shard lookup, then whatever the underlying
// policy's own complexity is (O(1) amortized except LFU's occasional
// age-down pass).
package cache
