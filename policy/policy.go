// Package policy defines the contract every eviction/replacement policy
// in this module implements, independent of how the sharded cache routes
// keys to policy instances.
package policy

// Cache is a bounded key/value store with a pluggable replacement policy.
// Implementations are safe for concurrent use: each instance owns exactly
// one mutex guarding its entire internal state and holds it for the
// duration of a call, so callers (including the sharded wrapper in package
// cache) need no extra synchronization on top.
type Cache[K comparable, V any] interface {
	// Put inserts or updates key→value, promoting it per the active policy.
	// A non-positive capacity makes Put a silent no-op.
	Put(key K, value V)

	// Get returns the value for key and whether it was present. On a hit,
	// the entry is promoted according to the policy.
	Get(key K) (V, bool)

	// GetOrZero is a convenience wrapper around Get that returns the zero
	// value of V on a miss instead of a boolean.
	GetOrZero(key K) V

	// Remove deletes key if present and reports whether it was found.
	Remove(key K) bool

	// Purge discards all entries, resetting the policy to empty.
	Purge()

	// Len reports the number of resident entries.
	Len() int
}

// NewFunc builds a fresh, independent Cache instance sized to capacity.
// The sharded wrapper in package cache calls this once per shard, passing
// that shard's sub-capacity, so that every shard gets its own policy state,
// its own lock, and an even share of the total budget.
type NewFunc[K comparable, V any] func(capacity int) Cache[K, V]
