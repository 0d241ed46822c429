package cache

import (
	"github.com/polycache/polycache/internal/util"
	"github.com/polycache/polycache/policy"
)

// shard is one independent partition of the cache: a policy instance plus
// hot hit/miss counters kept on their own cache lines so that concurrent
// shards never cause false sharing between each other's counters.
type shard[K comparable, V any] struct {
	pol policy.Cache[K, V]

	_      util.CacheLinePad
	hits   util.PaddedAtomicInt64
	misses util.PaddedAtomicInt64
}

func newShard[K comparable, V any](capacity int, newPolicy policy.NewFunc[K, V]) *shard[K, V] {
	return &shard[K, V]{pol: newPolicy(capacity)}
}

func (s *shard[K, V]) Put(k K, v V, m Metrics) {
	s.pol.Put(k, v)
	m.Size(s.pol.Len())
}

func (s *shard[K, V]) Get(k K, m Metrics) (V, bool) {
	v, ok := s.pol.Get(k)
	if ok {
		s.hits.Add(1)
		m.Hit()
	} else {
		s.misses.Add(1)
		m.Miss()
	}
	return v, ok
}

func (s *shard[K, V]) Remove(k K) bool { return s.pol.Remove(k) }

func (s *shard[K, V]) Purge() { s.pol.Purge() }

func (s *shard[K, V]) Len() int { return s.pol.Len() }
