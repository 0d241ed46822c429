package arc

import "github.com/polycache/polycache/internal/ilist"

// arcEntry is one resident node in a part's main list.
type arcEntry[K comparable, V any] struct {
	key         K
	value       V
	accessCount int
}

// part is one half of an ARC cache (T1/B1 or T2/B2). T1 and T2 are
// structurally identical — both are recency lists with an access counter
// per entry and a ghost list of evicted keys — so a single type backs
// both halves, matching how the reference ARC design composes two
// interchangeable sub-caches rather than one four-list struct.
type part[K comparable, V any] struct {
	mainCapacity  int
	ghostCapacity int
	threshold     int

	mainIndex map[K]*ilist.Node[*arcEntry[K, V]]
	mainList  *ilist.List[*arcEntry[K, V]]

	ghostIndex map[K]*ilist.Node[K]
	ghostList  *ilist.List[K]
}

func newPart[K comparable, V any](mainCapacity, ghostCapacity, threshold int) *part[K, V] {
	return &part[K, V]{
		mainCapacity:  mainCapacity,
		ghostCapacity: ghostCapacity,
		threshold:     threshold,
		mainIndex:     make(map[K]*ilist.Node[*arcEntry[K, V]]),
		mainList:      ilist.New[*arcEntry[K, V]](),
		ghostIndex:    make(map[K]*ilist.Node[K]),
		ghostList:     ilist.New[K](),
	}
}

func (p *part[K, V]) size() int { return len(p.mainIndex) }

// get reports the value and hit status for key, bumping its recency
// position and access count. shouldTransform reports whether the access
// count has reached the promotion threshold.
func (p *part[K, V]) get(key K) (value V, ok bool, shouldTransform bool) {
	n, found := p.mainIndex[key]
	if !found {
		var zero V
		return zero, false, false
	}
	p.mainList.MoveToFront(n)
	n.Value.accessCount++
	return n.Value.value, true, n.Value.accessCount >= p.threshold
}

// put inserts or overwrites key→value, evicting the least-recently-used
// entry first if the half is full. Reports false only when mainCapacity
// is non-positive, matching the overall policy's "capacity <= 0 is a
// no-op" error-handling rule.
func (p *part[K, V]) put(key K, value V) bool {
	if p.mainCapacity <= 0 {
		return false
	}
	if n, ok := p.mainIndex[key]; ok {
		n.Value.value = value
		p.mainList.MoveToFront(n)
		return true
	}
	if len(p.mainIndex) >= p.mainCapacity {
		p.evictLeastRecent()
	}
	n := p.mainList.PushFront(&arcEntry[K, V]{key: key, value: value, accessCount: 1})
	p.mainIndex[key] = n
	return true
}

// remove deletes key from the main list only, leaving the ghost list
// untouched (an explicit removal is not a "this was hot" signal).
func (p *part[K, V]) remove(key K) bool {
	n, ok := p.mainIndex[key]
	if !ok {
		return false
	}
	p.mainList.Remove(n)
	delete(p.mainIndex, key)
	return true
}

// checkGhost removes key from the ghost list and reports whether it was
// present.
func (p *part[K, V]) checkGhost(key K) bool {
	n, ok := p.ghostIndex[key]
	if !ok {
		return false
	}
	p.ghostList.Remove(n)
	delete(p.ghostIndex, key)
	return true
}

// increaseCapacity grows mainCapacity by one, always succeeding.
func (p *part[K, V]) increaseCapacity() { p.mainCapacity++ }

// decreaseCapacity shrinks mainCapacity by one, forcing an eviction first
// if the half is already full at its current (larger) capacity. It
// refuses to shrink below zero.
func (p *part[K, V]) decreaseCapacity() bool {
	if p.mainCapacity <= 0 {
		return false
	}
	if len(p.mainIndex) >= p.mainCapacity {
		p.evictLeastRecent()
	}
	p.mainCapacity--
	return true
}

// evictLeastRecent moves the tail of the main list into the ghost list,
// dropping the oldest ghost if the ghost list is already full.
func (p *part[K, V]) evictLeastRecent() {
	tail := p.mainList.Back()
	if tail == nil {
		return
	}
	key := tail.Value.key
	p.mainList.Remove(tail)
	delete(p.mainIndex, key)

	gn := p.ghostList.PushFront(key)
	p.ghostIndex[key] = gn
	if p.ghostList.Len() > p.ghostCapacity {
		if oldest := p.ghostList.Back(); oldest != nil {
			delete(p.ghostIndex, oldest.Value)
			p.ghostList.Remove(oldest)
		}
	}
}

func (p *part[K, V]) purge() {
	p.mainIndex = make(map[K]*ilist.Node[*arcEntry[K, V]])
	p.mainList = ilist.New[*arcEntry[K, V]]()
	p.ghostIndex = make(map[K]*ilist.Node[K])
	p.ghostList = ilist.New[K]()
}
