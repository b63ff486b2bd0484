package cachepolicy

import "github.com/icarus-sim/icnsim/internal/orderedindex"

// LRUCache evicts the least-recently-referenced key. Top = most
// recently referenced.
type LRUCache[K comparable] struct {
	capacity int
	idx      *orderedindex.Index[K]
}

// NewLRUCache constructs an LRU cache of the given capacity.
func NewLRUCache[K comparable](capacity int) *LRUCache[K] {
	return &LRUCache[K]{capacity: capacity, idx: orderedindex.New[K]()}
}

func (c *LRUCache[K]) Capacity() int { return c.capacity }
func (c *LRUCache[K]) Len() int      { return c.idx.Len() }
func (c *LRUCache[K]) Has(k K) bool  { return c.idx.Contains(k) }

func (c *LRUCache[K]) Get(k K) bool {
	if !c.idx.Contains(k) {
		return false
	}
	_ = c.idx.MoveToTop(k)
	return true
}

// Put inserts k at the top. If k is already present it is moved to the
// top instead (no eviction). Otherwise, if the cache is now over
// capacity, the bottom (least-recently-used) key is evicted.
func (c *LRUCache[K]) Put(k K) (K, bool) {
	var zero K
	if c.idx.Contains(k) {
		_ = c.idx.MoveToTop(k)
		return zero, false
	}
	_ = c.idx.InsertTop(k)
	if c.idx.Len() > c.capacity {
		evicted, _ := c.idx.PopBottom()
		return evicted, true
	}
	return zero, false
}

func (c *LRUCache[K]) Remove(k K) bool {
	if !c.idx.Contains(k) {
		return false
	}
	_ = c.idx.Remove(k)
	return true
}

func (c *LRUCache[K]) Dump() []K { return c.idx.Dump() }
func (c *LRUCache[K]) Clear()    { c.idx.Clear() }
