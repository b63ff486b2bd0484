package cachepolicy

import "github.com/icarus-sim/icnsim/internal/orderedindex"

// ClimbCache moves a hit key one step toward the top per access, and
// inserts new keys at the bottom (replacing the bottom outright once
// full).
type ClimbCache[K comparable] struct {
	capacity int
	idx      *orderedindex.Index[K]
}

// NewClimbCache constructs a CLIMB cache.
func NewClimbCache[K comparable](capacity int) *ClimbCache[K] {
	return &ClimbCache[K]{capacity: capacity, idx: orderedindex.New[K]()}
}

func (c *ClimbCache[K]) Capacity() int { return c.capacity }
func (c *ClimbCache[K]) Len() int      { return c.idx.Len() }
func (c *ClimbCache[K]) Has(k K) bool  { return c.idx.Contains(k) }

func (c *ClimbCache[K]) Get(k K) bool {
	if !c.idx.Contains(k) {
		return false
	}
	_ = c.idx.MoveUp(k)
	return true
}

// Put of a new key appends at the bottom if there is space, or
// replaces the current bottom if the cache is full. A re-put of an
// existing key does nothing beyond the one-step climb Get performs.
func (c *ClimbCache[K]) Put(k K) (K, bool) {
	var zero K
	if c.idx.Contains(k) {
		return zero, false
	}
	if c.capacity == 0 {
		return zero, false
	}
	if c.idx.Len() < c.capacity {
		_ = c.idx.InsertBottom(k)
		return zero, false
	}
	evicted, _ := c.idx.PopBottom()
	_ = c.idx.InsertBottom(k)
	return evicted, true
}

func (c *ClimbCache[K]) Remove(k K) bool {
	if !c.idx.Contains(k) {
		return false
	}
	_ = c.idx.Remove(k)
	return true
}

func (c *ClimbCache[K]) Dump() []K { return c.idx.Dump() }
func (c *ClimbCache[K]) Clear()    { c.idx.Clear() }
