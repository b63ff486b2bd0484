package cachepolicy

import "github.com/icarus-sim/icnsim/internal/orderedindex"

// FIFOCache evicts in insertion order; Get never reorders, it only
// reports presence.
type FIFOCache[K comparable] struct {
	capacity int
	idx      *orderedindex.Index[K]
}

// NewFIFOCache constructs a FIFO cache.
func NewFIFOCache[K comparable](capacity int) *FIFOCache[K] {
	return &FIFOCache[K]{capacity: capacity, idx: orderedindex.New[K]()}
}

func (c *FIFOCache[K]) Capacity() int { return c.capacity }
func (c *FIFOCache[K]) Len() int      { return c.idx.Len() }
func (c *FIFOCache[K]) Has(k K) bool  { return c.idx.Contains(k) }
func (c *FIFOCache[K]) Get(k K) bool  { return c.idx.Contains(k) }

// Put appends a new key at the top (head of queue); on overflow the
// bottom (tail) is popped and evicted. Putting an existing key is a
// no-op.
func (c *FIFOCache[K]) Put(k K) (K, bool) {
	var zero K
	if c.idx.Contains(k) {
		return zero, false
	}
	_ = c.idx.InsertTop(k)
	if c.idx.Len() > c.capacity {
		evicted, _ := c.idx.PopBottom()
		return evicted, true
	}
	return zero, false
}

func (c *FIFOCache[K]) Remove(k K) bool {
	if !c.idx.Contains(k) {
		return false
	}
	_ = c.idx.Remove(k)
	return true
}

func (c *FIFOCache[K]) Dump() []K { return c.idx.Dump() }
func (c *FIFOCache[K]) Clear()    { c.idx.Clear() }
