package cachepolicy

import "github.com/icarus-sim/icnsim/internal/orderedindex"

// apportion splits capacity across weighted buckets using the
// largest-remainder method: each bucket first gets floor(capacity*w),
// then the remaining units go one each to the buckets with the largest
// fractional remainder (ties broken by bucket index, lowest first, so
// the result is deterministic).
func apportion(capacity int, weights []float64) []int {
	n := len(weights)
	sizes := make([]int, n)
	remainders := make([]float64, n)
	assigned := 0
	for i, w := range weights {
		exact := float64(capacity) * w
		sizes[i] = int(exact)
		remainders[i] = exact - float64(sizes[i])
		assigned += sizes[i]
	}
	remaining := capacity - assigned
	for remaining > 0 {
		best := -1
		for i := 0; i < n; i++ {
			if best == -1 || remainders[i] > remainders[best] {
				best = i
			}
		}
		sizes[best]++
		remainders[best] = -1 // consumed, never picked again
		remaining--
	}
	return sizes
}

// evenWeights returns n equal weights summing to 1.
func evenWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0 / float64(n)
	}
	return w
}

// SLRUCache is a Segmented LRU cache: S LRU segments, segment 0 the
// protected (top) segment, segment S-1 the probationary (bottom)
// segment.
type SLRUCache[K comparable] struct {
	capacity int
	sizes    []int
	segs     []*orderedindex.Index[K]
	segOf    map[K]int
}

// NewSLRUCache builds an SLRU cache with the given total capacity split
// evenly (largest-remainder) across segments segments.
func NewSLRUCache[K comparable](capacity, segments int) *SLRUCache[K] {
	return NewSLRUCacheWeighted[K](capacity, evenWeights(segments))
}

// NewSLRUCacheWeighted builds an SLRU cache with an explicit per-segment
// allocation given as fractions summing to 1.
func NewSLRUCacheWeighted[K comparable](capacity int, weights []float64) *SLRUCache[K] {
	sizes := apportion(capacity, weights)
	segs := make([]*orderedindex.Index[K], len(sizes))
	for i := range segs {
		segs[i] = orderedindex.New[K]()
	}
	return &SLRUCache[K]{
		capacity: capacity,
		sizes:    sizes,
		segs:     segs,
		segOf:    make(map[K]int),
	}
}

func (c *SLRUCache[K]) Capacity() int { return c.capacity }

func (c *SLRUCache[K]) Len() int {
	n := 0
	for _, s := range c.segs {
		n += s.Len()
	}
	return n
}

func (c *SLRUCache[K]) Has(k K) bool {
	_, ok := c.segOf[k]
	return ok
}

// Segments returns a policy-ordered dump per segment, segment 0 first.
func (c *SLRUCache[K]) Segments() [][]K {
	out := make([][]K, len(c.segs))
	for i, s := range c.segs {
		out[i] = s.Dump()
	}
	return out
}

func (c *SLRUCache[K]) Get(k K) bool {
	i, ok := c.segOf[k]
	if !ok {
		return false
	}
	if i == 0 {
		_ = c.segs[0].MoveToTop(k)
		return true
	}
	c.promote(k, i)
	return true
}

// promote moves k from segment i to the top of segment i-1, cascading
// any resulting overflow downward through the remaining segments.
func (c *SLRUCache[K]) promote(k K, i int) {
	_ = c.segs[i].Remove(k)
	_ = c.segs[i-1].InsertTop(k)
	c.segOf[k] = i - 1
	c.resolveOverflow(i - 1)
}

// resolveOverflow pushes the bottom of an over-capacity segment down
// into the top of the next segment, repeating until no segment beyond
// seg is over capacity or the probationary segment's overflow is
// evicted outright.
func (c *SLRUCache[K]) resolveOverflow(seg int) (evicted K, hadEviction bool) {
	for seg < len(c.segs)-1 && c.segs[seg].Len() > c.sizes[seg] {
		demoted, _ := c.segs[seg].PopBottom()
		seg++
		_ = c.segs[seg].InsertTop(demoted)
		c.segOf[demoted] = seg
	}
	if seg == len(c.segs)-1 && c.segs[seg].Len() > c.sizes[seg] {
		if k, ok := c.segs[seg].PopBottom(); ok {
			delete(c.segOf, k)
			return k, true
		}
	}
	var zero K
	return zero, false
}

// Put inserts a new key at the top of the probationary segment, or
// promotes an existing key exactly as Get does.
func (c *SLRUCache[K]) Put(k K) (K, bool) {
	var zero K
	if c.Has(k) {
		c.Get(k)
		return zero, false
	}
	last := len(c.segs) - 1
	_ = c.segs[last].InsertTop(k)
	c.segOf[k] = last
	return c.resolveOverflow(last)
}

func (c *SLRUCache[K]) Remove(k K) bool {
	i, ok := c.segOf[k]
	if !ok {
		return false
	}
	_ = c.segs[i].Remove(k)
	delete(c.segOf, k)
	return true
}

func (c *SLRUCache[K]) Dump() []K {
	out := make([]K, 0, c.Len())
	for _, s := range c.segs {
		out = append(out, s.Dump()...)
	}
	return out
}

func (c *SLRUCache[K]) Clear() {
	for _, s := range c.segs {
		s.Clear()
	}
	c.segOf = make(map[K]int)
}
