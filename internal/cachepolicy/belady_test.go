package cachepolicy

import "testing"

func TestBeladyMinEvictsFurthestNextUse(t *testing.T) {
	// trace: a b c a b d ... capacity 2
	trace := []int{0: 1, 1: 2, 2: 3, 3: 1, 4: 2, 5: 4}
	c := NewBeladyMinCache[int](2, trace)

	c.Get(1) // miss
	c.Put(1)
	c.Get(2) // miss
	c.Put(2) // cache full: {1,2}

	// next use of 1 is index 3, next use of 2 is index 4; 3 is a miss at
	// index 2 with no future use at all (math.MaxInt) so 3 is never
	// cached (both residents are used again sooner).
	c.Get(3)
	evicted, had := c.Put(3)
	if had {
		t.Errorf("Put(3) should refuse to cache since 3 has no future use; got evicted=%v", evicted)
	}
	if c.Has(3) {
		t.Error("3 should not be resident")
	}
	if !c.Has(1) || !c.Has(2) {
		t.Error("1 and 2 should remain resident")
	}
}

func TestBeladyMinHitsAtLeastAsManyAsLRU(t *testing.T) {
	trace := []int{1, 2, 3, 1, 2, 4, 1, 2, 5, 1, 2}
	capacity := 2

	countHits := func(c Cache[int]) int {
		hits := 0
		for _, k := range trace {
			if c.Get(k) {
				hits++
			} else {
				c.Put(k)
			}
		}
		return hits
	}

	belady := countHits(NewBeladyMinCache[int](capacity, trace))
	lru := countHits(NewLRUCache[int](capacity))
	if belady < lru {
		t.Errorf("Belady hits %d < LRU hits %d", belady, lru)
	}
}
