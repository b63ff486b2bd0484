package cachepolicy

import "testing"

// newPolicies returns one fresh instance of every base policy at the
// given capacity, for running the universal properties from spec.md §8
// against each of them.
func newPolicies(capacity int) map[string]Cache[int] {
	return map[string]Cache[int]{
		"NULL":  NewNullCache[int](),
		"LRU":   NewLRUCache[int](capacity),
		"FIFO":  NewFIFOCache[int](capacity),
		"CLIMB": NewClimbCache[int](capacity),
		"LFU":   NewInCacheLFUCache[int](capacity),
		"PLFU":  NewPerfectLFUCache[int](capacity),
		"RAND":  NewRandEvictionCacheSeeded[int](capacity, 42),
	}
}

func TestUniversalBound(t *testing.T) {
	for name, c := range newPolicies(3) {
		t.Run(name, func(t *testing.T) {
			for k := 0; k < 20; k++ {
				c.Put(k)
				if c.Len() > c.Capacity() {
					t.Fatalf("len %d exceeds capacity %d after put(%d)", c.Len(), c.Capacity(), k)
				}
			}
		})
	}
}

func TestUniversalHasGetDumpConsistency(t *testing.T) {
	for name, c := range newPolicies(3) {
		t.Run(name, func(t *testing.T) {
			c.Put(1)
			if c.Capacity() == 0 {
				return // NULL cache: nothing is ever resident
			}
			if !c.Has(1) {
				t.Fatal("Has(1) false right after Put(1)")
			}
			found := false
			for _, k := range c.Dump() {
				if k == 1 {
					found = true
				}
			}
			if !found {
				t.Fatal("1 not present in Dump() right after Put(1)")
			}
			if !c.Get(1) {
				t.Fatal("Get(1) false right after Put(1)")
			}
		})
	}
}

func TestUniversalEvictionAccounting(t *testing.T) {
	for name, c := range newPolicies(2) {
		t.Run(name, func(t *testing.T) {
			c.Put(1)
			c.Put(2)
			before := c.Len()
			evicted, had := c.Put(3)
			if c.Capacity() == 0 {
				return
			}
			if had {
				if c.Has(evicted) {
					t.Fatalf("evicted key %v still resident", evicted)
				}
				if c.Len() != before {
					t.Fatalf("len changed from %d to %d besides the one eviction", before, c.Len())
				}
			}
		})
	}
}

func TestUniversalIdempotentRemoveClear(t *testing.T) {
	for name, c := range newPolicies(3) {
		t.Run(name, func(t *testing.T) {
			c.Put(1)
			c.Remove(1)
			if c.Remove(1) {
				t.Error("second Remove(1) should return false")
			}
			c.Put(2)
			c.Clear()
			if c.Len() != 0 {
				t.Errorf("Len() after Clear = %d, want 0", c.Len())
			}
		})
	}
}

func TestRandInsertDeterministicAtExtremes(t *testing.T) {
	base := NewLRUCache[int](5)
	always := NewRandomInsertDecorator[int](base, 1.0, 1)
	always.Put(1)
	if !always.Has(1) {
		t.Error("p=1 should always insert")
	}

	base2 := NewLRUCache[int](5)
	never := NewRandomInsertDecorator[int](base2, 0.0, 1)
	never.Put(2)
	if never.Has(2) {
		t.Error("p=0 should never insert")
	}
}

func TestRandInsertReproducibleWithSeed(t *testing.T) {
	run := func(seed int64) []int {
		base := NewLRUCache[int](100)
		d := NewRandomInsertDecorator[int](base, 0.5, seed)
		for k := 0; k < 50; k++ {
			d.Put(k)
		}
		return d.Dump()
	}
	a := run(7)
	b := run(7)
	dumpEq(t, a, b)
}
