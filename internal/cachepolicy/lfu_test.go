package cachepolicy

import "testing"

func TestInCacheLFUEvictsLowestFrequency(t *testing.T) {
	c := NewInCacheLFUCache[int](2)
	c.Put(1)
	c.Put(2)
	c.Get(1) // freq(1)=2, freq(2)=1
	evicted, had := c.Put(3)
	if !had || evicted != 2 {
		t.Errorf("Put(3) = %v, %v; want 2, true", evicted, had)
	}
}

func TestInCacheLFUTieBreaksByArrival(t *testing.T) {
	c := NewInCacheLFUCache[int](2)
	c.Put(1) // seq 0
	c.Put(2) // seq 1, both freq 1
	evicted, had := c.Put(3)
	if !had || evicted != 1 {
		t.Errorf("Put(3) = %v, %v; want 1, true (earliest arrival evicted on tie)", evicted, had)
	}
}

func TestInCacheLFUDumpIsPolicyOrdered(t *testing.T) {
	c := NewInCacheLFUCache[int](4)
	c.Put(1) // seq 0
	c.Put(2) // seq 1
	c.Put(3) // seq 2
	c.Get(1) // freq(1)=2
	c.Get(1) // freq(1)=3
	c.Get(3) // freq(3)=2
	// freq(1)=3, freq(3)=2, freq(2)=1: descending by freq, ties by
	// earliest arrival.
	dumpEq(t, c.Dump(), []int{1, 3, 2})
}

func TestPerfectLFUDumpIsPolicyOrdered(t *testing.T) {
	c := NewPerfectLFUCache[int](4)
	c.Put(1) // seq 0
	c.Put(2) // seq 1
	c.Put(3) // seq 2
	c.Get(2) // freq(2)=2
	c.Get(2) // freq(2)=3
	c.Get(3) // freq(3)=2
	dumpEq(t, c.Dump(), []int{2, 3, 1})
}

func TestPerfectLFUCountersSurviveEviction(t *testing.T) {
	c := NewPerfectLFUCache[int](1)
	c.Put(1)
	c.Get(1)
	c.Get(1)
	evicted, had := c.Put(2)
	if !had || evicted != 1 {
		t.Fatalf("Put(2) = %v, %v; want 1, true", evicted, had)
	}
	// 1's frequency counter must persist even though it is no longer
	// resident.
	c.Get(1) // miss, but increments 1's perfect-map counter
	if _, ok := c.perfect[1]; !ok || c.perfect[1].freq == 0 {
		t.Fatal("1's counter should have survived eviction and kept accumulating")
	}
	evicted, had = c.Put(1) // capacity 1, full with {2}: evicts 2
	if !had || evicted != 2 {
		t.Fatalf("Put(1) = %v, %v; want 2, true", evicted, had)
	}
}

// TestPerfectLFURemoveKeepsCounter exercises the documented Open
// Question resolution: remove deletes from residents but keeps the
// perfect-map counter, and reports true.
func TestPerfectLFURemoveKeepsCounter(t *testing.T) {
	c := NewPerfectLFUCache[int](2)
	c.Put(1)
	c.Get(1)
	if !c.Remove(1) {
		t.Fatal("Remove(1) should report true")
	}
	if c.Has(1) {
		t.Error("1 should no longer be resident")
	}
	if _, ok := c.perfect[1]; !ok {
		t.Error("1's counter should survive removal")
	}
	if c.Remove(1) {
		t.Error("second Remove(1) should report false")
	}
}
