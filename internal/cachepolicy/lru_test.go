package cachepolicy

import "testing"

func dumpEq(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dump = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dump = %v, want %v", got, want)
		}
	}
}

// TestLRUScenarioS1 reproduces spec scenario S1.
func TestLRUScenarioS1(t *testing.T) {
	c := NewLRUCache[int](4)
	for _, k := range []int{0, 2, 3, 4, 5} {
		c.Put(k)
	}
	dumpEq(t, c.Dump(), []int{5, 4, 3, 2})

	c.Get(2)
	dumpEq(t, c.Dump(), []int{2, 5, 4, 3})

	c.Get(4)
	dumpEq(t, c.Dump(), []int{4, 2, 5, 3})

	c.Clear()
	dumpEq(t, c.Dump(), []int{})
}

func TestLRUEvictionReturnsEvictedKey(t *testing.T) {
	c := NewLRUCache[int](2)
	c.Put(1)
	c.Put(2)
	evicted, had := c.Put(3)
	if !had || evicted != 1 {
		t.Errorf("Put(3) = %v, %v; want 1, true", evicted, had)
	}
}

func TestLRUPutExistingReturnsNoEviction(t *testing.T) {
	c := NewLRUCache[int](2)
	c.Put(1)
	c.Put(2)
	_, had := c.Put(1)
	if had {
		t.Error("re-put of existing key should not evict")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}
