package cachesys

import (
	"math/rand"

	"github.com/icarus-sim/icnsim/internal/simerr"
)

// TreeCache feeds each request to a randomly selected leaf cache, and
// falls through to a shared root cache on a leaf miss, backfilling the
// leaf on a root hit.
//
// Read-through contract (spec.md §9 Open Question): same as ArrayCache
// -- Put(k) must be preceded by Get(k) for the same content, which
// selects the leaf. A Put before any Get returns a PreconditionFailure;
// a Put after a Get of other content is not detected.
type TreeCache[K comparable] struct {
	leaves []Cache[K]
	root   Cache[K]
	rng    *rand.Rand
	leaf   int // index into leaves selected by the most recent Get, -1 if none
}

// NewTreeCache builds a TreeCache over the given leaves and shared root.
func NewTreeCache[K comparable](leaves []Cache[K], root Cache[K]) *TreeCache[K] {
	return &TreeCache[K]{leaves: leaves, root: root, rng: rand.New(rand.NewSource(rand.Int63())), leaf: -1}
}

func (t *TreeCache[K]) Len() int {
	n := t.root.Len()
	for _, l := range t.leaves {
		n += l.Len()
	}
	return n
}

// Get selects a random leaf and queries it; on a leaf miss it consults
// the root, and on a root hit backfills the selected leaf.
func (t *TreeCache[K]) Get(k K) bool {
	t.leaf = t.rng.Intn(len(t.leaves))
	if t.leaves[t.leaf].Get(k) {
		return true
	}
	if t.root.Get(k) {
		t.leaves[t.leaf].Put(k)
		return true
	}
	return false
}

// Put inserts into both the leaf selected by the most recent Get and
// the root. Returns a PreconditionFailure if no Get has happened yet.
func (t *TreeCache[K]) Put(k K) error {
	if t.leaf < 0 {
		return simerr.NewPrecondition("TreeCache.Put", "no preceding Get for content %v: tree cache is read-through only", k)
	}
	t.leaves[t.leaf].Put(k)
	t.root.Put(k)
	return nil
}

func (t *TreeCache[K]) Dump() []K {
	out := append([]K{}, t.root.Dump()...)
	for _, l := range t.leaves {
		out = append(out, l.Dump()...)
	}
	return out
}

func (t *TreeCache[K]) Clear() {
	t.root.Clear()
	for _, l := range t.leaves {
		l.Clear()
	}
	t.leaf = -1
}
