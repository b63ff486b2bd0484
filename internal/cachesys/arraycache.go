package cachesys

import (
	"math/rand"

	"github.com/icarus-sim/icnsim/internal/simerr"
)

// ArrayCache feeds each request to a randomly selected cache of a set.
//
// Read-through contract (spec.md §9 Open Question): this composite can
// only be operated read-through. Before any Put(k), a Get(k) for the
// same content must have selected the sub-cache to put into. A Put
// before any Get returns a PreconditionFailure; Put does not check that
// the most recent Get named the same content, and puts into whichever
// sub-cache that Get selected.
type ArrayCache[K comparable] struct {
	caches   []Cache[K]
	weights  []float64
	rng      *rand.Rand
	selected int // index into caches, -1 if no Get has happened yet
}

// NewArrayCache builds an ArrayCache selecting uniformly among caches.
func NewArrayCache[K comparable](caches []Cache[K]) *ArrayCache[K] {
	return &ArrayCache[K]{caches: caches, rng: rand.New(rand.NewSource(rand.Int63())), selected: -1}
}

// NewArrayCacheWeighted builds an ArrayCache selecting among caches with
// the given per-cache weights, which must sum to 1 and match len(caches).
func NewArrayCacheWeighted[K comparable](caches []Cache[K], weights []float64) (*ArrayCache[K], error) {
	if len(weights) != len(caches) {
		return nil, simerr.NewPrecondition("ArrayCache", "weights must have as many elements as caches")
	}
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum < 0.9999 || sum > 1.0001 {
		return nil, simerr.NewPrecondition("ArrayCache", "weights must sum to 1, got %f", sum)
	}
	return &ArrayCache[K]{caches: caches, weights: weights, rng: rand.New(rand.NewSource(rand.Int63())), selected: -1}, nil
}

func (a *ArrayCache[K]) Len() int {
	n := 0
	for _, c := range a.caches {
		n += c.Len()
	}
	return n
}

func (a *ArrayCache[K]) selectCache() int {
	if a.weights == nil {
		return a.rng.Intn(len(a.caches))
	}
	r := a.rng.Float64()
	acc := 0.0
	for i, w := range a.weights {
		acc += w
		if r < acc {
			return i
		}
	}
	return len(a.caches) - 1
}

// Get selects a cache at random and queries it, remembering the
// selection for a following Put.
func (a *ArrayCache[K]) Get(k K) bool {
	a.selected = a.selectCache()
	return a.caches[a.selected].Get(k)
}

// Put inserts into the cache selected by the most recent Get. Returns a
// PreconditionFailure if no Get has happened yet.
func (a *ArrayCache[K]) Put(k K) (K, bool, error) {
	var zero K
	if a.selected < 0 {
		return zero, false, simerr.NewPrecondition("ArrayCache.Put", "no preceding Get for content %v: array cache is read-through only", k)
	}
	evicted, had := a.caches[a.selected].Put(k)
	return evicted, had, nil
}

func (a *ArrayCache[K]) Dump() []K {
	var out []K
	for _, c := range a.caches {
		out = append(out, c.Dump()...)
	}
	return out
}

func (a *ArrayCache[K]) Clear() {
	for _, c := range a.caches {
		c.Clear()
	}
	a.selected = -1
}
