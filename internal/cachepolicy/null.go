package cachepolicy

// NullCache has capacity 0: every query returns false, every insertion
// is a no-op. It disables caching at a node without branching at call
// sites.
type NullCache[K comparable] struct{}

// NewNullCache constructs a NullCache.
func NewNullCache[K comparable]() *NullCache[K] { return &NullCache[K]{} }

func (c *NullCache[K]) Capacity() int { return 0 }
func (c *NullCache[K]) Len() int      { return 0 }
func (c *NullCache[K]) Has(k K) bool  { return false }
func (c *NullCache[K]) Get(k K) bool  { return false }

func (c *NullCache[K]) Put(k K) (K, bool) {
	var zero K
	return zero, false
}

func (c *NullCache[K]) Remove(k K) bool { return false }
func (c *NullCache[K]) Dump() []K       { return nil }
func (c *NullCache[K]) Clear()          {}
