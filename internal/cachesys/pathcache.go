package cachesys

// PathCache feeds requests to the first cache of a path; on a miss, it
// falls through to the next node. A miss occurs only if none of the
// caches on the path has the content.
type PathCache[K comparable] struct {
	caches []Cache[K]
}

// NewPathCache builds a PathCache over caches, in lookup order.
func NewPathCache[K comparable](caches []Cache[K]) *PathCache[K] {
	return &PathCache[K]{caches: caches}
}

func (p *PathCache[K]) Len() int {
	n := 0
	for _, c := range p.caches {
		n += c.Len()
	}
	return n
}

func (p *PathCache[K]) Has(k K) bool {
	for _, c := range p.caches {
		if c.Has(k) {
			return true
		}
	}
	return false
}

// Get walks the path until a cache reports a hit, then backfills every
// cache it passed over on the way there.
func (p *PathCache[K]) Get(k K) bool {
	hitAt := -1
	for i, c := range p.caches {
		if c.Get(k) {
			hitAt = i
			break
		}
	}
	if hitAt == -1 {
		return false
	}
	for j := 0; j < hitAt; j++ {
		p.caches[j].Put(k)
	}
	return true
}

// Put inserts k into every cache on the path.
func (p *PathCache[K]) Put(k K) {
	for _, c := range p.caches {
		c.Put(k)
	}
}

func (p *PathCache[K]) Dump() []K {
	var out []K
	for _, c := range p.caches {
		out = append(out, c.Dump()...)
	}
	return out
}

func (p *PathCache[K]) Clear() {
	for _, c := range p.caches {
		c.Clear()
	}
}
