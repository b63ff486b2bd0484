package cachepolicy

import (
	"container/heap"
	"math"

	"github.com/icarus-sim/icnsim/internal/simerr"
)

// Clock returns the current logical time, a monotone numeric value
// supplied by the event stream that drives the experiment.
type Clock func() float64

// TTLEntry is a (key, expiry) pair as returned by TTLDecorator.Dump.
type TTLEntry[K comparable] struct {
	Key    K
	Expiry float64
}

type ttlHeapItem[K comparable] struct {
	key    K
	expiry float64
}

type ttlHeap[K comparable] []ttlHeapItem[K]

func (h ttlHeap[K]) Len() int            { return len(h) }
func (h ttlHeap[K]) Less(i, j int) bool  { return h[i].expiry < h[j].expiry }
func (h ttlHeap[K]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *ttlHeap[K]) Push(x interface{}) { *h = append(*h, x.(ttlHeapItem[K])) }
func (h *ttlHeap[K]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// TTLDecorator wraps a base cache with expiration. A side index (a
// binary min-heap keyed by expiry) keeps residents in ascending-expiry
// order so purges run in time proportional to the number of expired
// entries. The base must be empty at construction.
type TTLDecorator[K comparable] struct {
	base   Cache[K]
	clock  Clock
	expiry map[K]float64
	h      ttlHeap[K]
}

// NewTTLDecorator wraps base with TTL expiration, using clock as the
// time source. Returns a PreconditionFailure if base is not empty.
func NewTTLDecorator[K comparable](base Cache[K], clock Clock) (*TTLDecorator[K], error) {
	if base.Len() != 0 {
		return nil, simerr.NewPrecondition("TTLDecorator", "base cache must be empty at construction, has %d entries", base.Len())
	}
	return &TTLDecorator[K]{base: base, clock: clock, expiry: make(map[K]float64)}, nil
}

func (d *TTLDecorator[K]) Capacity() int { return d.base.Capacity() }
func (d *TTLDecorator[K]) Len() int      { return d.base.Len() }

func (d *TTLDecorator[K]) purgeExpired(now float64) {
	for len(d.h) > 0 {
		top := d.h[0]
		exp, resident := d.expiry[top.key]
		if !resident || exp != top.expiry {
			heap.Pop(&d.h) // stale entry superseded by a later Put
			continue
		}
		if top.expiry > now {
			return
		}
		heap.Pop(&d.h)
		d.base.Remove(top.key)
		delete(d.expiry, top.key)
	}
}

// Has reports presence, expiring k first if its expiry has passed.
func (d *TTLDecorator[K]) Has(k K) bool {
	now := d.clock()
	if exp, ok := d.expiry[k]; ok && exp < now {
		d.base.Remove(k)
		delete(d.expiry, k)
		return false
	}
	return d.base.Has(k)
}

// Get reports presence (reordering per the base policy), expiring k
// first if its expiry has passed.
func (d *TTLDecorator[K]) Get(k K) bool {
	if !d.Has(k) {
		return false
	}
	return d.base.Get(k)
}

// Put inserts k with the given ttl (relative) or expires (absolute)
// time, not both. ttl <= 0 or an already-past expires means k is not
// cached. On re-put, expiry only ever rises.
func (d *TTLDecorator[K]) Put(k K, ttl, expires *float64) (evicted K, hadEviction bool, err error) {
	var zero K
	if ttl != nil && expires != nil {
		return zero, false, simerr.NewPrecondition("TTLDecorator.Put", "both ttl and expires supplied")
	}
	now := d.clock()
	exp := math.Inf(1)
	switch {
	case ttl != nil:
		if *ttl <= 0 {
			return zero, false, nil
		}
		exp = now + *ttl
	case expires != nil:
		if *expires <= now {
			return zero, false, nil
		}
		exp = *expires
	}

	if d.base.Len() >= d.base.Capacity() {
		d.purgeExpired(now)
	}

	if old, ok := d.expiry[k]; ok {
		if exp > old {
			d.expiry[k] = exp
			heap.Push(&d.h, ttlHeapItem[K]{key: k, expiry: exp})
		}
		d.base.Put(k)
		return zero, false, nil
	}

	evictedKey, hadEviction := d.base.Put(k)
	d.expiry[k] = exp
	heap.Push(&d.h, ttlHeapItem[K]{key: k, expiry: exp})
	if hadEviction {
		delete(d.expiry, evictedKey)
	}
	return evictedKey, hadEviction, nil
}

func (d *TTLDecorator[K]) Remove(k K) bool {
	delete(d.expiry, k)
	return d.base.Remove(k)
}

// Dump purges expired residents first, then returns (key, expiry)
// pairs in base policy order.
func (d *TTLDecorator[K]) Dump() []TTLEntry[K] {
	d.purgeExpired(d.clock())
	keys := d.base.Dump()
	out := make([]TTLEntry[K], len(keys))
	for i, k := range keys {
		out[i] = TTLEntry[K]{Key: k, Expiry: d.expiry[k]}
	}
	return out
}

func (d *TTLDecorator[K]) Clear() {
	d.base.Clear()
	d.expiry = make(map[K]float64)
	d.h = nil
}
