package cachesys

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"reflect"

	"github.com/icarus-sim/icnsim/internal/simerr"
)

// ShardedCache maps each content deterministically to one of n shards
// via a hash function, so an item is ever stored by a single node of
// the set. Its capacity is the sum of its shards' capacities;
// ApportionShardCapacity splits a nominal capacity across shards as
// evenly as possible for a caller building them.
type ShardedCache[K comparable] struct {
	shards  []Cache[K]
	fMap    func(K) int
	maxLen  int
}

// NewShardedCache builds a ShardedCache over shards, already built and
// sized by the caller. fMap may be nil to use the default content-hash
// mapping (see DefaultFMap).
func NewShardedCache[K comparable](shards []Cache[K], fMap func(K) int) (*ShardedCache[K], error) {
	if len(shards) == 0 {
		return nil, simerr.NewPrecondition("ShardedCache", "at least one shard is required")
	}
	n := len(shards)
	maxLen := 0
	for _, s := range shards {
		maxLen += s.Capacity()
	}
	if fMap == nil {
		fMap = func(k K) int { return DefaultFMap(k, n) }
	}
	return &ShardedCache[K]{shards: shards, fMap: fMap, maxLen: maxLen}, nil
}

// DefaultFMap hashes k with FNV-1a and reduces modulo n. It replaces
// the Python source's reliance on the builtin hash() function; content
// ids are signed integers here (including named types such as
// network.ContentID), so the hash is computed over their big-endian
// int64 encoding.
func DefaultFMap[K comparable](k K, n int) int {
	h := fnv.New64a()
	var buf [8]byte
	switch rv := reflect.ValueOf(k); rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		binary.BigEndian.PutUint64(buf[:], uint64(rv.Int()))
	default:
		// Fall back to a stable textual encoding for exotic key types.
		h.Write([]byte(fmt.Sprint(k)))
		return int(h.Sum64() % uint64(n))
	}
	h.Write(buf[:])
	return int(h.Sum64() % uint64(n))
}

func (s *ShardedCache[K]) Capacity() int { return s.maxLen }

func (s *ShardedCache[K]) Len() int {
	n := 0
	for _, sh := range s.shards {
		n += sh.Len()
	}
	return n
}

func (s *ShardedCache[K]) Has(k K) bool { return s.shards[s.fMap(k)].Has(k) }
func (s *ShardedCache[K]) Get(k K) bool { return s.shards[s.fMap(k)].Get(k) }

func (s *ShardedCache[K]) Put(k K) (K, bool) { return s.shards[s.fMap(k)].Put(k) }

func (s *ShardedCache[K]) Remove(k K) bool { return s.shards[s.fMap(k)].Remove(k) }

func (s *ShardedCache[K]) Dump() []K {
	var out []K
	for _, sh := range s.shards {
		out = append(out, sh.Dump()...)
	}
	return out
}

func (s *ShardedCache[K]) Clear() {
	for _, sh := range s.shards {
		sh.Clear()
	}
}

// ApportionShardCapacity divides maxLen as evenly as possible across
// nodes shards, front-loading the remainder.
func ApportionShardCapacity(maxLen, nodes int) []int {
	sizes := make([]int, nodes)
	base := maxLen / nodes
	rem := maxLen % nodes
	for i := range sizes {
		sizes[i] = base
		if i < rem {
			sizes[i]++
		}
	}
	return sizes
}
