package network

import (
	"sort"

	"github.com/icarus-sim/icnsim/internal/cachepolicy"
	"github.com/icarus-sim/icnsim/internal/simerr"
)

// Model holds the topology, the per-node cache map, a second per-node
// local-cache map for strategies that reserve a fraction of cache for
// uncoordinated caching, the catalogue->source map, and the all-pairs
// shortest-path table computed once at construction.
type Model struct {
	topo          *Topology
	sp            *ShortestPaths
	caches        map[NodeID]cachepolicy.Cache[ContentID]
	localCaches   map[NodeID]cachepolicy.Cache[ContentID]
	contentSource map[ContentID]NodeID
	started       bool
}

// CacheFactory builds the cache instance a router node should use,
// given its configured capacity.
type CacheFactory func(node NodeID, capacity int) cachepolicy.Cache[ContentID]

// NewModel builds a Model over topo: every node with a positive cache
// size gets a cache built by factory; every source node's catalogue is
// folded into the content->source map. Fails with a
// TopologyInconsistency if two sources claim the same content (the
// core needs a single content_source(c) answer) or if the topology has
// no nodes.
func NewModel(topo *Topology, factory CacheFactory) (*Model, error) {
	if len(topo.Nodes()) == 0 {
		return nil, simerr.NewTopologyInconsistency("topology has no nodes")
	}
	m := &Model{
		topo:          topo,
		sp:            ComputeShortestPaths(topo),
		caches:        make(map[NodeID]cachepolicy.Cache[ContentID]),
		localCaches:   make(map[NodeID]cachepolicy.Cache[ContentID]),
		contentSource: make(map[ContentID]NodeID),
	}
	for _, n := range topo.Nodes() {
		if size := topo.CacheSize(n); size > 0 {
			m.caches[n] = factory(n, size)
		}
		if topo.Role(n) == RoleSource {
			for c := range topo.sourceContent[n] {
				if existing, ok := m.contentSource[c]; ok && existing != n {
					return nil, simerr.NewTopologyInconsistency("content %v has more than one source (%d and %d)", c, existing, n)
				}
				m.contentSource[c] = n
			}
		}
	}
	return m, nil
}

// Topology returns the underlying topology.
func (m *Model) Topology() *Topology { return m.topo }

// ShortestPaths returns the all-pairs shortest-path table.
func (m *Model) ShortestPaths() *ShortestPaths { return m.sp }

// Cache returns the coordinated cache at node v, or nil if v has none.
func (m *Model) Cache(v NodeID) cachepolicy.Cache[ContentID] { return m.caches[v] }

// LocalCache returns the uncoordinated local cache at node v, or nil.
func (m *Model) LocalCache(v NodeID) cachepolicy.Cache[ContentID] { return m.localCaches[v] }

// CacheNodes returns the ids of every node carrying a coordinated
// cache, sorted ascending. Hash-routing strategies rely on this order
// being stable across calls and across process runs to keep
// authoritative_cache(content) reproducible.
func (m *Model) CacheNodes() []NodeID {
	out := make([]NodeID, 0, len(m.caches))
	for n := range m.caches {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ContentSource returns the origin node for content c and whether one
// is registered.
func (m *Model) ContentSource(c ContentID) (NodeID, bool) {
	n, ok := m.contentSource[c]
	return n, ok
}

// ReserveLocalCache splits every cache-carrying node's cache into a
// coordinated portion of size round((1-ratio)*C) and an uncoordinated
// local portion of size C-coordinated, using factory to build the new
// smaller caches. Must be called before the experiment starts.
func (m *Model) ReserveLocalCache(ratio float64, factory CacheFactory) error {
	if m.started {
		return simerr.NewPrecondition("ReserveLocalCache", "cannot reserve local cache after simulation start")
	}
	for n, c := range m.caches {
		total := c.Capacity()
		coordinated := int(roundHalfAwayFromZero(float64(total) * (1 - ratio)))
		local := total - coordinated
		m.caches[n] = factory(n, coordinated)
		if local > 0 {
			m.localCaches[n] = factory(n, local)
		}
	}
	return nil
}

func roundHalfAwayFromZero(x float64) float64 {
	if x >= 0 {
		return float64(int64(x + 0.5))
	}
	return float64(int64(x - 0.5))
}

// MarkStarted freezes setup-only operations like ReserveLocalCache.
func (m *Model) MarkStarted() { m.started = true }
