package network

// View is the read-only face of a Model: the queries a strategy makes
// while deciding how to route a request, without being able to mutate
// cache state directly (that only happens through a Controller).
type View struct {
	m *Model
}

// NewView wraps m for read-only access.
func NewView(m *Model) *View { return &View{m: m} }

// Topology returns the underlying topology.
func (v *View) Topology() *Topology { return v.m.topo }

// Cluster returns the cluster label of node n, if the topology is
// clustered.
func (v *View) Cluster(n NodeID) (int, bool) { return v.m.topo.Cluster(n) }

// ContentSource returns the origin node serving content c.
func (v *View) ContentSource(c ContentID) (NodeID, bool) { return v.m.ContentSource(c) }

// ContentLocations returns every node currently holding a copy of c:
// the origin plus any cache (coordinated or local) that reports a hit
// on a non-mutating Has check.
func (v *View) ContentLocations(c ContentID) []NodeID {
	var out []NodeID
	if src, ok := v.m.ContentSource(c); ok {
		out = append(out, src)
	}
	for n, cache := range v.m.caches {
		if cache.Has(ContentID(c)) {
			out = append(out, n)
		}
	}
	for n, cache := range v.m.localCaches {
		if cache.Has(ContentID(c)) {
			out = append(out, n)
		}
	}
	return out
}

// HasCache reports whether node n carries a coordinated cache.
func (v *View) HasCache(n NodeID) bool { return v.m.caches[n] != nil }

// HasLocalCache reports whether node n carries a reserved local cache.
func (v *View) HasLocalCache(n NodeID) bool { return v.m.localCaches[n] != nil }

// CacheLookup peeks node n's coordinated cache for content c without
// mutating policy state (no LRU reordering).
func (v *View) CacheLookup(n NodeID, c ContentID) bool {
	cache := v.m.caches[n]
	if cache == nil {
		return false
	}
	return cache.Has(c)
}

// LocalCacheLookup peeks node n's local cache for content c.
func (v *View) LocalCacheLookup(n NodeID, c ContentID) bool {
	cache := v.m.localCaches[n]
	if cache == nil {
		return false
	}
	return cache.Has(c)
}

// CacheNodes returns every node id carrying a coordinated cache.
func (v *View) CacheNodes() []NodeID { return v.m.CacheNodes() }

// ShortestPath returns the node sequence of a shortest path u->v.
func (v *View) ShortestPath(u, to NodeID) ([]NodeID, error) { return v.m.sp.Path(u, to) }

// PathWeight returns the shortest-path distance between u and to.
func (v *View) PathWeight(u, to NodeID) float64 { return v.m.sp.Weight(u, to) }

// AllPairsShortestPaths exposes the underlying table for strategies
// (e.g. CL4M, ProbCache) that need to reason about multiple paths at
// once.
func (v *View) AllPairsShortestPaths() *ShortestPaths { return v.m.sp }

// LinkType returns the type of edge (u,to).
func (v *View) LinkType(u, to NodeID) LinkType { return v.m.topo.LinkType(u, to) }

// LinkDelay returns the delay of edge (u,to).
func (v *View) LinkDelay(u, to NodeID) float64 { return v.m.topo.LinkDelay(u, to) }

// Diameter returns the topology's diameter in delay units.
func (v *View) Diameter() float64 { return v.m.topo.Diameter(v.m.sp) }

// Role returns the role of node n.
func (v *View) Role(n NodeID) NodeRole { return v.m.topo.Role(n) }

// Nodes returns every node id in the topology.
func (v *View) Nodes() []NodeID { return v.m.topo.Nodes() }

// Neighbors returns the nodes directly connected to n.
func (v *View) Neighbors(n NodeID) []NodeID { return v.m.topo.Neighbors(n) }
