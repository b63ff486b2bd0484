// Package network implements the NetworkModel, NetworkView, and
// NetworkController (spec.md components C4-C6): the topology and cache
// state a strategy drives through hop-by-hop traversal.
package network

import (
	"math"

	"github.com/icarus-sim/icnsim/internal/simerr"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// ContentID is an opaque, hashable content identifier.
type ContentID int64

// NodeID is an opaque, hashable node identifier; it doubles as a gonum
// graph node id.
type NodeID int64

// LinkType classifies an edge as internal (within a network operator)
// or external (e.g. peering, transit).
type LinkType int

const (
	LinkInternal LinkType = iota
	LinkExternal
)

// NodeRole classifies a topology node.
type NodeRole int

const (
	RoleRouter NodeRole = iota
	RoleSource
	RoleReceiver
)

type edgeKey struct{ u, v int64 }

func normKey(u, v NodeID) edgeKey {
	if u <= v {
		return edgeKey{int64(u), int64(v)}
	}
	return edgeKey{int64(v), int64(u)}
}

// Topology is an undirected graph of NodeId with per-edge delay and
// type, per-node role, source content catalogues, and optional cluster
// membership.
type Topology struct {
	g             *simple.WeightedUndirectedGraph
	role          map[NodeID]NodeRole
	cacheSize     map[NodeID]int
	sourceContent map[NodeID]map[ContentID]bool
	linkType      map[edgeKey]LinkType
	cluster       map[NodeID]int
	hasCluster    bool
}

// NewTopology builds an empty topology.
func NewTopology() *Topology {
	return &Topology{
		g:             simple.NewWeightedUndirectedGraph(0, 0),
		role:          make(map[NodeID]NodeRole),
		cacheSize:     make(map[NodeID]int),
		sourceContent: make(map[NodeID]map[ContentID]bool),
		linkType:      make(map[edgeKey]LinkType),
		cluster:       make(map[NodeID]int),
	}
}

// AddNode registers a node with its role.
func (t *Topology) AddNode(id NodeID, role NodeRole) {
	if !t.g.Has(int64(id)) {
		t.g.AddNode(simple.Node(int64(id)))
	}
	t.role[id] = role
}

// SetCacheSize records the capacity of the cache a router node carries.
// Zero or absent means the node has no cache.
func (t *Topology) SetCacheSize(id NodeID, size int) { t.cacheSize[id] = size }

// CacheSize returns the capacity configured for id (0 if none).
func (t *Topology) CacheSize(id NodeID) int { return t.cacheSize[id] }

// SetSourceContents records the content catalogue a source node holds.
func (t *Topology) SetSourceContents(id NodeID, contents []ContentID) {
	set := make(map[ContentID]bool, len(contents))
	for _, c := range contents {
		set[c] = true
	}
	t.sourceContent[id] = set
}

// SetCluster assigns a cluster label to a node, marking the topology as
// clustered.
func (t *Topology) SetCluster(id NodeID, cluster int) {
	t.cluster[id] = cluster
	t.hasCluster = true
}

// Cluster returns the cluster label of id and whether the topology is
// clustered at all.
func (t *Topology) Cluster(id NodeID) (int, bool) {
	if !t.hasCluster {
		return 0, false
	}
	c, ok := t.cluster[id]
	return c, ok
}

// AddEdge adds an undirected edge with the given delay and type.
// AddEdge is idempotent for the same (u,v) pair (it overwrites).
func (t *Topology) AddEdge(u, v NodeID, delay float64, lt LinkType) {
	if !t.g.Has(int64(u)) {
		t.g.AddNode(simple.Node(int64(u)))
	}
	if !t.g.Has(int64(v)) {
		t.g.AddNode(simple.Node(int64(v)))
	}
	t.g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(int64(u)), T: simple.Node(int64(v)), W: delay})
	t.linkType[normKey(u, v)] = lt
}

// LinkType returns the type of edge (u,v), defaulting to internal if
// unset.
func (t *Topology) LinkType(u, v NodeID) LinkType { return t.linkType[normKey(u, v)] }

// LinkDelay returns the delay of edge (u,v), or -1 if no such edge
// exists.
func (t *Topology) LinkDelay(u, v NodeID) float64 {
	e := t.g.WeightedEdge(int64(u), int64(v))
	if e == nil {
		return -1
	}
	return e.Weight()
}

// Role returns the role of a node.
func (t *Topology) Role(id NodeID) NodeRole { return t.role[id] }

// HasCacheCapability reports whether the node carries a positive-size
// cache.
func (t *Topology) HasCacheCapability(id NodeID) bool { return t.cacheSize[id] > 0 }

// Diameter returns the length (in delay units) of the longest shortest
// path among all node pairs. Required by Hashrouting's HYBRID-AM
// variant.
func (t *Topology) Diameter(sp *ShortestPaths) float64 {
	max := 0.0
	nodes := t.Nodes()
	for _, u := range nodes {
		for _, v := range nodes {
			if u == v {
				continue
			}
			if w := sp.Weight(u, v); !math.IsInf(w, 1) && w > max {
				max = w
			}
		}
	}
	return max
}

// Nodes returns every node id in the topology, in no particular order.
func (t *Topology) Nodes() []NodeID {
	it := t.g.Nodes()
	out := make([]NodeID, 0, it.Len())
	for it.Next() {
		out = append(out, NodeID(it.Node().ID()))
	}
	return out
}

// Graph exposes the underlying gonum graph for algorithms (betweenness,
// shortest paths) that need it directly.
func (t *Topology) Graph() graph.Weighted { return t.g }

// Neighbors returns the nodes directly connected to id.
func (t *Topology) Neighbors(id NodeID) []NodeID {
	it := t.g.From(int64(id))
	out := make([]NodeID, 0, it.Len())
	for it.Next() {
		out = append(out, NodeID(it.Node().ID()))
	}
	return out
}

// ShortestPaths is the all-pairs shortest-path table computed once at
// model construction.
type ShortestPaths struct {
	all path.AllShortest
}

// ComputeShortestPaths runs Dijkstra from every node once.
func ComputeShortestPaths(t *Topology) *ShortestPaths {
	return &ShortestPaths{all: path.DijkstraAllPaths(t.g)}
}

// Weight returns the shortest-path distance (sum of edge delays)
// between u and v.
func (sp *ShortestPaths) Weight(u, v NodeID) float64 {
	return sp.all.Weight(int64(u), int64(v))
}

// Path returns the node sequence of a shortest path from u to v
// (inclusive of both endpoints). Returns an error if no path exists,
// surfaced as a TopologyInconsistency.
func (sp *ShortestPaths) Path(u, v NodeID) ([]NodeID, error) {
	nodes, _, unique := sp.all.Between(int64(u), int64(v))
	_ = unique
	if nodes == nil {
		return nil, simerr.NewTopologyInconsistency("no path between node %d and node %d", u, v)
	}
	out := make([]NodeID, len(nodes))
	for i, n := range nodes {
		out[i] = NodeID(n.ID())
	}
	return out, nil
}
