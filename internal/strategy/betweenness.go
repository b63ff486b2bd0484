package strategy

import (
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	icn "github.com/icarus-sim/icnsim/internal/network"
)

// Betweenness computes betweenness centrality for every node of topo,
// for use by CacheLessForMore. Grounded on networkx's
// betweenness_centrality (used by the original CL4M implementation),
// via gonum's equivalent, graph/network.Betweenness.
func Betweenness(topo *icn.Topology) map[icn.NodeID]float64 {
	scores := network.Betweenness(topo.Graph())
	out := make(map[icn.NodeID]float64, len(scores))
	for id, score := range scores {
		out[icn.NodeID(id)] = score
	}
	return out
}

// EgoBetweenness computes, for every node of topo, its betweenness
// centrality restricted to its own ego network (itself plus its direct
// neighbors and the edges among them), matching the reference
// implementation's use_ego_betw option for CL4M: a cheaper, purely
// local centrality approximation that avoids a full-graph computation.
func EgoBetweenness(topo *icn.Topology) map[icn.NodeID]float64 {
	out := make(map[icn.NodeID]float64)
	for _, n := range topo.Nodes() {
		members := append([]icn.NodeID{n}, topo.Neighbors(n)...)
		index := make(map[icn.NodeID]int64, len(members))
		ego := simple.NewWeightedUndirectedGraph(0, 0)
		for i, m := range members {
			index[m] = int64(i)
			ego.AddNode(simple.Node(int64(i)))
		}
		for _, u := range members {
			for _, v := range topo.Neighbors(u) {
				vi, ok := index[v]
				if !ok || v <= u {
					continue
				}
				ego.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(index[u]), T: simple.Node(vi), W: topo.LinkDelay(u, v)})
			}
		}
		scores := network.Betweenness(ego)
		out[n] = scores[index[n]]
	}
	return out
}
