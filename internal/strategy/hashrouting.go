package strategy

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/icarus-sim/icnsim/internal/network"
	"github.com/icarus-sim/icnsim/internal/simerr"
)

// RoutingMode selects how a hash-routing strategy delivers a cache
// miss's content from the source back through the authoritative cache.
type RoutingMode int

const (
	RoutingSymmetric RoutingMode = iota
	RoutingAsymmetric
	RoutingMulticast
	// RoutingHybridAM delivers like RoutingAsymmetric, but when the
	// cache is off the direct source-receiver path it additionally
	// ships a side copy to the cache whenever the fork's detour stays
	// under maxStretch * diameter(topology).
	RoutingHybridAM
	// RoutingHybridSM picks whichever of RoutingSymmetric or
	// RoutingMulticast has the lower hop-count delivery cost, ties
	// going to RoutingSymmetric.
	RoutingHybridSM
)

// authoritativeHash replaces the reference implementation's reliance
// on Python's builtin hash() with FNV-1a over the content id, matching
// internal/cachesys.DefaultFMap's approach for the same problem.
func authoritativeHash(content network.ContentID, n int) int {
	h := fnv.New64a()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(content))
	h.Write(buf[:])
	return int(h.Sum64() % uint64(n))
}

// hashrouter assigns each content id to an authoritative caching node
// via a deterministic hash, optionally per cluster.
type hashrouter struct {
	cacheNodes []network.NodeID
}

func newHashrouter(view *network.View) *hashrouter {
	return &hashrouter{cacheNodes: view.CacheNodes()}
}

func (h *hashrouter) authoritativeCache(content network.ContentID) (network.NodeID, error) {
	if len(h.cacheNodes) == 0 {
		return 0, simerr.NewTopologyInconsistency("hash-routing requires at least one caching node")
	}
	idx := authoritativeHash(content, len(h.cacheNodes))
	return h.cacheNodes[idx], nil
}

// forkNode returns the last common node before cachePath and recvPath
// diverge, used by MULTICAST delivery to decide where content forks
// towards the cache versus the receiver.
func forkNode(cachePath, recvPath []network.NodeID, fallback network.NodeID) network.NodeID {
	limit := len(cachePath)
	if len(recvPath) < limit {
		limit = len(recvPath)
	}
	for i := 1; i < limit; i++ {
		if cachePath[i] != recvPath[i] {
			return cachePath[i-1]
		}
	}
	return fallback
}

// Hashrouting implements the three basic hash-routing schemes
// (symmetric, asymmetric, multicast delivery of a cache miss): edge
// nodes hash the content id to a specific caching node and forward the
// request there; on a miss, that node fetches from the source and the
// three schemes differ only in how the content is then delivered.
type Hashrouting struct {
	base
	*hashrouter
	routing RoutingMode
	// maxStretch bounds RoutingHybridAM's side-path detour as a
	// multiple of the topology's diameter; unused by every other mode.
	maxStretch float64
}

// NewHashrouting builds a Hashrouting strategy. For RoutingHybridAM,
// use NewHashroutingHybridAM instead to set a non-default maxStretch.
func NewHashrouting(view *network.View, ctrl *network.Controller, routing RoutingMode) *Hashrouting {
	return &Hashrouting{base: newBase(view, ctrl), hashrouter: newHashrouter(view), routing: routing, maxStretch: 1.0}
}

// NewHashroutingHybridAM builds a Hashrouting strategy running the
// HYBRID-AM scheme, whose side-path detour to the cache is only taken
// when it costs less than maxStretch * diameter(topology).
func NewHashroutingHybridAM(view *network.View, ctrl *network.Controller, maxStretch float64) *Hashrouting {
	return &Hashrouting{base: newBase(view, ctrl), hashrouter: newHashrouter(view), routing: RoutingHybridAM, maxStretch: maxStretch}
}

func (s *Hashrouting) ProcessEvent(time float64, receiver network.NodeID, content network.ContentID, log bool) error {
	source, err := sourceOf(s.view, content)
	if err != nil {
		return err
	}
	cache, err := s.authoritativeCache(content)
	if err != nil {
		return err
	}
	if _, err := s.ctrl.StartSession(time, receiver, content, log); err != nil {
		return err
	}
	reqPath, err := s.view.ShortestPath(receiver, cache)
	if err != nil {
		return err
	}
	if err := s.ctrl.ForwardRequestPath(reqPath, true); err != nil {
		return err
	}
	hit, err := s.ctrl.GetContent(cache)
	if err != nil {
		return err
	}
	if hit {
		retPath, err := s.view.ShortestPath(cache, receiver)
		if err != nil {
			return err
		}
		if err := s.ctrl.ForwardContentPath(retPath, true); err != nil {
			return err
		}
		return s.ctrl.EndSession(cache, true)
	}
	missPath, err := s.view.ShortestPath(cache, source)
	if err != nil {
		return err
	}
	if err := s.ctrl.ForwardRequestPath(missPath, true); err != nil {
		return err
	}
	srcHit, err := s.ctrl.GetContent(source)
	if err != nil {
		return err
	}
	if !srcHit {
		return simerr.NewStrategyAssertion("Hashrouting", "content %v not found at expected source %v", content, source)
	}
	if err := s.deliverMiss(source, cache, receiver); err != nil {
		return err
	}
	return s.ctrl.EndSession(cache, false)
}

func (s *Hashrouting) deliverMiss(source, cache, receiver network.NodeID) error {
	switch s.routing {
	case RoutingSymmetric:
		p1, err := s.view.ShortestPath(source, cache)
		if err != nil {
			return err
		}
		if err := s.ctrl.ForwardContentPath(p1, true); err != nil {
			return err
		}
		if _, err := s.ctrl.PutContent(cache); err != nil {
			return err
		}
		p2, err := s.view.ShortestPath(cache, receiver)
		if err != nil {
			return err
		}
		return s.ctrl.ForwardContentPath(p2, true)
	case RoutingAsymmetric:
		onPath, err := pathContains(s.view, source, receiver, cache)
		if err != nil {
			return err
		}
		if onPath {
			p1, err := s.view.ShortestPath(source, cache)
			if err != nil {
				return err
			}
			if err := s.ctrl.ForwardContentPath(p1, true); err != nil {
				return err
			}
			if _, err := s.ctrl.PutContent(cache); err != nil {
				return err
			}
			p2, err := s.view.ShortestPath(cache, receiver)
			if err != nil {
				return err
			}
			return s.ctrl.ForwardContentPath(p2, true)
		}
		p, err := s.view.ShortestPath(source, receiver)
		if err != nil {
			return err
		}
		return s.ctrl.ForwardContentPath(p, true)
	case RoutingMulticast:
		onPath, err := pathContains(s.view, source, receiver, cache)
		if err != nil {
			return err
		}
		if onPath {
			p1, err := s.view.ShortestPath(source, cache)
			if err != nil {
				return err
			}
			if err := s.ctrl.ForwardContentPath(p1, true); err != nil {
				return err
			}
			if _, err := s.ctrl.PutContent(cache); err != nil {
				return err
			}
			p2, err := s.view.ShortestPath(cache, receiver)
			if err != nil {
				return err
			}
			return s.ctrl.ForwardContentPath(p2, true)
		}
		cachePath, err := s.view.ShortestPath(source, cache)
		if err != nil {
			return err
		}
		recvPath, err := s.view.ShortestPath(source, receiver)
		if err != nil {
			return err
		}
		fork := forkNode(cachePath, recvPath, cache)
		if fp, err := s.view.ShortestPath(source, fork); err == nil {
			if err := s.ctrl.ForwardContentPath(fp, true); err != nil {
				return err
			}
		} else {
			return err
		}
		if fp, err := s.view.ShortestPath(fork, receiver); err == nil {
			if err := s.ctrl.ForwardContentPath(fp, true); err != nil {
				return err
			}
		} else {
			return err
		}
		if fp, err := s.view.ShortestPath(fork, cache); err == nil {
			if err := s.ctrl.ForwardContentPath(fp, false); err != nil {
				return err
			}
		} else {
			return err
		}
		_, err = s.ctrl.PutContent(cache)
		return err
	case RoutingHybridAM:
		return s.deliverHybridAM(source, cache, receiver)
	case RoutingHybridSM:
		return s.deliverHybridSM(source, cache, receiver)
	default:
		return simerr.NewStrategyAssertion("Hashrouting", "unsupported routing mode %v", s.routing)
	}
}

// deliverHybridAM: ASYMM on-path, plus an off-path side delivery to
// the cache when its detour stays under maxStretch * diameter.
func (s *Hashrouting) deliverHybridAM(source, cache, receiver network.NodeID) error {
	onPath, err := pathContains(s.view, source, receiver, cache)
	if err != nil {
		return err
	}
	if onPath {
		p1, err := s.view.ShortestPath(source, cache)
		if err != nil {
			return err
		}
		if err := s.ctrl.ForwardContentPath(p1, true); err != nil {
			return err
		}
		if _, err := s.ctrl.PutContent(cache); err != nil {
			return err
		}
		p2, err := s.view.ShortestPath(cache, receiver)
		if err != nil {
			return err
		}
		return s.ctrl.ForwardContentPath(p2, true)
	}
	mainPath, err := s.view.ShortestPath(source, receiver)
	if err != nil {
		return err
	}
	if err := s.ctrl.ForwardContentPath(mainPath, true); err != nil {
		return err
	}
	cachePath, err := s.view.ShortestPath(source, cache)
	if err != nil {
		return err
	}
	fork := forkNode(cachePath, mainPath, cache)
	detour := s.view.PathWeight(fork, cache)
	if detour >= s.maxStretch*s.view.Diameter() {
		return nil
	}
	sidePath, err := s.view.ShortestPath(fork, cache)
	if err != nil {
		return err
	}
	if err := s.ctrl.ForwardContentPath(sidePath, false); err != nil {
		return err
	}
	_, err = s.ctrl.PutContent(cache)
	return err
}

// deliverHybridSM picks whichever of SYMM or MULTICAST costs fewer
// hops to deliver, ties going to SYMM; both branches cache at cache.
func (s *Hashrouting) deliverHybridSM(source, cache, receiver network.NodeID) error {
	// A failed lookup here resurfaces from the ShortestPath call of
	// whichever branch is then taken.
	hops := func(u, v network.NodeID) int {
		p, _ := s.view.ShortestPath(u, v)
		return len(p) - 1
	}
	symmCost := hops(source, cache) + hops(cache, receiver)

	cachePath, err := s.view.ShortestPath(source, cache)
	if err != nil {
		return err
	}
	recvPath, err := s.view.ShortestPath(source, receiver)
	if err != nil {
		return err
	}
	fork := forkNode(cachePath, recvPath, cache)
	multicastCost := hops(source, fork) + hops(fork, receiver) + hops(fork, cache)

	if multicastCost >= symmCost {
		p1, err := s.view.ShortestPath(source, cache)
		if err != nil {
			return err
		}
		if err := s.ctrl.ForwardContentPath(p1, true); err != nil {
			return err
		}
		if _, err := s.ctrl.PutContent(cache); err != nil {
			return err
		}
		p2, err := s.view.ShortestPath(cache, receiver)
		if err != nil {
			return err
		}
		return s.ctrl.ForwardContentPath(p2, true)
	}

	if fp, err := s.view.ShortestPath(source, fork); err == nil {
		if err := s.ctrl.ForwardContentPath(fp, true); err != nil {
			return err
		}
	} else {
		return err
	}
	if fp, err := s.view.ShortestPath(fork, receiver); err == nil {
		if err := s.ctrl.ForwardContentPath(fp, true); err != nil {
			return err
		}
	} else {
		return err
	}
	if fp, err := s.view.ShortestPath(fork, cache); err == nil {
		if err := s.ctrl.ForwardContentPath(fp, false); err != nil {
			return err
		}
	} else {
		return err
	}
	_, err = s.ctrl.PutContent(cache)
	return err
}

func pathContains(view *network.View, from, to, node network.NodeID) (bool, error) {
	path, err := view.ShortestPath(from, to)
	if err != nil {
		return false, err
	}
	for _, n := range path {
		if n == node {
			return true, nil
		}
	}
	return false, nil
}

// proxyOf returns the receiver's sole network neighbor, the point where
// HashroutingEdge/HashroutingOnPath probe a local cache before falling
// through to the hash-routed authoritative cache.
func proxyOf(view *network.View, receiver network.NodeID) (network.NodeID, error) {
	neighbors := view.Neighbors(receiver)
	if len(neighbors) != 1 {
		return 0, simerr.NewTopologyInconsistency("receiver %v does not have exactly one neighbor (has %d)", receiver, len(neighbors))
	}
	return neighbors[0], nil
}

// HashroutingEdge reserves a fraction of each cache node's capacity as
// an uncoordinated local cache at the receiver's proxy node; a request
// first probes that local cache before falling through to Hashrouting
// against the coordinated, hash-routed caches.
type HashroutingEdge struct {
	*Hashrouting
}

// NewHashroutingEdge builds a HashroutingEdge strategy. edgeCacheRatio
// is the fraction of each cache's capacity reserved for the local,
// uncoordinated edge cache (the rest stays coordinated and
// hash-routed).
func NewHashroutingEdge(view *network.View, ctrl *network.Controller, routing RoutingMode, edgeCacheRatio float64, factory network.CacheFactory) (*HashroutingEdge, error) {
	if err := ctrl.ReserveLocalCache(edgeCacheRatio, factory); err != nil {
		return nil, err
	}
	return &HashroutingEdge{Hashrouting: NewHashrouting(view, ctrl, routing)}, nil
}

func (s *HashroutingEdge) ProcessEvent(time float64, receiver network.NodeID, content network.ContentID, log bool) error {
	source, err := sourceOf(s.view, content)
	if err != nil {
		return err
	}
	proxy, err := proxyOf(s.view, receiver)
	if err != nil {
		return err
	}
	if _, err := s.ctrl.StartSession(time, receiver, content, log); err != nil {
		return err
	}
	if err := s.ctrl.ForwardRequestHop(receiver, proxy, true); err != nil {
		return err
	}
	hit, err := s.ctrl.GetContentLocalCache(proxy)
	if err != nil {
		return err
	}
	if hit {
		if err := s.ctrl.ForwardContentHop(proxy, receiver, true); err != nil {
			return err
		}
		return s.ctrl.EndSession(proxy, true)
	}
	cache, err := s.authoritativeCache(content)
	if err != nil {
		return err
	}
	reqPath, err := s.view.ShortestPath(proxy, cache)
	if err != nil {
		return err
	}
	if err := s.ctrl.ForwardRequestPath(reqPath, true); err != nil {
		return err
	}
	cacheHit, err := s.ctrl.GetContent(cache)
	if err != nil {
		return err
	}
	if cacheHit {
		retPath, err := s.view.ShortestPath(cache, proxy)
		if err != nil {
			return err
		}
		if err := s.ctrl.ForwardContentPath(retPath, true); err != nil {
			return err
		}
		if _, err := s.ctrl.PutContentLocalCache(proxy); err != nil {
			return err
		}
		if err := s.ctrl.ForwardContentHop(proxy, receiver, true); err != nil {
			return err
		}
		return s.ctrl.EndSession(cache, true)
	}
	missPath, err := s.view.ShortestPath(cache, source)
	if err != nil {
		return err
	}
	if err := s.ctrl.ForwardRequestPath(missPath, true); err != nil {
		return err
	}
	srcHit, err := s.ctrl.GetContent(source)
	if err != nil {
		return err
	}
	if !srcHit {
		return simerr.NewStrategyAssertion("HashroutingEdge", "content %v not found at expected source %v", content, source)
	}
	if err := s.deliverMiss(source, cache, proxy); err != nil {
		return err
	}
	if _, err := s.ctrl.PutContentLocalCache(proxy); err != nil {
		return err
	}
	if err := s.ctrl.ForwardContentHop(proxy, receiver, true); err != nil {
		return err
	}
	return s.ctrl.EndSession(cache, false)
}

// HashroutingOnPath behaves like HashroutingEdge but probes every
// cache-carrying node along the request path's local cache, not just
// the proxy, before falling through to the hash-routed coordinated
// caches.
type HashroutingOnPath struct {
	*Hashrouting
}

// NewHashroutingOnPath builds a HashroutingOnPath strategy.
// onPathCacheRatio is the fraction of each cache's capacity reserved
// for the local, uncoordinated on-path cache.
func NewHashroutingOnPath(view *network.View, ctrl *network.Controller, routing RoutingMode, onPathCacheRatio float64, factory network.CacheFactory) (*HashroutingOnPath, error) {
	if err := ctrl.ReserveLocalCache(onPathCacheRatio, factory); err != nil {
		return nil, err
	}
	return &HashroutingOnPath{Hashrouting: NewHashrouting(view, ctrl, routing)}, nil
}

func (s *HashroutingOnPath) ProcessEvent(time float64, receiver network.NodeID, content network.ContentID, log bool) error {
	source, err := sourceOf(s.view, content)
	if err != nil {
		return err
	}
	cache, err := s.authoritativeCache(content)
	if err != nil {
		return err
	}
	if _, err := s.ctrl.StartSession(time, receiver, content, log); err != nil {
		return err
	}
	reqPath, err := s.view.ShortestPath(receiver, cache)
	if err != nil {
		return err
	}
	var servingNode network.NodeID
	var haveServingNode bool
	for _, l := range pathLinks(reqPath) {
		u, v := l[0], l[1]
		if err := s.ctrl.ForwardRequestHop(u, v, true); err != nil {
			return err
		}
		if s.view.HasLocalCache(v) {
			hit, err := s.ctrl.GetContentLocalCache(v)
			if err != nil {
				return err
			}
			if hit {
				servingNode, haveServingNode = v, true
				break
			}
		}
	}
	if haveServingNode {
		retPath, err := s.view.ShortestPath(receiver, servingNode)
		if err != nil {
			return err
		}
		if err := s.ctrl.ForwardContentPath(reversed(retPath), true); err != nil {
			return err
		}
		return s.ctrl.EndSession(servingNode, true)
	}
	cacheHit, err := s.ctrl.GetContent(cache)
	if err != nil {
		return err
	}
	if cacheHit {
		retPath, err := s.view.ShortestPath(cache, receiver)
		if err != nil {
			return err
		}
		if err := s.markOnPathAndForward(retPath, content); err != nil {
			return err
		}
		return s.ctrl.EndSession(cache, true)
	}
	missPath, err := s.view.ShortestPath(cache, source)
	if err != nil {
		return err
	}
	if err := s.ctrl.ForwardRequestPath(missPath, true); err != nil {
		return err
	}
	srcHit, err := s.ctrl.GetContent(source)
	if err != nil {
		return err
	}
	if !srcHit {
		return simerr.NewStrategyAssertion("HashroutingOnPath", "content %v not found at expected source %v", content, source)
	}
	if err := s.deliverMissOnPath(source, cache, receiver, content); err != nil {
		return err
	}
	return s.ctrl.EndSession(cache, false)
}

// markOnPathAndForward walks retPath forwarding content, filling the
// local cache of every on-path node it passes.
func (s *HashroutingOnPath) markOnPathAndForward(retPath []network.NodeID, content network.ContentID) error {
	for _, l := range pathLinks(retPath) {
		u, v := l[0], l[1]
		if err := s.ctrl.ForwardContentHop(u, v, true); err != nil {
			return err
		}
		if s.view.HasLocalCache(v) {
			if _, err := s.ctrl.PutContentLocalCache(v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *HashroutingOnPath) deliverMissOnPath(source, cache, receiver network.NodeID, content network.ContentID) error {
	switch s.routing {
	case RoutingSymmetric, RoutingAsymmetric:
		onPath := s.routing == RoutingSymmetric
		if s.routing == RoutingAsymmetric {
			var err error
			onPath, err = pathContains(s.view, source, receiver, cache)
			if err != nil {
				return err
			}
		}
		if onPath {
			p1, err := s.view.ShortestPath(source, cache)
			if err != nil {
				return err
			}
			if err := s.markOnPathAndForward(p1, content); err != nil {
				return err
			}
			if _, err := s.ctrl.PutContent(cache); err != nil {
				return err
			}
			p2, err := s.view.ShortestPath(cache, receiver)
			if err != nil {
				return err
			}
			return s.markOnPathAndForward(p2, content)
		}
		p, err := s.view.ShortestPath(source, receiver)
		if err != nil {
			return err
		}
		return s.markOnPathAndForward(p, content)
	default:
		return simerr.NewStrategyAssertion("HashroutingOnPath", "unsupported routing mode %v", s.routing)
	}
}

// HashroutingClustered runs Hashrouting within each cluster (intra) and
// a simpler on-path strategy across cluster boundaries (inter): a
// request walks the cluster-level shortest path; at each cluster
// boundary it visits that cluster's authoritative cache, and any hit
// is delivered straight back, populating caches per interCache and
// intraRouting on the way.
type HashroutingClustered struct {
	base
	interCache   bool // true = EDGE (cache only at the first visited cluster's authoritative cache), false = LCE (cache at every cache-carrying node on the return path)
	intraRouting RoutingMode
}

// NewHashroutingClustered builds a HashroutingClustered strategy.
// interEdge selects EDGE (true, cache only at the first visited
// cluster's authoritative cache, when it lies on the return path)
// versus LCE (false, cache at every cache-carrying node on the return
// path) for inter-cluster delivery; an intraRouting of
// RoutingAsymmetric further limits caching to nodes on the direct
// source-receiver path, and the other modes add no limit.
func NewHashroutingClustered(view *network.View, ctrl *network.Controller, interEdge bool, intraRouting RoutingMode) *HashroutingClustered {
	return &HashroutingClustered{base: newBase(view, ctrl), interCache: interEdge, intraRouting: intraRouting}
}

func (s *HashroutingClustered) ProcessEvent(time float64, receiver network.NodeID, content network.ContentID, log bool) error {
	source, err := sourceOf(s.view, content)
	if err != nil {
		return err
	}
	path, err := s.view.ShortestPath(receiver, source)
	if err != nil {
		return err
	}
	if _, err := s.ctrl.StartSession(time, receiver, content, log); err != nil {
		return err
	}
	clusterCaches := s.clustersAlong(path, content)
	var servingNode network.NodeID
	var haveServingNode bool
	visited := make([]network.NodeID, 0, len(clusterCaches))
	for _, l := range pathLinks(path) {
		u, v := l[0], l[1]
		if err := s.ctrl.ForwardRequestHop(u, v, true); err != nil {
			return err
		}
		if cache, ok := clusterCaches[v]; ok {
			visited = append(visited, cache)
			hit, err := s.ctrl.GetContent(cache)
			if err != nil {
				return err
			}
			if hit {
				servingNode, haveServingNode = cache, true
				break
			}
		}
	}
	if !haveServingNode {
		if _, err := s.ctrl.GetContent(source); err != nil {
			return err
		}
		servingNode = source
	}
	retPath, err := s.view.ShortestPath(receiver, servingNode)
	if err != nil {
		return err
	}
	retPath = reversed(retPath)
	directPath, err := s.view.ShortestPath(source, receiver)
	if err != nil {
		return err
	}
	for _, l := range pathLinks(retPath) {
		u, v := l[0], l[1]
		if err := s.ctrl.ForwardContentHop(u, v, true); err != nil {
			return err
		}
		if !s.view.HasCache(v) {
			continue
		}
		// inter-cluster reach: EDGE caches only at the first visited
		// cluster's authoritative cache, LCE at every cache-carrying node
		// on the way back.
		if s.interCache && (len(visited) == 0 || v != visited[0]) {
			continue
		}
		// intra-cluster reach: ASYMMETRIC restricts caching to nodes that
		// also lie on the direct source-receiver path; the other modes
		// cache at every node selected above.
		if s.intraRouting == RoutingAsymmetric && !containsNode(directPath, v) {
			continue
		}
		if _, err := s.ctrl.PutContent(v); err != nil {
			return err
		}
	}
	return s.ctrl.EndSession(servingNode, servingNode != source)
}

func containsNode(path []network.NodeID, n network.NodeID) bool {
	for _, p := range path {
		if p == n {
			return true
		}
	}
	return false
}

// clustersAlong returns, for every node of path that is the first node
// visited in its cluster, the cluster's authoritative cache node for
// content (deterministic hash over the cluster's cache-carrying
// members).
func (s *HashroutingClustered) clustersAlong(path []network.NodeID, content network.ContentID) map[network.NodeID]network.NodeID {
	out := make(map[network.NodeID]network.NodeID)
	seen := make(map[int]bool)
	for _, n := range path {
		cluster, ok := s.view.Cluster(n)
		if !ok || seen[cluster] {
			continue
		}
		seen[cluster] = true
		members := s.membersOf(cluster)
		if len(members) == 0 {
			continue
		}
		hr := &hashrouter{cacheNodes: members}
		cache, err := hr.authoritativeCache(content)
		if err != nil {
			continue
		}
		out[n] = cache
	}
	return out
}

func (s *HashroutingClustered) membersOf(cluster int) []network.NodeID {
	var members []network.NodeID
	for _, n := range s.view.CacheNodes() {
		if c, ok := s.view.Cluster(n); ok && c == cluster {
			members = append(members, n)
		}
	}
	return members
}
