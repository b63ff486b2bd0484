package strategy

import (
	"math"
	"math/rand"

	"github.com/icarus-sim/icnsim/internal/network"
	"github.com/icarus-sim/icnsim/internal/simerr"
)

func sourceOf(view *network.View, content network.ContentID) (network.NodeID, error) {
	src, ok := view.ContentSource(content)
	if !ok {
		return 0, simerr.NewTopologyInconsistency("no source registered for content %v", content)
	}
	return src, nil
}

// NoCache forwards every request straight to the origin: no caching
// anywhere in the network.
type NoCache struct{ base }

func NewNoCache(view *network.View, ctrl *network.Controller) *NoCache {
	return &NoCache{newBase(view, ctrl)}
}

func (s *NoCache) ProcessEvent(time float64, receiver network.NodeID, content network.ContentID, log bool) error {
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
	if err := s.ctrl.ForwardRequestPath(path, true); err != nil {
		return err
	}
	if _, err := s.ctrl.GetContent(source); err != nil {
		return err
	}
	if err := s.ctrl.ForwardContentPath(reversed(path), true); err != nil {
		return err
	}
	return s.ctrl.EndSession(source, false)
}

// Edge queries only the first cache on the path (the "edge" node) and
// otherwise forwards straight to the source.
type Edge struct{ base }

func NewEdge(view *network.View, ctrl *network.Controller) *Edge {
	return &Edge{newBase(view, ctrl)}
}

func (s *Edge) ProcessEvent(time float64, receiver network.NodeID, content network.ContentID, log bool) error {
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
	var edgeCache network.NodeID
	var haveEdgeCache bool
	var servingNode network.NodeID
	var haveServingNode bool
	for _, l := range pathLinks(path) {
		u, v := l[0], l[1]
		if err := s.ctrl.ForwardRequestHop(u, v, true); err != nil {
			return err
		}
		if s.view.HasCache(v) {
			edgeCache, haveEdgeCache = v, true
			hit, err := s.ctrl.GetContent(v)
			if err != nil {
				return err
			}
			if hit {
				servingNode = v
			} else {
				restPath, err := s.view.ShortestPath(v, source)
				if err != nil {
					return err
				}
				if err := s.ctrl.ForwardRequestPath(restPath, true); err != nil {
					return err
				}
				if _, err := s.ctrl.GetContent(source); err != nil {
					return err
				}
				servingNode = source
			}
			haveServingNode = true
			break
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
	if err := s.ctrl.ForwardContentPath(reversed(retPath), true); err != nil {
		return err
	}
	if servingNode == source && haveEdgeCache {
		if _, err := s.ctrl.PutContent(edgeCache); err != nil {
			return err
		}
	}
	return s.ctrl.EndSession(servingNode, servingNode != source)
}

// LeaveCopyEverywhere replicates content at every cache on the return
// path (LCE).
type LeaveCopyEverywhere struct{ base }

func NewLeaveCopyEverywhere(view *network.View, ctrl *network.Controller) *LeaveCopyEverywhere {
	return &LeaveCopyEverywhere{newBase(view, ctrl)}
}

func (s *LeaveCopyEverywhere) ProcessEvent(time float64, receiver network.NodeID, content network.ContentID, log bool) error {
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
	servingNode, err := s.routeRequestOnPath(path)
	if err != nil {
		return err
	}
	retPath, err := s.view.ShortestPath(receiver, servingNode)
	if err != nil {
		return err
	}
	for _, l := range pathLinks(reversed(retPath)) {
		u, v := l[0], l[1]
		if err := s.ctrl.ForwardContentHop(u, v, true); err != nil {
			return err
		}
		if s.view.HasCache(v) {
			if _, err := s.ctrl.PutContent(v); err != nil {
				return err
			}
		}
	}
	return s.ctrl.EndSession(servingNode, servingNode != source)
}

// routeRequestOnPath walks path, probing every cache it passes through,
// and returns the node that ultimately served the content (the first
// cache hit, or the last node of path -- the source -- on a full miss).
func (s *base) routeRequestOnPath(path []network.NodeID) (network.NodeID, error) {
	for _, l := range pathLinks(path) {
		u, v := l[0], l[1]
		if err := s.ctrl.ForwardRequestHop(u, v, true); err != nil {
			return 0, err
		}
		if s.view.HasCache(v) {
			hit, err := s.ctrl.GetContent(v)
			if err != nil {
				return 0, err
			}
			if hit {
				return v, nil
			}
		}
	}
	source := path[len(path)-1]
	if _, err := s.ctrl.GetContent(source); err != nil {
		return 0, err
	}
	return source, nil
}

// LeaveCopyDown replicates content only at the first cache downstream
// (towards the receiver) of the node that served the content (LCD).
type LeaveCopyDown struct{ base }

func NewLeaveCopyDown(view *network.View, ctrl *network.Controller) *LeaveCopyDown {
	return &LeaveCopyDown{newBase(view, ctrl)}
}

func (s *LeaveCopyDown) ProcessEvent(time float64, receiver network.NodeID, content network.ContentID, log bool) error {
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
	servingNode, err := s.routeRequestOnPath(path)
	if err != nil {
		return err
	}
	retPath, err := s.view.ShortestPath(receiver, servingNode)
	if err != nil {
		return err
	}
	copied := false
	for _, l := range pathLinks(reversed(retPath)) {
		u, v := l[0], l[1]
		if err := s.ctrl.ForwardContentHop(u, v, true); err != nil {
			return err
		}
		if !copied && v != receiver && s.view.HasCache(v) {
			if _, err := s.ctrl.PutContent(v); err != nil {
				return err
			}
			copied = true
		}
	}
	return s.ctrl.EndSession(servingNode, servingNode != source)
}

// ProbCache implements the ProbCache heuristic (Psaras et al., ACM
// SIGCOMM ICN'12): each cache on the return path stores the content
// with a probability that rewards caches deeper in the network and
// closer to the point where the content was found.
type ProbCache struct {
	base
	tTw float64
	rng *rand.Rand
}

// NewProbCache builds a ProbCache strategy. tTw is the cache-time
// discount window (10, matching the reference implementation's
// default).
func NewProbCache(view *network.View, ctrl *network.Controller, tTw float64) *ProbCache {
	return &ProbCache{base: newBase(view, ctrl), tTw: tTw, rng: rand.New(rand.NewSource(rand.Int63()))}
}

func (s *ProbCache) ProcessEvent(time float64, receiver network.NodeID, content network.ContentID, log bool) error {
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
	servingNode, err := s.routeRequestOnPath(path)
	if err != nil {
		return err
	}
	retPath, err := s.view.ShortestPath(receiver, servingNode)
	if err != nil {
		return err
	}
	retPath = reversed(retPath)
	var c float64
	for _, v := range retPath {
		if s.view.HasCache(v) {
			c++
		}
	}
	var x float64
	for i, l := range pathLinks(retPath) {
		u, v := l[0], l[1]
		if s.view.HasCache(v) {
			x++
		}
		if err := s.ctrl.ForwardContentHop(u, v, true); err != nil {
			return err
		}
		if v != receiver && s.view.HasCache(v) {
			size := float64(s.view.Topology().CacheSize(v))
			if size > 0 && c > 0 {
				var capacitySum float64
				for _, n := range retPath[i+1:] {
					if s.view.HasCache(n) {
						capacitySum += float64(s.view.Topology().CacheSize(n))
					}
				}
				prob := capacitySum / (s.tTw * size) * math.Pow(x/c, c)
				if s.rng.Float64() < prob {
					if _, err := s.ctrl.PutContent(v); err != nil {
						return err
					}
				}
			}
		}
	}
	return s.ctrl.EndSession(servingNode, servingNode != source)
}

// CacheLessForMore (CL4M) caches content at the node with the highest
// betweenness centrality along the delivery path (W. Chai et al., IFIP
// NETWORKING '12).
type CacheLessForMore struct {
	base
	betweenness map[network.NodeID]float64
}

// NewCacheLessForMore builds a CL4M strategy using precomputed
// betweenness centrality scores (see internal/strategy.Betweenness).
func NewCacheLessForMore(view *network.View, ctrl *network.Controller, betweenness map[network.NodeID]float64) *CacheLessForMore {
	return &CacheLessForMore{base: newBase(view, ctrl), betweenness: betweenness}
}

func (s *CacheLessForMore) ProcessEvent(time float64, receiver network.NodeID, content network.ContentID, log bool) error {
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
	servingNode, err := s.routeRequestOnPath(path)
	if err != nil {
		return err
	}
	retPath, err := s.view.ShortestPath(receiver, servingNode)
	if err != nil {
		return err
	}
	retPath = reversed(retPath)
	maxBetw := -1.0
	var selected network.NodeID
	var haveSelected bool
	for _, v := range retPath {
		if s.view.HasCache(v) {
			if b := s.betweenness[v]; b >= maxBetw {
				maxBetw = b
				selected = v
				haveSelected = true
			}
		}
	}
	for _, l := range pathLinks(retPath) {
		u, v := l[0], l[1]
		if haveSelected && v == selected {
			if _, err := s.ctrl.PutContent(v); err != nil {
				return err
			}
		}
		if err := s.ctrl.ForwardContentHop(u, v, true); err != nil {
			return err
		}
	}
	return s.ctrl.EndSession(servingNode, servingNode != source)
}

// RandomBernoulli caches content at every cache on the return path
// independently with probability p.
type RandomBernoulli struct {
	base
	p   float64
	rng *rand.Rand
}

func NewRandomBernoulli(view *network.View, ctrl *network.Controller, p float64) *RandomBernoulli {
	return &RandomBernoulli{base: newBase(view, ctrl), p: p, rng: rand.New(rand.NewSource(rand.Int63()))}
}

func (s *RandomBernoulli) ProcessEvent(time float64, receiver network.NodeID, content network.ContentID, log bool) error {
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
	servingNode, err := s.routeRequestOnPath(path)
	if err != nil {
		return err
	}
	retPath, err := s.view.ShortestPath(receiver, servingNode)
	if err != nil {
		return err
	}
	for _, l := range pathLinks(reversed(retPath)) {
		u, v := l[0], l[1]
		if err := s.ctrl.ForwardContentHop(u, v, true); err != nil {
			return err
		}
		if v != receiver && s.view.HasCache(v) && s.rng.Float64() < s.p {
			if _, err := s.ctrl.PutContent(v); err != nil {
				return err
			}
		}
	}
	return s.ctrl.EndSession(servingNode, servingNode != source)
}

// RandomChoice caches content at one cache chosen uniformly at random
// among the caches strictly between the serving node and the receiver
// on the return path; when there is none, nothing is cached.
type RandomChoice struct {
	base
	rng *rand.Rand
}

func NewRandomChoice(view *network.View, ctrl *network.Controller) *RandomChoice {
	return &RandomChoice{base: newBase(view, ctrl), rng: rand.New(rand.NewSource(rand.Int63()))}
}

func (s *RandomChoice) ProcessEvent(time float64, receiver network.NodeID, content network.ContentID, log bool) error {
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
	servingNode, err := s.routeRequestOnPath(path)
	if err != nil {
		return err
	}
	retPath, err := s.view.ShortestPath(receiver, servingNode)
	if err != nil {
		return err
	}
	retPath = reversed(retPath)
	var candidates []network.NodeID
	if len(retPath) > 2 {
		for _, v := range retPath[1 : len(retPath)-1] {
			if s.view.HasCache(v) {
				candidates = append(candidates, v)
			}
		}
	}
	var designated network.NodeID
	var haveDesignated bool
	if len(candidates) > 0 {
		designated = candidates[s.rng.Intn(len(candidates))]
		haveDesignated = true
	}
	for _, l := range pathLinks(retPath) {
		u, v := l[0], l[1]
		if err := s.ctrl.ForwardContentHop(u, v, true); err != nil {
			return err
		}
		if haveDesignated && v == designated {
			if _, err := s.ctrl.PutContent(v); err != nil {
				return err
			}
		}
	}
	return s.ctrl.EndSession(servingNode, servingNode != source)
}
