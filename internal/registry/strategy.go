package registry

import (
	"encoding/json"
	"fmt"

	"github.com/icarus-sim/icnsim/internal/cachepolicy"
	"github.com/icarus-sim/icnsim/internal/network"
	"github.com/icarus-sim/icnsim/internal/strategy"
)

func registerBuiltinStrategies(r *Registry) {
	r.RegisterStrategy("NO_CACHE", func(view *network.View, ctrl *network.Controller, _ json.RawMessage) (strategy.Strategy, error) {
		return strategy.NewNoCache(view, ctrl), nil
	})
	r.RegisterStrategy("EDGE", func(view *network.View, ctrl *network.Controller, _ json.RawMessage) (strategy.Strategy, error) {
		return strategy.NewEdge(view, ctrl), nil
	})
	r.RegisterStrategy("LCE", func(view *network.View, ctrl *network.Controller, _ json.RawMessage) (strategy.Strategy, error) {
		return strategy.NewLeaveCopyEverywhere(view, ctrl), nil
	})
	r.RegisterStrategy("LCD", func(view *network.View, ctrl *network.Controller, _ json.RawMessage) (strategy.Strategy, error) {
		return strategy.NewLeaveCopyDown(view, ctrl), nil
	})

	type probCacheParams struct {
		TTw float64 `json:"t_tw"`
	}
	r.RegisterStrategy("PROB_CACHE", func(view *network.View, ctrl *network.Controller, params json.RawMessage) (strategy.Strategy, error) {
		p := probCacheParams{TTw: 10}
		if len(params) > 0 {
			if err := json.Unmarshal(params, &p); err != nil {
				return nil, fmt.Errorf("registry: PROB_CACHE params: %w", err)
			}
		}
		return strategy.NewProbCache(view, ctrl, p.TTw), nil
	})

	type cl4mParams struct {
		EgoBetweenness bool `json:"ego_betweenness"`
	}
	r.RegisterStrategy("CL4M", func(view *network.View, ctrl *network.Controller, params json.RawMessage) (strategy.Strategy, error) {
		var p cl4mParams
		if len(params) > 0 {
			if err := json.Unmarshal(params, &p); err != nil {
				return nil, fmt.Errorf("registry: CL4M params: %w", err)
			}
		}
		var betweenness map[network.NodeID]float64
		if p.EgoBetweenness {
			betweenness = strategy.EgoBetweenness(view.Topology())
		} else {
			betweenness = strategy.Betweenness(view.Topology())
		}
		return strategy.NewCacheLessForMore(view, ctrl, betweenness), nil
	})

	type bernoulliParams struct {
		P float64 `json:"p"`
	}
	r.RegisterStrategy("RAND_BERNOULLI", func(view *network.View, ctrl *network.Controller, params json.RawMessage) (strategy.Strategy, error) {
		var p bernoulliParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("registry: RAND_BERNOULLI params: %w", err)
		}
		return strategy.NewRandomBernoulli(view, ctrl, p.P), nil
	})
	r.RegisterStrategy("RAND_CHOICE", func(view *network.View, ctrl *network.Controller, _ json.RawMessage) (strategy.Strategy, error) {
		return strategy.NewRandomChoice(view, ctrl), nil
	})

	type nrrParams struct {
		Metacaching string `json:"metacaching"`
	}
	r.RegisterStrategy("NRR", func(view *network.View, ctrl *network.Controller, params json.RawMessage) (strategy.Strategy, error) {
		p := nrrParams{Metacaching: "LCE"}
		if len(params) > 0 {
			if err := json.Unmarshal(params, &p); err != nil {
				return nil, fmt.Errorf("registry: NRR params: %w", err)
			}
		}
		meta, err := parseMetacaching(p.Metacaching)
		if err != nil {
			return nil, err
		}
		return strategy.NewNearestReplicaRouting(view, ctrl, meta), nil
	})

	type hashroutingParams struct {
		Routing    string  `json:"routing"`
		MaxStretch float64 `json:"max_stretch"`
	}
	r.RegisterStrategy("HASHROUTING", func(view *network.View, ctrl *network.Controller, params json.RawMessage) (strategy.Strategy, error) {
		p := hashroutingParams{MaxStretch: 1.0}
		if len(params) > 0 {
			if err := json.Unmarshal(params, &p); err != nil {
				return nil, fmt.Errorf("registry: HASHROUTING params: %w", err)
			}
		}
		mode, err := parseRoutingMode(p.Routing)
		if err != nil {
			return nil, err
		}
		if mode == strategy.RoutingHybridAM {
			return strategy.NewHashroutingHybridAM(view, ctrl, p.MaxStretch), nil
		}
		return strategy.NewHashrouting(view, ctrl, mode), nil
	})

	type hashroutingRatioParams struct {
		Routing string  `json:"routing"`
		Ratio   float64 `json:"ratio"`
	}
	r.RegisterStrategy("HASHROUTING_EDGE", func(view *network.View, ctrl *network.Controller, params json.RawMessage) (strategy.Strategy, error) {
		var p hashroutingRatioParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("registry: HASHROUTING_EDGE params: %w", err)
		}
		mode, err := parseRoutingMode(p.Routing)
		if err != nil {
			return nil, err
		}
		return strategy.NewHashroutingEdge(view, ctrl, mode, p.Ratio, defaultLocalCacheFactory)
	})
	r.RegisterStrategy("HASHROUTING_ON_PATH", func(view *network.View, ctrl *network.Controller, params json.RawMessage) (strategy.Strategy, error) {
		var p hashroutingRatioParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("registry: HASHROUTING_ON_PATH params: %w", err)
		}
		mode, err := parseRoutingMode(p.Routing)
		if err != nil {
			return nil, err
		}
		return strategy.NewHashroutingOnPath(view, ctrl, mode, p.Ratio, defaultLocalCacheFactory)
	})

	type hashroutingClusteredParams struct {
		InterEdge    bool   `json:"inter_edge"`
		IntraRouting string `json:"intra_routing"`
	}
	r.RegisterStrategy("HASHROUTING_CLUSTERED", func(view *network.View, ctrl *network.Controller, params json.RawMessage) (strategy.Strategy, error) {
		var p hashroutingClusteredParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("registry: HASHROUTING_CLUSTERED params: %w", err)
		}
		mode, err := parseRoutingMode(p.IntraRouting)
		if err != nil {
			return nil, err
		}
		return strategy.NewHashroutingClustered(view, ctrl, p.InterEdge, mode), nil
	})
}

func parseMetacaching(name string) (strategy.Metacaching, error) {
	switch name {
	case "", "LCE":
		return strategy.MetacachingLCE, nil
	case "LCD":
		return strategy.MetacachingLCD, nil
	default:
		return 0, fmt.Errorf("registry: unknown metacaching %q", name)
	}
}

func parseRoutingMode(name string) (strategy.RoutingMode, error) {
	switch name {
	case "", "SYMM":
		return strategy.RoutingSymmetric, nil
	case "ASYMM":
		return strategy.RoutingAsymmetric, nil
	case "MULTICAST":
		return strategy.RoutingMulticast, nil
	case "HYBRID_AM":
		return strategy.RoutingHybridAM, nil
	case "HYBRID_SM":
		return strategy.RoutingHybridSM, nil
	default:
		return 0, fmt.Errorf("registry: unknown routing mode %q", name)
	}
}

// defaultLocalCacheFactory builds the uncoordinated local caches that
// HashroutingEdge/HashroutingOnPath reserve, using plain LRU: the
// cluster/edge proxy's own cache isn't itself subject to per-node
// policy configuration in spec.md §6, only its capacity ratio is.
func defaultLocalCacheFactory(_ network.NodeID, capacity int) cachepolicy.Cache[network.ContentID] {
	return cachepolicy.NewLRUCache[network.ContentID](capacity)
}
