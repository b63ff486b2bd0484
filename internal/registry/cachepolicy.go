package registry

import (
	"encoding/json"
	"fmt"

	"github.com/icarus-sim/icnsim/internal/cachepolicy"
	"github.com/icarus-sim/icnsim/internal/network"
)

func registerBuiltinCachePolicies(r *Registry) {
	r.RegisterCachePolicy("LRU", func(capacity int, _ json.RawMessage) (cachepolicy.Cache[network.ContentID], error) {
		return cachepolicy.NewLRUCache[network.ContentID](capacity), nil
	})
	r.RegisterCachePolicy("FIFO", func(capacity int, _ json.RawMessage) (cachepolicy.Cache[network.ContentID], error) {
		return cachepolicy.NewFIFOCache[network.ContentID](capacity), nil
	})
	r.RegisterCachePolicy("IN_CACHE_LFU", func(capacity int, _ json.RawMessage) (cachepolicy.Cache[network.ContentID], error) {
		return cachepolicy.NewInCacheLFUCache[network.ContentID](capacity), nil
	})
	r.RegisterCachePolicy("PERFECT_LFU", func(capacity int, _ json.RawMessage) (cachepolicy.Cache[network.ContentID], error) {
		return cachepolicy.NewPerfectLFUCache[network.ContentID](capacity), nil
	})
	r.RegisterCachePolicy("RAND", func(capacity int, _ json.RawMessage) (cachepolicy.Cache[network.ContentID], error) {
		return cachepolicy.NewRandEvictionCache[network.ContentID](capacity), nil
	})
	r.RegisterCachePolicy("CLIMB", func(capacity int, _ json.RawMessage) (cachepolicy.Cache[network.ContentID], error) {
		return cachepolicy.NewClimbCache[network.ContentID](capacity), nil
	})
	r.RegisterCachePolicy("NULL", func(_ int, _ json.RawMessage) (cachepolicy.Cache[network.ContentID], error) {
		return cachepolicy.NewNullCache[network.ContentID](), nil
	})

	type slruParams struct {
		Segments int `json:"segments"`
	}
	r.RegisterCachePolicy("SLRU", func(capacity int, params json.RawMessage) (cachepolicy.Cache[network.ContentID], error) {
		p := slruParams{Segments: 2}
		if len(params) > 0 {
			if err := json.Unmarshal(params, &p); err != nil {
				return nil, fmt.Errorf("registry: SLRU params: %w", err)
			}
		}
		return cachepolicy.NewSLRUCache[network.ContentID](capacity, p.Segments), nil
	})

	type insertAfterKParams struct {
		K      int       `json:"k"`
		Memory int       `json:"memory"`
		Base   subPolicy `json:"base"`
	}
	r.RegisterCachePolicy("INSERT_AFTER_K_HITS", func(capacity int, params json.RawMessage) (cachepolicy.Cache[network.ContentID], error) {
		var p insertAfterKParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("registry: INSERT_AFTER_K_HITS params: %w", err)
		}
		base, err := r.resolveSubPolicy(p.Base, capacity)
		if err != nil {
			return nil, err
		}
		return cachepolicy.NewInsertAfterKHitsDecorator[network.ContentID](base, p.K, p.Memory), nil
	})

	type randomInsertParams struct {
		P    float64   `json:"p"`
		Seed int64     `json:"seed"`
		Base subPolicy `json:"base"`
	}
	r.RegisterCachePolicy("RANDOM_INSERT", func(capacity int, params json.RawMessage) (cachepolicy.Cache[network.ContentID], error) {
		var p randomInsertParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("registry: RANDOM_INSERT params: %w", err)
		}
		base, err := r.resolveSubPolicy(p.Base, capacity)
		if err != nil {
			return nil, err
		}
		return cachepolicy.NewRandomInsertDecorator[network.ContentID](base, p.P, p.Seed), nil
	})

	// ArrayCache/TreeCache/PathCache/ShardedCache (internal/cachesys) are
	// deliberately not registered here. ArrayCache and TreeCache are
	// read-through composites with their own Get-then-Put contract (a
	// bare Put without a preceding Get is a PreconditionFailure), and
	// PathCache has no Capacity or Remove and a Put without a return
	// value, so none of the three is a drop-in Cache[K]. ShardedCache
	// does implement Cache[K] but is not registered either. All four are
	// built directly by a caller, not looked up by name.
}

// subPolicy names a registered cache policy plus its own nested
// parameter blob, letting a decorator (INSERT_AFTER_K_HITS,
// RANDOM_INSERT) describe its base cache recursively through the same
// registry.
type subPolicy struct {
	Policy string          `json:"policy"`
	Params json.RawMessage `json:"params"`
}

func (r *Registry) resolveSubPolicy(p subPolicy, capacity int) (cachepolicy.Cache[network.ContentID], error) {
	if p.Policy == "" {
		return nil, fmt.Errorf("registry: sub-policy name is required")
	}
	return r.CachePolicy(p.Policy, capacity, p.Params)
}
