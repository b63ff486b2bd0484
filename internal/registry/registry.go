// Package registry implements the name->constructor tables spec.md §6
// and §9 call for: an external configuration loader (out of scope)
// drives the runner from string identifiers without the core
// depending on any particular config format. Each table decodes an
// opaque JSON parameter blob only at this boundary, mirroring
// pkg/utils/encoding.go's practice of centralizing (de)serialization
// rather than scattering json.Unmarshal through business logic.
package registry

import (
	"encoding/json"
	"fmt"

	"github.com/icarus-sim/icnsim/internal/cachepolicy"
	"github.com/icarus-sim/icnsim/internal/collector"
	"github.com/icarus-sim/icnsim/internal/network"
	"github.com/icarus-sim/icnsim/internal/strategy"
)

// CachePolicyConstructor builds a Cache of the given capacity from its
// decoded parameter blob. capacity is supplied separately from params
// since it always comes from the topology (§3's cache_size attribute),
// never from per-policy configuration.
type CachePolicyConstructor func(capacity int, params json.RawMessage) (cachepolicy.Cache[network.ContentID], error)

// StrategyConstructor builds a Strategy bound to a View/Controller pair.
type StrategyConstructor func(view *network.View, ctrl *network.Controller, params json.RawMessage) (strategy.Strategy, error)

// CollectorConstructor builds a Collector bound to a View.
type CollectorConstructor func(view *network.View, params json.RawMessage) (collector.Collector, error)

// Registry holds the three component registries the runner consults.
// The zero value is not usable; build one with New, which pre-populates
// every built-in component this module ships.
type Registry struct {
	cachePolicies map[string]CachePolicyConstructor
	strategies    map[string]StrategyConstructor
	collectors    map[string]CollectorConstructor
}

// New builds a Registry with every built-in cache policy, strategy, and
// collector already registered.
func New() *Registry {
	r := &Registry{
		cachePolicies: make(map[string]CachePolicyConstructor),
		strategies:    make(map[string]StrategyConstructor),
		collectors:    make(map[string]CollectorConstructor),
	}
	registerBuiltinCachePolicies(r)
	registerBuiltinStrategies(r)
	registerBuiltinCollectors(r)
	return r
}

// RegisterCachePolicy adds or overwrites the cache policy constructor
// for name.
func (r *Registry) RegisterCachePolicy(name string, ctor CachePolicyConstructor) {
	r.cachePolicies[name] = ctor
}

// CachePolicy looks up and invokes the cache policy constructor
// registered under name.
func (r *Registry) CachePolicy(name string, capacity int, params json.RawMessage) (cachepolicy.Cache[network.ContentID], error) {
	ctor, ok := r.cachePolicies[name]
	if !ok {
		return nil, fmt.Errorf("registry: no cache policy registered under %q", name)
	}
	return ctor(capacity, params)
}

// RegisterStrategy adds or overwrites the strategy constructor for
// name.
func (r *Registry) RegisterStrategy(name string, ctor StrategyConstructor) {
	r.strategies[name] = ctor
}

// Strategy looks up and invokes the strategy constructor registered
// under name.
func (r *Registry) Strategy(name string, view *network.View, ctrl *network.Controller, params json.RawMessage) (strategy.Strategy, error) {
	ctor, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("registry: no strategy registered under %q", name)
	}
	return ctor(view, ctrl, params)
}

// RegisterCollector adds or overwrites the collector constructor for
// name.
func (r *Registry) RegisterCollector(name string, ctor CollectorConstructor) {
	r.collectors[name] = ctor
}

// Collector looks up and invokes the collector constructor registered
// under name.
func (r *Registry) Collector(name string, view *network.View, params json.RawMessage) (collector.Collector, error) {
	ctor, ok := r.collectors[name]
	if !ok {
		return nil, fmt.Errorf("registry: no collector registered under %q", name)
	}
	return ctor(view, params)
}

// CachePolicyNames returns every registered cache policy name.
func (r *Registry) CachePolicyNames() []string { return keys(r.cachePolicies) }

// StrategyNames returns every registered strategy name.
func (r *Registry) StrategyNames() []string { return keys(r.strategies) }

// CollectorNames returns every registered collector name.
func (r *Registry) CollectorNames() []string { return keys(r.collectors) }

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
