package registry

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/icarus-sim/icnsim/internal/cachepolicy"
	"github.com/icarus-sim/icnsim/internal/network"
)

// noopSink discards every event; these tests only assert the
// registry builds working components, not on session traces.
type noopSink struct{}

func (noopSink) StartSession(uuid.UUID, float64, network.NodeID, network.ContentID, bool) {}
func (noopSink) RequestHop(u, v network.NodeID, mainPath bool)                            {}
func (noopSink) CacheHit(v network.NodeID)                                                {}
func (noopSink) ServerHit(v network.NodeID)                                               {}
func (noopSink) ContentHop(u, v network.NodeID, mainPath bool)                            {}
func (noopSink) EndSession(servingNode network.NodeID, hit bool)                          {}

func lineTopology() *network.Topology {
	topo := network.NewTopology()
	topo.AddNode(0, network.RoleReceiver)
	topo.AddNode(1, network.RoleRouter)
	topo.AddNode(2, network.RoleRouter)
	topo.AddNode(3, network.RoleSource)
	topo.SetCacheSize(1, 2)
	topo.SetCacheSize(2, 2)
	topo.SetSourceContents(3, []network.ContentID{100, 200})
	topo.AddEdge(0, 1, 1, network.LinkInternal)
	topo.AddEdge(1, 2, 1, network.LinkInternal)
	topo.AddEdge(2, 3, 1, network.LinkExternal)
	return topo
}

func newModel(t *testing.T, r *Registry, policyName string, params json.RawMessage) (*network.Model, *network.View, *network.Controller) {
	t.Helper()
	m, err := network.NewModel(lineTopology(), func(_ network.NodeID, capacity int) cachepolicy.Cache[network.ContentID] {
		c, err := r.CachePolicy(policyName, capacity, params)
		if err != nil {
			t.Fatalf("CachePolicy(%q): %v", policyName, err)
		}
		return c
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	view := network.NewView(m)
	ctrl := network.NewController(m, noopSink{})
	return m, view, ctrl
}

func TestCachePolicyRegistryBuildsEveryBuiltin(t *testing.T) {
	r := New()
	cases := []struct {
		name   string
		params json.RawMessage
	}{
		{"LRU", nil},
		{"FIFO", nil},
		{"IN_CACHE_LFU", nil},
		{"PERFECT_LFU", nil},
		{"RAND", nil},
		{"CLIMB", nil},
		{"NULL", nil},
		{"SLRU", json.RawMessage(`{"segments": 3}`)},
		{"INSERT_AFTER_K_HITS", json.RawMessage(`{"k": 2, "base": {"policy": "LRU"}}`)},
		{"RANDOM_INSERT", json.RawMessage(`{"p": 0.5, "base": {"policy": "LRU"}}`)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := r.CachePolicy(tc.name, 4, tc.params)
			if err != nil {
				t.Fatalf("CachePolicy(%q) error: %v", tc.name, err)
			}
			if c == nil {
				t.Fatalf("CachePolicy(%q) returned nil", tc.name)
			}
		})
	}
}

func TestCachePolicyRegistryUnknownNameErrors(t *testing.T) {
	r := New()
	if _, err := r.CachePolicy("DOES_NOT_EXIST", 4, nil); err == nil {
		t.Fatal("expected an error for an unregistered cache policy name")
	}
}

func TestInsertAfterKHitsRecursesThroughRegisteredBase(t *testing.T) {
	r := New()
	params := json.RawMessage(`{"k": 1, "base": {"policy": "SLRU", "params": {"segments": 2}}}`)
	c, err := r.CachePolicy("INSERT_AFTER_K_HITS", 4, params)
	if err != nil {
		t.Fatalf("CachePolicy: %v", err)
	}
	if c.Capacity() != 4 {
		t.Errorf("Capacity() = %d, want 4", c.Capacity())
	}
}

func TestStrategyRegistryBuildsEveryBuiltin(t *testing.T) {
	r := New()
	cases := []struct {
		label    string
		strategy string
		params   json.RawMessage
	}{
		{"NO_CACHE", "NO_CACHE", nil},
		{"EDGE", "EDGE", nil},
		{"LCE", "LCE", nil},
		{"LCD", "LCD", nil},
		{"PROB_CACHE", "PROB_CACHE", json.RawMessage(`{"t_tw": 5}`)},
		{"CL4M", "CL4M", json.RawMessage(`{"ego_betweenness": true}`)},
		{"RAND_BERNOULLI", "RAND_BERNOULLI", json.RawMessage(`{"p": 0.3}`)},
		{"RAND_CHOICE", "RAND_CHOICE", nil},
		{"NRR", "NRR", json.RawMessage(`{"metacaching": "LCD"}`)},
		{"HASHROUTING", "HASHROUTING", json.RawMessage(`{"routing": "SYMM"}`)},
		{"HASHROUTING hybrid-am", "HASHROUTING", json.RawMessage(`{"routing": "HYBRID_AM", "max_stretch": 2}`)},
		{"HASHROUTING hybrid-sm", "HASHROUTING", json.RawMessage(`{"routing": "HYBRID_SM"}`)},
		{"HASHROUTING_EDGE", "HASHROUTING_EDGE", json.RawMessage(`{"routing": "SYMM", "ratio": 0.5}`)},
		{"HASHROUTING_ON_PATH", "HASHROUTING_ON_PATH", json.RawMessage(`{"routing": "ASYMM", "ratio": 0.5}`)},
		{"HASHROUTING_CLUSTERED", "HASHROUTING_CLUSTERED", json.RawMessage(`{"inter_edge": true, "intra_routing": "SYMM"}`)},
	}
	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			_, view, ctrl := newModel(t, r, "LRU", nil)
			s, err := r.Strategy(tc.strategy, view, ctrl, tc.params)
			if err != nil {
				t.Fatalf("Strategy(%q) error: %v", tc.strategy, err)
			}
			if s == nil {
				t.Fatalf("Strategy(%q) returned nil", tc.strategy)
			}
		})
	}
}

func TestStrategyRegistryRejectsUnknownRoutingMode(t *testing.T) {
	r := New()
	_, view, ctrl := newModel(t, r, "LRU", nil)
	if _, err := r.Strategy("HASHROUTING", view, ctrl, json.RawMessage(`{"routing": "BOGUS"}`)); err == nil {
		t.Fatal("expected an error for an unknown routing mode")
	}
}

func TestStrategyRegistryUnknownNameErrors(t *testing.T) {
	r := New()
	_, view, ctrl := newModel(t, r, "LRU", nil)
	if _, err := r.Strategy("DOES_NOT_EXIST", view, ctrl, nil); err == nil {
		t.Fatal("expected an error for an unregistered strategy name")
	}
}

func TestCollectorRegistryBuildsEveryBuiltin(t *testing.T) {
	r := New()
	cases := []struct {
		name   string
		params json.RawMessage
	}{
		{"CACHE_HIT_RATIO", nil},
		{"LINK_LOAD", json.RawMessage(`{"req_size": 1, "content_size": 1000}`)},
		{"LATENCY", json.RawMessage(`{"include_side_paths": true}`)},
		{"PATH_STRETCH", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, view, _ := newModel(t, r, "LRU", nil)
			c, err := r.Collector(tc.name, view, tc.params)
			if err != nil {
				t.Fatalf("Collector(%q) error: %v", tc.name, err)
			}
			if c == nil {
				t.Fatalf("Collector(%q) returned nil", tc.name)
			}
		})
	}
}

func TestCollectorRegistryUnknownNameErrors(t *testing.T) {
	r := New()
	_, view, _ := newModel(t, r, "LRU", nil)
	if _, err := r.Collector("DOES_NOT_EXIST", view, nil); err == nil {
		t.Fatal("expected an error for an unregistered collector name")
	}
}

func TestNamesReflectBuiltinCounts(t *testing.T) {
	r := New()
	if n := len(r.CachePolicyNames()); n != 10 {
		t.Errorf("len(CachePolicyNames()) = %d, want 10", n)
	}
	if n := len(r.StrategyNames()); n != 13 {
		t.Errorf("len(StrategyNames()) = %d, want 13", n)
	}
	if n := len(r.CollectorNames()); n != 4 {
		t.Errorf("len(CollectorNames()) = %d, want 4", n)
	}
}
