package runner

import (
	"context"
	"testing"

	"github.com/icarus-sim/icnsim/internal/collector"
	"github.com/icarus-sim/icnsim/internal/network"
	"github.com/icarus-sim/icnsim/internal/registry"
)

// lineTopology: receiver(0) -- router(1) -- router(2) -- router(3) -- source(4).
func lineTopology() *network.Topology {
	topo := network.NewTopology()
	topo.AddNode(0, network.RoleReceiver)
	topo.AddNode(1, network.RoleRouter)
	topo.AddNode(2, network.RoleRouter)
	topo.AddNode(3, network.RoleRouter)
	topo.AddNode(4, network.RoleSource)
	topo.SetCacheSize(1, 4)
	topo.SetCacheSize(2, 4)
	topo.SetCacheSize(3, 4)
	topo.SetSourceContents(4, []network.ContentID{100, 200, 300})
	topo.AddEdge(0, 1, 1, network.LinkInternal)
	topo.AddEdge(1, 2, 1, network.LinkInternal)
	topo.AddEdge(2, 3, 1, network.LinkInternal)
	topo.AddEdge(3, 4, 1, network.LinkExternal)
	return topo
}

func TestRunReportsHitOnSecondRequestUnderLCE(t *testing.T) {
	reg := registry.New()
	r := New(reg, nil)

	events := NewSliceEventSource([]Event{
		{Time: 0, Receiver: 0, Content: 100, Log: true},
		{Time: 1, Receiver: 0, Content: 100, Log: true},
	})
	spec := ExperimentSpec{
		Name:        "lce-line",
		Topology:    lineTopology(),
		CachePolicy: "LRU",
		Events:      events,
		Strategy:    "LCE",
		Collectors: []CollectorSpec{
			{Name: "CACHE_HIT_RATIO"},
		},
	}

	res := r.Run(context.Background(), spec)
	if res.Err != nil {
		t.Fatalf("Run: %v", res.Err)
	}
	got, ok := res.Metrics["CACHE_HIT_RATIO"].(collector.CacheHitRatioResults)
	if !ok {
		t.Fatalf("Metrics[CACHE_HIT_RATIO] = %#v, want CacheHitRatioResults", res.Metrics["CACHE_HIT_RATIO"])
	}
	if got.Sessions != 2 {
		t.Errorf("Sessions = %d, want 2", got.Sessions)
	}
	if got.CacheHits != 1 {
		t.Errorf("CacheHits = %d, want 1 (first request is a miss, second a hit)", got.CacheHits)
	}
	if got.ServerHits != 1 {
		t.Errorf("ServerHits = %d, want 1", got.ServerHits)
	}
}

func TestRunFailsExperimentOnUnknownContent(t *testing.T) {
	reg := registry.New()
	r := New(reg, nil)

	events := NewSliceEventSource([]Event{
		{Time: 0, Receiver: 0, Content: 999, Log: true},
	})
	spec := ExperimentSpec{
		Name:        "no-source",
		Topology:    lineTopology(),
		CachePolicy: "LRU",
		Events:      events,
		Strategy:    "LCE",
	}

	res := r.Run(context.Background(), spec)
	if res.Err == nil {
		t.Fatal("expected a TopologyInconsistency for a content with no source")
	}
}

func TestRunFailsExperimentOnUnknownCachePolicy(t *testing.T) {
	reg := registry.New()
	r := New(reg, nil)

	spec := ExperimentSpec{
		Name:        "bad-policy",
		Topology:    lineTopology(),
		CachePolicy: "DOES_NOT_EXIST",
		Events:      NewSliceEventSource(nil),
		Strategy:    "LCE",
	}

	res := r.Run(context.Background(), spec)
	if res.Err == nil {
		t.Fatal("expected an error for an unregistered cache policy")
	}
}

func TestRunSweepRunsEveryExperimentIndependently(t *testing.T) {
	reg := registry.New()
	r := New(reg, nil)

	specs := []ExperimentSpec{
		{
			Name:        "ok",
			Topology:    lineTopology(),
			CachePolicy: "LRU",
			Events: NewSliceEventSource([]Event{
				{Time: 0, Receiver: 0, Content: 100, Log: true},
			}),
			Strategy:   "LCE",
			Collectors: []CollectorSpec{{Name: "CACHE_HIT_RATIO"}},
		},
		{
			Name:        "bad",
			Topology:    lineTopology(),
			CachePolicy: "DOES_NOT_EXIST",
			Events:      NewSliceEventSource(nil),
			Strategy:    "LCE",
		},
	}

	results := r.RunSweep(context.Background(), specs, SweepOptions{Concurrency: 2})
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("results[0].Err = %v, want nil", results[0].Err)
	}
	if results[1].Err == nil {
		t.Errorf("results[1].Err = nil, want an error for the bad policy")
	}
}
