package network

import (
	"testing"

	"github.com/google/uuid"
	"github.com/icarus-sim/icnsim/internal/cachepolicy"
)

func lineTopology() *Topology {
	// receiver(0) -- router(1) -- router(2) -- source(3)
	topo := NewTopology()
	topo.AddNode(0, RoleReceiver)
	topo.AddNode(1, RoleRouter)
	topo.AddNode(2, RoleRouter)
	topo.AddNode(3, RoleSource)
	topo.SetCacheSize(1, 2)
	topo.SetCacheSize(2, 2)
	topo.SetSourceContents(3, []ContentID{100, 200})
	topo.AddEdge(0, 1, 1, LinkInternal)
	topo.AddEdge(1, 2, 1, LinkInternal)
	topo.AddEdge(2, 3, 1, LinkExternal)
	return topo
}

func lruFactory() CacheFactory {
	return func(_ NodeID, capacity int) cachepolicy.Cache[ContentID] {
		return cachepolicy.NewLRUCache[ContentID](capacity)
	}
}

func TestTopologyShortestPath(t *testing.T) {
	topo := lineTopology()
	sp := ComputeShortestPaths(topo)
	path, err := sp.Path(0, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []NodeID{0, 1, 2, 3}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path = %v, want %v", path, want)
		}
	}
	if w := sp.Weight(0, 3); w != 3 {
		t.Errorf("weight = %v, want 3", w)
	}
}

func TestTopologyNoPathIsInconsistency(t *testing.T) {
	topo := NewTopology()
	topo.AddNode(0, RoleReceiver)
	topo.AddNode(1, RoleSource)
	sp := ComputeShortestPaths(topo)
	if _, err := sp.Path(0, 1); err == nil {
		t.Fatal("expected an error for disconnected nodes")
	}
}

func TestModelContentSourceAndConflict(t *testing.T) {
	topo := lineTopology()
	m, err := NewModel(topo, lruFactory())
	if err != nil {
		t.Fatal(err)
	}
	src, ok := m.ContentSource(100)
	if !ok || src != 3 {
		t.Errorf("ContentSource(100) = %v, %v; want 3, true", src, ok)
	}

	topo2 := lineTopology()
	topo2.AddNode(4, RoleSource)
	topo2.SetSourceContents(4, []ContentID{100})
	topo2.AddEdge(3, 4, 1, LinkInternal)
	if _, err := NewModel(topo2, lruFactory()); err == nil {
		t.Fatal("expected TopologyInconsistency for duplicate content source")
	}
}

func TestControllerSessionLifecycle(t *testing.T) {
	topo := lineTopology()
	m, err := NewModel(topo, lruFactory())
	if err != nil {
		t.Fatal(err)
	}
	sink := &recordingSink{}
	ctrl := NewController(m, sink)

	if _, err := ctrl.StartSession(0, 0, 100, false); err != nil {
		t.Fatal(err)
	}
	if _, err := ctrl.StartSession(0, 0, 100, false); err == nil {
		t.Fatal("expected StrategyAssertion for nested session")
	}

	if err := ctrl.ForwardRequestPath([]NodeID{0, 1, 2, 3}, true); err != nil {
		t.Fatal(err)
	}
	hit, err := ctrl.GetContent(1)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Fatal("expected a miss at an empty cache")
	}
	hit, err = ctrl.GetContent(3)
	if err != nil || !hit {
		t.Fatalf("expected a server hit at the origin, got %v, %v", hit, err)
	}
	if _, err := ctrl.PutContent(2); err != nil {
		t.Fatal(err)
	}
	if _, err := ctrl.PutContent(1); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.ForwardContentPath([]NodeID{3, 2, 1, 0}, true); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.EndSession(3, true); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.EndSession(3, true); err == nil {
		t.Fatal("expected StrategyAssertion for ending an already-closed session")
	}

	view := NewView(m)
	if !view.CacheLookup(1, 100) {
		t.Error("expected content 100 cached at node 1 after PutContent")
	}
	if sink.serverHits != 1 || sink.endSessions != 1 {
		t.Errorf("sink counts = %+v", sink)
	}
}

type recordingSink struct {
	serverHits  int
	cacheHits   int
	endSessions int
}

func (r *recordingSink) StartSession(sessionID uuid.UUID, time float64, receiver NodeID, content ContentID, log bool) {
}
func (r *recordingSink) RequestHop(u, v NodeID, mainPath bool)                     {}
func (r *recordingSink) CacheHit(v NodeID)                                         { r.cacheHits++ }
func (r *recordingSink) ServerHit(v NodeID)                                        { r.serverHits++ }
func (r *recordingSink) ContentHop(u, v NodeID, mainPath bool)                     {}
func (r *recordingSink) EndSession(servingNode NodeID, hit bool)                   { r.endSessions++ }
