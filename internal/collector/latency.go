package collector

import (
	"sync"

	"github.com/google/uuid"
	"github.com/icarus-sim/icnsim/internal/network"
)

// LatencyCollector accumulates the sum of link delays for hops in a
// session -- main-path hops only unless includeSidePaths is set -- and
// reports the mean over sessions.
type LatencyCollector struct {
	view             *network.View
	includeSidePaths bool

	mu       sync.Mutex
	curSum   float64
	totalSum float64
	sessions int64
}

// NewLatencyCollector builds a LatencyCollector over view.
func NewLatencyCollector(view *network.View, includeSidePaths bool) *LatencyCollector {
	return &LatencyCollector{view: view, includeSidePaths: includeSidePaths}
}

func (c *LatencyCollector) StartSession(_ uuid.UUID, _ float64, _ network.NodeID, _ network.ContentID, _ bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.curSum = 0
}

func (c *LatencyCollector) accumulate(u, v network.NodeID, mainPath bool) {
	if !mainPath && !c.includeSidePaths {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.curSum += c.view.LinkDelay(u, v)
}

func (c *LatencyCollector) RequestHop(u, v network.NodeID, mainPath bool) { c.accumulate(u, v, mainPath) }
func (c *LatencyCollector) ContentHop(u, v network.NodeID, mainPath bool) { c.accumulate(u, v, mainPath) }
func (c *LatencyCollector) CacheHit(network.NodeID)                      {}
func (c *LatencyCollector) ServerHit(network.NodeID)                     {}

func (c *LatencyCollector) EndSession(network.NodeID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalSum += c.curSum
	c.sessions++
}

// Mean returns the mean per-session latency accumulated so far.
func (c *LatencyCollector) Mean() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessions == 0 {
		return 0
	}
	return c.totalSum / float64(c.sessions)
}
