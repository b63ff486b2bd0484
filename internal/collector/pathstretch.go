package collector

import (
	"sync"

	"github.com/google/uuid"
	"github.com/icarus-sim/icnsim/internal/network"
)

// PathStretchCollector compares, at session_end, the length of the
// main-path content delivery to the length of the shortest path from
// the receiver to the content's source, and reports the mean stretch.
type PathStretchCollector struct {
	view *network.View

	mu           sync.Mutex
	curReceiver  network.NodeID
	curContent   network.ContentID
	curActualLen int
	totalStretch float64
	sessions     int64
}

// NewPathStretchCollector builds a PathStretchCollector over view.
func NewPathStretchCollector(view *network.View) *PathStretchCollector {
	return &PathStretchCollector{view: view}
}

func (c *PathStretchCollector) StartSession(_ uuid.UUID, _ float64, receiver network.NodeID, content network.ContentID, _ bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.curReceiver = receiver
	c.curContent = content
	c.curActualLen = 0
}

func (c *PathStretchCollector) RequestHop(_, _ network.NodeID, _ bool) {}

func (c *PathStretchCollector) ContentHop(_, _ network.NodeID, mainPath bool) {
	if !mainPath {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.curActualLen++
}

func (c *PathStretchCollector) CacheHit(network.NodeID)  {}
func (c *PathStretchCollector) ServerHit(network.NodeID) {}

func (c *PathStretchCollector) EndSession(_ network.NodeID, _ bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	source, ok := c.view.ContentSource(c.curContent)
	if !ok {
		return
	}
	optimal, err := c.view.ShortestPath(c.curReceiver, source)
	if err != nil || len(optimal) == 0 {
		return
	}
	optimalLen := len(optimal) - 1
	var stretch float64
	if optimalLen == 0 {
		stretch = 1
	} else {
		stretch = float64(c.curActualLen) / float64(optimalLen)
	}
	c.totalStretch += stretch
	c.sessions++
}

// Mean returns the mean path stretch accumulated so far.
func (c *PathStretchCollector) Mean() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessions == 0 {
		return 0
	}
	return c.totalStretch / float64(c.sessions)
}
