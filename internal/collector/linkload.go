package collector

import (
	"sync"

	"github.com/google/uuid"
	"github.com/icarus-sim/icnsim/internal/network"
)

// LinkLoadResults is the results() dump of a LinkLoadCollector.
type LinkLoadResults struct {
	PerLinkInternal map[[2]network.NodeID]float64
	PerLinkExternal map[[2]network.NodeID]float64
	MeanInternal    float64
	MeanExternal    float64
}

// LinkLoadCollector accumulates request_size bytes per request hop and
// content_size bytes per content hop, keyed by directed (u,v), then at
// results() time divides per-link totals by the elapsed simulated
// duration (the span between the first and last session start times)
// and reports the mean separately for internal and external links.
type LinkLoadCollector struct {
	view     *network.View
	reqSize  float64
	contSize float64

	mu        sync.Mutex
	perLink   map[[2]network.NodeID]float64
	sessions  int64
	firstTime float64
	lastTime  float64
}

// Default request/content sizes in bytes, matching icarus's
// LinkLoadCollector defaults (a 1500-byte request packet, a 1.5MB
// content object).
const (
	DefaultRequestSize = 1500.0
	DefaultContentSize = 1500000.0
)

// NewLinkLoadCollector builds a LinkLoadCollector over view with the
// given per-hop byte sizes.
func NewLinkLoadCollector(view *network.View, reqSize, contSize float64) *LinkLoadCollector {
	return &LinkLoadCollector{
		view:     view,
		reqSize:  reqSize,
		contSize: contSize,
		perLink:  make(map[[2]network.NodeID]float64),
	}
}

func (c *LinkLoadCollector) StartSession(_ uuid.UUID, t float64, _ network.NodeID, _ network.ContentID, _ bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessions == 0 {
		c.firstTime = t
	}
	c.lastTime = t
	c.sessions++
}

func (c *LinkLoadCollector) RequestHop(u, v network.NodeID, _ bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.perLink[[2]network.NodeID{u, v}] += c.reqSize
}

func (c *LinkLoadCollector) ContentHop(u, v network.NodeID, _ bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.perLink[[2]network.NodeID{u, v}] += c.contSize
}

func (c *LinkLoadCollector) CacheHit(network.NodeID)              {}
func (c *LinkLoadCollector) ServerHit(network.NodeID)             {}
func (c *LinkLoadCollector) EndSession(network.NodeID, bool)      {}

// Results computes the per-link load and internal/external means.
func (c *LinkLoadCollector) Results() LinkLoadResults {
	c.mu.Lock()
	defer c.mu.Unlock()
	duration := c.lastTime - c.firstTime
	if duration <= 0 {
		duration = 1
	}
	internal := make(map[[2]network.NodeID]float64)
	external := make(map[[2]network.NodeID]float64)
	var sumInt, sumExt float64
	var nInt, nExt int
	for link, bytes := range c.perLink {
		load := bytes / duration
		if c.view.LinkType(link[0], link[1]) == network.LinkInternal {
			internal[link] = load
			sumInt += load
			nInt++
		} else {
			external[link] = load
			sumExt += load
			nExt++
		}
	}
	var meanInt, meanExt float64
	if nInt > 0 {
		meanInt = sumInt / float64(nInt)
	}
	if nExt > 0 {
		meanExt = sumExt / float64(nExt)
	}
	return LinkLoadResults{
		PerLinkInternal: internal,
		PerLinkExternal: external,
		MeanInternal:    meanInt,
		MeanExternal:    meanExt,
	}
}
