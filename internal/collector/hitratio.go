package collector

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/google/uuid"
	"github.com/icarus-sim/icnsim/internal/network"
)

// CacheHitRatioResults is the results() dump of a CacheHitRatioCollector.
type CacheHitRatioResults struct {
	Sessions    int64
	CacheHits   int64
	ServerHits  int64
	PerCache    map[network.NodeID]int64
	PerOrigin   map[network.NodeID]int64
	OverallHitRatio float64
}

// CacheHitRatioCollector counts per-session hit/miss globally, per
// cache node, and per origin server.
type CacheHitRatioCollector struct {
	sessions   atomic.Int64
	cacheHits  atomic.Int64
	serverHits atomic.Int64

	mu        sync.Mutex
	perCache  map[network.NodeID]int64
	perOrigin map[network.NodeID]int64

	curCacheHit  *network.NodeID
	curServerHit *network.NodeID
}

// NewCacheHitRatioCollector builds an empty collector.
func NewCacheHitRatioCollector() *CacheHitRatioCollector {
	return &CacheHitRatioCollector{
		perCache:  make(map[network.NodeID]int64),
		perOrigin: make(map[network.NodeID]int64),
	}
}

func (c *CacheHitRatioCollector) StartSession(_ uuid.UUID, _ float64, _ network.NodeID, _ network.ContentID, _ bool) {
	c.curCacheHit = nil
	c.curServerHit = nil
}

func (c *CacheHitRatioCollector) RequestHop(_, _ network.NodeID, _ bool) {}
func (c *CacheHitRatioCollector) ContentHop(_, _ network.NodeID, _ bool) {}

func (c *CacheHitRatioCollector) CacheHit(v network.NodeID) {
	if c.curCacheHit == nil {
		n := v
		c.curCacheHit = &n
	}
}

func (c *CacheHitRatioCollector) ServerHit(v network.NodeID) {
	if c.curServerHit == nil {
		n := v
		c.curServerHit = &n
	}
}

func (c *CacheHitRatioCollector) EndSession(_ network.NodeID, hit bool) {
	c.sessions.Inc()
	if hit {
		c.cacheHits.Inc()
	} else {
		c.serverHits.Inc()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.curCacheHit != nil {
		c.perCache[*c.curCacheHit]++
	}
	if c.curServerHit != nil {
		c.perOrigin[*c.curServerHit]++
	}
}

// Results dumps the accumulated counts.
func (c *CacheHitRatioCollector) Results() CacheHitRatioResults {
	c.mu.Lock()
	defer c.mu.Unlock()
	perCache := make(map[network.NodeID]int64, len(c.perCache))
	for k, v := range c.perCache {
		perCache[k] = v
	}
	perOrigin := make(map[network.NodeID]int64, len(c.perOrigin))
	for k, v := range c.perOrigin {
		perOrigin[k] = v
	}
	sessions := c.sessions.Load()
	hits := c.cacheHits.Load()
	var ratio float64
	if sessions > 0 {
		ratio = float64(hits) / float64(sessions)
	}
	return CacheHitRatioResults{
		Sessions:        sessions,
		CacheHits:       hits,
		ServerHits:      c.serverHits.Load(),
		PerCache:        perCache,
		PerOrigin:       perOrigin,
		OverallHitRatio: ratio,
	}
}
