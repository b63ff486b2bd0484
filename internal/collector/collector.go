// Package collector implements the C7 Collectors and the CollectorProxy
// fan-out described in spec.md §4.6: event sinks that accumulate
// cache-hit ratio, link load, latency, and path stretch over the fixed
// event vocabulary a Controller emits.
package collector

import (
	"github.com/google/uuid"
	"github.com/icarus-sim/icnsim/internal/network"
)

// Collector is the event vocabulary every built-in collector
// implements: session_start, request_hop, cache_hit, server_hit,
// content_hop, session_end.
type Collector interface {
	StartSession(sessionID uuid.UUID, time float64, receiver network.NodeID, content network.ContentID, log bool)
	RequestHop(u, v network.NodeID, mainPath bool)
	CacheHit(v network.NodeID)
	ServerHit(v network.NodeID)
	ContentHop(u, v network.NodeID, mainPath bool)
	EndSession(servingNode network.NodeID, hit bool)
}

// Proxy forwards every Controller event to each attached collector, in
// attachment order, and implements network.EventSink so it can be
// wired directly into a Controller. A session opened with log=false is
// a warmup session: the proxy still tells every collector it started
// (so per-session state resets), but suppresses every other event for
// it, so warmup traffic never reaches a collector's accounting.
type Proxy struct {
	collectors []Collector
	curLog     bool
}

// NewProxy builds a Proxy fanning out to cs.
func NewProxy(cs ...Collector) *Proxy {
	return &Proxy{collectors: cs}
}

func (p *Proxy) StartSession(sessionID uuid.UUID, t float64, receiver network.NodeID, content network.ContentID, log bool) {
	p.curLog = log
	for _, c := range p.collectors {
		c.StartSession(sessionID, t, receiver, content, log)
	}
}

func (p *Proxy) RequestHop(u, v network.NodeID, mainPath bool) {
	if !p.curLog {
		return
	}
	for _, c := range p.collectors {
		c.RequestHop(u, v, mainPath)
	}
}

func (p *Proxy) CacheHit(v network.NodeID) {
	if !p.curLog {
		return
	}
	for _, c := range p.collectors {
		c.CacheHit(v)
	}
}

func (p *Proxy) ServerHit(v network.NodeID) {
	if !p.curLog {
		return
	}
	for _, c := range p.collectors {
		c.ServerHit(v)
	}
}

func (p *Proxy) ContentHop(u, v network.NodeID, mainPath bool) {
	if !p.curLog {
		return
	}
	for _, c := range p.collectors {
		c.ContentHop(u, v, mainPath)
	}
}

func (p *Proxy) EndSession(servingNode network.NodeID, hit bool) {
	if !p.curLog {
		return
	}
	for _, c := range p.collectors {
		c.EndSession(servingNode, hit)
	}
}
