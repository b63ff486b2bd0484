package strategy

import (
	"github.com/icarus-sim/icnsim/internal/network"
	"github.com/icarus-sim/icnsim/internal/simerr"
)

// Metacaching selects how NearestReplicaRouting caches content on the
// way back to the receiver.
type Metacaching int

const (
	MetacachingLCE Metacaching = iota
	MetacachingLCD
)

// NearestReplicaRouting forwards a request directly to the
// topologically nearest node holding a copy of the content (an ideal,
// omniscient routing oracle), then applies LCE or LCD metacaching on
// the return path.
type NearestReplicaRouting struct {
	base
	metacaching Metacaching
}

// NewNearestReplicaRouting builds an NRR strategy.
func NewNearestReplicaRouting(view *network.View, ctrl *network.Controller, metacaching Metacaching) *NearestReplicaRouting {
	return &NearestReplicaRouting{base: newBase(view, ctrl), metacaching: metacaching}
}

func (s *NearestReplicaRouting) ProcessEvent(time float64, receiver network.NodeID, content network.ContentID, log bool) error {
	source, err := sourceOf(s.view, content)
	if err != nil {
		return err
	}
	locations := s.view.ContentLocations(content)
	if len(locations) == 0 {
		return simerr.NewTopologyInconsistency("no location holds content %v", content)
	}
	var nearest network.NodeID
	best := -1.0
	for _, loc := range locations {
		d := s.view.PathWeight(receiver, loc)
		if best < 0 || d < best {
			best = d
			nearest = loc
		}
	}
	if _, err := s.ctrl.StartSession(time, receiver, content, log); err != nil {
		return err
	}
	reqPath, err := s.view.ShortestPath(receiver, nearest)
	if err != nil {
		return err
	}
	if err := s.ctrl.ForwardRequestPath(reqPath, true); err != nil {
		return err
	}
	if _, err := s.ctrl.GetContent(nearest); err != nil {
		return err
	}
	retPath, err := s.view.ShortestPath(receiver, nearest)
	if err != nil {
		return err
	}
	retPath = reversed(retPath)
	switch s.metacaching {
	case MetacachingLCE:
		for _, l := range pathLinks(retPath) {
			u, v := l[0], l[1]
			if err := s.ctrl.ForwardContentHop(u, v, true); err != nil {
				return err
			}
			if s.view.HasCache(v) && !s.view.CacheLookup(v, content) {
				if _, err := s.ctrl.PutContent(v); err != nil {
					return err
				}
			}
		}
	case MetacachingLCD:
		copied := false
		for _, l := range pathLinks(retPath) {
			u, v := l[0], l[1]
			if err := s.ctrl.ForwardContentHop(u, v, true); err != nil {
				return err
			}
			if !copied && v != receiver && s.view.HasCache(v) {
				if _, err := s.ctrl.PutContent(v); err != nil {
					return err
				}
				copied = true
			}
		}
	}
	return s.ctrl.EndSession(nearest, nearest != source)
}
