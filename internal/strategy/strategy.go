// Package strategy implements the C8 caching/routing strategies: the
// decision layer that, given a View of the network and a Controller to
// drive it, decides where a request is forwarded and where its
// response is cached.
package strategy

import "github.com/icarus-sim/icnsim/internal/network"

// Strategy processes one content-request event end to end: start a
// session, route the request, fetch the content, route it back,
// optionally caching it along the way, and end the session.
type Strategy interface {
	ProcessEvent(time float64, receiver network.NodeID, content network.ContentID, log bool) error
}

// base holds the view/controller pair every strategy is built over.
type base struct {
	view *network.View
	ctrl *network.Controller
}

func newBase(view *network.View, ctrl *network.Controller) base {
	return base{view: view, ctrl: ctrl}
}

// pathLinks returns the consecutive (u,v) edges of path.
func pathLinks(path []network.NodeID) [][2]network.NodeID {
	if len(path) < 2 {
		return nil
	}
	links := make([][2]network.NodeID, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		links = append(links, [2]network.NodeID{path[i], path[i+1]})
	}
	return links
}

func reversed(path []network.NodeID) []network.NodeID {
	out := make([]network.NodeID, len(path))
	for i, n := range path {
		out[len(path)-1-i] = n
	}
	return out
}
