package network

import (
	"github.com/google/uuid"
	"github.com/icarus-sim/icnsim/internal/simerr"
)

// EventSink receives the hop-by-hop notifications a Controller emits
// as it drives a session. internal/collector's Proxy implements this;
// network does not import collector to avoid a cycle.
type EventSink interface {
	StartSession(sessionID uuid.UUID, time float64, receiver NodeID, content ContentID, log bool)
	RequestHop(u, v NodeID, mainPath bool)
	CacheHit(v NodeID)
	ServerHit(v NodeID)
	ContentHop(u, v NodeID, mainPath bool)
	EndSession(servingNode NodeID, hit bool)
}

// Session is the state of one in-flight content request.
type Session struct {
	ID       uuid.UUID
	Time     float64
	Receiver NodeID
	Content  ContentID
	Log      bool
}

// Controller drives a Model through one session at a time: it is the
// only component allowed to mutate cache state, and it fans out every
// hop and cache event to an EventSink.
type Controller struct {
	model   *Model
	sink    EventSink
	session *Session
}

// NewController builds a Controller over model, reporting to sink.
func NewController(model *Model, sink EventSink) *Controller {
	return &Controller{model: model, sink: sink}
}

// Model exposes the underlying model (e.g. so a strategy can build a
// View over it).
func (c *Controller) Model() *Model { return c.model }

// StartSession opens a session for one request. Fails with a
// StrategyAssertion if a session is already open: at most one session
// may be open on a controller at a time.
func (c *Controller) StartSession(t float64, receiver NodeID, content ContentID, log bool) (*Session, error) {
	if c.session != nil {
		return nil, simerr.NewStrategyAssertion("StartSession", "a session is already open (id %s)", c.session.ID)
	}
	s := &Session{ID: uuid.New(), Time: t, Receiver: receiver, Content: content, Log: log}
	c.session = s
	c.model.MarkStarted()
	c.sink.StartSession(s.ID, t, receiver, content, log)
	return s, nil
}

func (c *Controller) requireSession(op string) error {
	if c.session == nil {
		return simerr.NewStrategyAssertion(op, "no session is open")
	}
	return nil
}

// ForwardRequestHop records a request traversing edge (u,v).
// mainPath distinguishes the primary forwarding path from side
// exploration some strategies perform (e.g. NRR).
func (c *Controller) ForwardRequestHop(u, v NodeID, mainPath bool) error {
	if err := c.requireSession("ForwardRequestHop"); err != nil {
		return err
	}
	c.sink.RequestHop(u, v, mainPath)
	return nil
}

// ForwardRequestPath records a request traversing every edge of path
// in order.
func (c *Controller) ForwardRequestPath(path []NodeID, mainPath bool) error {
	if err := c.requireSession("ForwardRequestPath"); err != nil {
		return err
	}
	for i := 0; i+1 < len(path); i++ {
		c.sink.RequestHop(path[i], path[i+1], mainPath)
	}
	return nil
}

// GetContent queries node v's coordinated cache for the session's
// content, reporting a cache hit or a server hit to the sink depending
// on whether v is the origin. A miss at a non-origin, non-caching node
// is reported as neither.
func (c *Controller) GetContent(v NodeID) (bool, error) {
	if err := c.requireSession("GetContent"); err != nil {
		return false, err
	}
	if src, ok := c.model.contentSource[c.session.Content]; ok && src == v {
		c.sink.ServerHit(v)
		return true, nil
	}
	cache := c.model.caches[v]
	if cache == nil {
		return false, nil
	}
	hit := cache.Get(c.session.Content)
	if hit {
		c.sink.CacheHit(v)
	}
	return hit, nil
}

// PutContent inserts the session's content into node v's coordinated
// cache. A no-op (returns false, nil) if v carries no cache.
func (c *Controller) PutContent(v NodeID) (bool, error) {
	if err := c.requireSession("PutContent"); err != nil {
		return false, err
	}
	cache := c.model.caches[v]
	if cache == nil {
		return false, nil
	}
	cache.Put(c.session.Content)
	return true, nil
}

// GetContentLocalCache queries node v's reserved local cache.
func (c *Controller) GetContentLocalCache(v NodeID) (bool, error) {
	if err := c.requireSession("GetContentLocalCache"); err != nil {
		return false, err
	}
	cache := c.model.localCaches[v]
	if cache == nil {
		return false, nil
	}
	return cache.Get(c.session.Content), nil
}

// PutContentLocalCache inserts the session's content into node v's
// reserved local cache.
func (c *Controller) PutContentLocalCache(v NodeID) (bool, error) {
	if err := c.requireSession("PutContentLocalCache"); err != nil {
		return false, err
	}
	cache := c.model.localCaches[v]
	if cache == nil {
		return false, nil
	}
	cache.Put(c.session.Content)
	return true, nil
}

// ForwardContentHop records content traversing edge (u,v) on the way
// back to the receiver.
func (c *Controller) ForwardContentHop(u, v NodeID, mainPath bool) error {
	if err := c.requireSession("ForwardContentHop"); err != nil {
		return err
	}
	c.sink.ContentHop(u, v, mainPath)
	return nil
}

// ForwardContentPath records content traversing every edge of path in
// order.
func (c *Controller) ForwardContentPath(path []NodeID, mainPath bool) error {
	if err := c.requireSession("ForwardContentPath"); err != nil {
		return err
	}
	for i := 0; i+1 < len(path); i++ {
		c.sink.ContentHop(path[i], path[i+1], mainPath)
	}
	return nil
}

// ReserveLocalCache delegates to the model. Must be called before any
// session is started.
func (c *Controller) ReserveLocalCache(ratio float64, factory CacheFactory) error {
	return c.model.ReserveLocalCache(ratio, factory)
}

// EndSession closes the open session, reporting the serving node and
// whether the request was satisfied anywhere short of the origin.
func (c *Controller) EndSession(servingNode NodeID, hit bool) error {
	if err := c.requireSession("EndSession"); err != nil {
		return err
	}
	c.sink.EndSession(servingNode, hit)
	c.session = nil
	return nil
}
