package gateway

import (
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/logger"
)

// Handler processes one inbound event kind.
type Handler interface {
	Event() string
	Handle(s *Server, c *Client, f *Frame) error
}

type Dispatcher struct {
	handlers map[string]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler)}
}

func (d *Dispatcher) Register(h Handler) { d.handlers[h.Event()] = h }

// Dispatch routes a frame to its handler. Unknown events are ignored
// so older gateways tolerate newer clients.
func (d *Dispatcher) Dispatch(s *Server, c *Client, f *Frame) error {
	h, ok := d.handlers[f.Event]
	if !ok {
		logger.Debugf("[gateway] no handler for event=%s conn=%s", f.Event, c.ConnID)
		return nil
	}
	return h.Handle(s, c, f)
}
