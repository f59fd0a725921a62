package handlers

import (
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/service/gateway"
)

type ListOnlineHandler struct{}

func NewListOnlineHandler() gateway.Handler { return &ListOnlineHandler{} }

func (h *ListOnlineHandler) Event() string { return gateway.EventListOnline }

// Handle replies with the presence snapshot to the caller only. Any
// connection may ask, matching the reference behavior.
func (h *ListOnlineHandler) Handle(s *gateway.Server, c *gateway.Client, f *gateway.Frame) error {
	users := s.Registry().ListOnline()
	c.Send(gateway.BuildAck(f, 0, "ok", map[string]any{
		"users": users,
		"count": len(users),
	}))
	return nil
}
