package handlers

import (
	"time"

	"github.com/hsumonkyi-hmk/ayar-farm-sub000/service/gateway"
)

type HeartbeatHandler struct{}

func NewHeartbeatHandler() gateway.Handler { return &HeartbeatHandler{} }

func (h *HeartbeatHandler) Event() string { return gateway.EventHeartbeat }

// Handle acks immediately with a liveness timestamp; clients use it to
// detect a dead transport before trusting the push path.
func (h *HeartbeatHandler) Handle(s *gateway.Server, c *gateway.Client, f *gateway.Frame) error {
	c.Send(gateway.BuildAck(f, 0, "ok", map[string]int64{
		"ts": time.Now().UnixMilli(),
	}))
	return nil
}
