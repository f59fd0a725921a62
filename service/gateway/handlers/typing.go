package handlers

import (
	"encoding/json"

	"github.com/hsumonkyi-hmk/ayar-farm-sub000/service/gateway"
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/tools/errs"
)

type typingPayload struct {
	Room string `json:"room"`
}

type TypingHandler struct{}

func NewTypingHandler() gateway.Handler { return &TypingHandler{} }

func (h *TypingHandler) Event() string { return gateway.EventTyping }

// Handle relays a typing signal to the room. Fire-and-forget, no ack:
// a lost typing indicator costs nothing.
func (h *TypingHandler) Handle(s *gateway.Server, c *gateway.Client, f *gateway.Frame) error {
	var p typingPayload
	if err := json.Unmarshal(f.Data, &p); err != nil || p.Room == "" {
		return errs.ErrBadFrame.WithDetail("room required")
	}
	from := ""
	if id, ok := c.Identity(); ok {
		from = id.UserID
	}
	s.EmitPayload(p.Room, gateway.BuildRelay(gateway.EventTyping, f, from))
	return nil
}
