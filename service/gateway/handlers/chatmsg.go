package handlers

import (
	"encoding/json"

	"github.com/hsumonkyi-hmk/ayar-farm-sub000/service/gateway"
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/tools/errs"
)

type chatPayload struct {
	Room string `json:"room"`
}

type ChatMessageHandler struct{}

func NewChatMessageHandler() gateway.Handler { return &ChatMessageHandler{} }

func (h *ChatMessageHandler) Event() string { return gateway.EventChatMessage }

// Handle relays a chat message to its room as-is. This is the push
// half of the dual-path contract: the durable HTTP write echoes the
// same message id later and receivers dedup on it.
func (h *ChatMessageHandler) Handle(s *gateway.Server, c *gateway.Client, f *gateway.Frame) error {
	var p chatPayload
	if err := json.Unmarshal(f.Data, &p); err != nil || p.Room == "" {
		c.Send(gateway.BuildAck(f, errs.BadFrameError, "room required", nil))
		return nil
	}
	from := ""
	if id, ok := c.Identity(); ok {
		from = id.UserID
	}
	s.EmitPayload(p.Room, gateway.BuildRelay(gateway.EventChatMessage, f, from))
	c.Send(gateway.BuildAck(f, 0, "ok", nil))
	return nil
}
