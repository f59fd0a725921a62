package handlers

import (
	"encoding/json"

	"github.com/hsumonkyi-hmk/ayar-farm-sub000/service/gateway"
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/tools/errs"
)

type notifyPayload struct {
	To string `json:"to"`
}

type SendNotificationHandler struct{}

func NewSendNotificationHandler() gateway.Handler { return &SendNotificationHandler{} }

func (h *SendNotificationHandler) Event() string { return gateway.EventSendNotification }

// Handle pushes a per-user notification into the target's user room.
// If the target is offline the emit is a no-op; durable delivery is
// the HTTP collaborator's job on the fallback path.
func (h *SendNotificationHandler) Handle(s *gateway.Server, c *gateway.Client, f *gateway.Frame) error {
	var p notifyPayload
	if err := json.Unmarshal(f.Data, &p); err != nil || p.To == "" {
		c.Send(gateway.BuildAck(f, errs.BadFrameError, "to required", nil))
		return nil
	}
	from := ""
	if id, ok := c.Identity(); ok {
		from = id.UserID
	}
	s.EmitPayload(gateway.UserRoom(p.To), gateway.BuildRelay(gateway.EventNotifyUser, f, from))
	c.Send(gateway.BuildAck(f, 0, "ok", nil))
	return nil
}
