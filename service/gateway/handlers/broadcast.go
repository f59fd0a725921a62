package handlers

import (
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/service/gateway"
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/tools/errs"
)

type AdminBroadcastHandler struct{}

func NewAdminBroadcastHandler() gateway.Handler { return &AdminBroadcastHandler{} }

func (h *AdminBroadcastHandler) Event() string { return gateway.EventAdminBroadcast }

// Handle fans the payload out to the admins room. Non-admin callers
// get a forbidden ack and nothing else happens.
func (h *AdminBroadcastHandler) Handle(s *gateway.Server, c *gateway.Client, f *gateway.Frame) error {
	if !c.IsAdmin() {
		c.Send(gateway.BuildAck(f, errs.PermissionError, "admin role required", nil))
		return nil
	}
	from := ""
	if id, ok := c.Identity(); ok {
		from = id.UserID
	}
	s.EmitPayload(gateway.RoomAdmins, gateway.BuildRelay(gateway.EventNotifyAdmin, f, from))
	c.Send(gateway.BuildAck(f, 0, "ok", nil))
	return nil
}
