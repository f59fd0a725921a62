package handlers

import (
	"encoding/json"

	"github.com/hsumonkyi-hmk/ayar-farm-sub000/service/gateway"
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/tools/errs"
)

type roomPayload struct {
	Room string `json:"room"`
}

type SubscribeHandler struct{}

func NewSubscribeHandler() gateway.Handler { return &SubscribeHandler{} }

func (h *SubscribeHandler) Event() string { return gateway.EventSubscribe }

// Handle joins the caller to an arbitrary room. Reserved rooms
// (admins, user:*) are only ever joined by the lifecycle controller.
func (h *SubscribeHandler) Handle(s *gateway.Server, c *gateway.Client, f *gateway.Frame) error {
	var p roomPayload
	if err := json.Unmarshal(f.Data, &p); err != nil || p.Room == "" {
		c.Send(gateway.BuildAck(f, errs.BadFrameError, "room required", nil))
		return nil
	}
	if gateway.IsReservedRoom(p.Room) {
		c.Send(gateway.BuildAck(f, errs.PermissionError, "reserved room", nil))
		return nil
	}
	s.Rooms().Join(c, p.Room)
	c.Send(gateway.BuildAck(f, 0, "ok", nil))
	return nil
}

type UnsubscribeHandler struct{}

func NewUnsubscribeHandler() gateway.Handler { return &UnsubscribeHandler{} }

func (h *UnsubscribeHandler) Event() string { return gateway.EventUnsubscribe }

func (h *UnsubscribeHandler) Handle(s *gateway.Server, c *gateway.Client, f *gateway.Frame) error {
	var p roomPayload
	if err := json.Unmarshal(f.Data, &p); err != nil || p.Room == "" {
		c.Send(gateway.BuildAck(f, errs.BadFrameError, "room required", nil))
		return nil
	}
	if gateway.IsReservedRoom(p.Room) {
		c.Send(gateway.BuildAck(f, errs.PermissionError, "reserved room", nil))
		return nil
	}
	s.Rooms().Leave(c, p.Room)
	c.Send(gateway.BuildAck(f, 0, "ok", nil))
	return nil
}
