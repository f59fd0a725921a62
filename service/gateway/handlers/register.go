package handlers

import (
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/service/gateway"
)

// RegisterAll wires every inbound event handler into the dispatcher.
// Called once from main before the server accepts connections.
func RegisterAll(d *gateway.Dispatcher) {
	d.Register(NewSubscribeHandler())
	d.Register(NewUnsubscribeHandler())
	d.Register(NewAdminBroadcastHandler())
	d.Register(NewListOnlineHandler())
	d.Register(NewHeartbeatHandler())
	d.Register(NewSendNotificationHandler())
	d.Register(NewChatMessageHandler())
	d.Register(NewTypingHandler())
}
