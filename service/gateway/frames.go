package gateway

import (
	"encoding/json"
	"fmt"
	"time"
)

// Inbound event names.
const (
	EventSubscribe        = "subscribe"
	EventUnsubscribe      = "unsubscribe"
	EventAdminBroadcast   = "admin-broadcast"
	EventListOnline       = "list-online"
	EventHeartbeat        = "heartbeat"
	EventSendNotification = "send-notification"
	EventChatMessage      = "chat:message"
	EventTyping           = "typing"
)

// Outbound event names.
const (
	EventConnected   = "connected"
	EventAuthOK      = "auth:ok"
	EventAuthError   = "auth:error"
	EventAuthInvalid = "auth:invalid"
	EventAck         = "ack"
	EventUserOnline  = "user-online"
	EventUserOffline = "user-offline"
	EventNotifyAdmin = "notification:admin"
	EventNotifyUser  = "notification:user"
)

// Frame is the wire envelope, both directions. ID is the
// caller-supplied dedup id of the dual-path contract and travels
// through relays unchanged; the gateway never deduplicates on it.
type Frame struct {
	Event string          `json:"event"`
	ID    string          `json:"id,omitempty"`
	From  string          `json:"from,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
	Ts    int64           `json:"ts,omitempty"`
}

func ParseFrame(raw []byte) (*Frame, error) {
	f := &Frame{}
	if err := json.Unmarshal(raw, f); err != nil {
		return nil, fmt.Errorf("unmarshal frame failed: %w", err)
	}
	if f.Event == "" {
		return nil, fmt.Errorf("frame missing event name")
	}
	return f, nil
}

// AckData is the body of every ack the dispatcher sends back.
type AckData struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

// ---- server-side frame builders ----

func buildFrame(event, id, from string, data any) []byte {
	f := Frame{
		Event: event,
		ID:    id,
		From:  from,
		Ts:    time.Now().UnixMilli(),
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			// builder inputs are server-owned shapes, this indicates a bug
			raw, _ = json.Marshal(map[string]string{"error": err.Error()})
		}
		f.Data = raw
	}
	payload, _ := json.Marshal(&f)
	return payload
}

func BuildConnectedAck(connID string) []byte {
	return buildFrame(EventConnected, "", "", map[string]string{"conn_id": connID})
}

func BuildAuthOK(connID string, id Identity) []byte {
	return buildFrame(EventAuthOK, "", "", map[string]any{
		"conn_id": connID,
		"user_id": id.UserID,
		"role":    id.Role,
	})
}

func BuildAuthError(reason string) []byte {
	return buildFrame(EventAuthError, "", "", map[string]string{"reason": reason})
}

func BuildAuthInvalid() []byte {
	return buildFrame(EventAuthInvalid, "", "", nil)
}

func BuildAck(req *Frame, code int, msg string, data any) []byte {
	return buildFrame(EventAck, req.ID, "", AckData{Code: code, Msg: msg, Data: data})
}

// BuildEvent marshals an application event; used by the Fan-out
// Notifier and the HTTP emit surface.
func BuildEvent(event, id, from string, data any) []byte {
	return buildFrame(event, id, from, data)
}

// BuildRelay re-wraps an inbound frame's payload for fan-out, keeping
// the dedup id and stamping the sender.
func BuildRelay(event string, in *Frame, from string) []byte {
	f := Frame{
		Event: event,
		ID:    in.ID,
		From:  from,
		Data:  in.Data,
		Ts:    time.Now().UnixMilli(),
	}
	payload, _ := json.Marshal(&f)
	return payload
}
