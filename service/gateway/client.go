package gateway

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hsumonkyi-hmk/ayar-farm-sub000/logger"
)

const pingPeriod = 25 * time.Second

// Client is one live connection to the gateway. The read loop lives in
// the server; the write pump here is the only goroutine that touches
// the underlying websocket for writes.
type Client struct {
	ConnID    string
	CreatedAt time.Time

	conn      *websocket.Conn // nil for clients built in tests
	send      chan []byte
	writeWait time.Duration

	mu       sync.RWMutex
	identity *Identity
	rooms    map[string]struct{}

	closeOnce sync.Once
	done      chan struct{}
}

func newClient(connID string, conn *websocket.Conn, queueSize int, writeWait time.Duration) *Client {
	return &Client{
		ConnID:    connID,
		CreatedAt: time.Now(),
		conn:      conn,
		send:      make(chan []byte, queueSize),
		writeWait: writeWait,
		rooms:     make(map[string]struct{}),
		done:      make(chan struct{}),
	}
}

func (c *Client) setIdentity(id Identity) {
	c.mu.Lock()
	c.identity = &id
	c.mu.Unlock()
}

// Identity returns the negotiated identity, ok=false while anonymous.
func (c *Client) Identity() (Identity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.identity == nil {
		return Identity{}, false
	}
	return *c.identity, true
}

func (c *Client) IsAdmin() bool {
	id, ok := c.Identity()
	return ok && id.IsAdmin()
}

// room bookkeeping, driven by the RoomManager only

func (c *Client) addRoom(room string) {
	c.mu.Lock()
	c.rooms[room] = struct{}{}
	c.mu.Unlock()
}

func (c *Client) removeRoom(room string) {
	c.mu.Lock()
	delete(c.rooms, room)
	c.mu.Unlock()
}

func (c *Client) inRoom(room string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.rooms[room]
	return ok
}

func (c *Client) roomSnapshot() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.rooms))
	for r := range c.rooms {
		out = append(out, r)
	}
	return out
}

// Send queues a payload for this connection alone, e.g. an ack or a
// direct reply. Delivery is best-effort, same as fan-out.
func (c *Client) Send(payload []byte) bool { return c.trySend(payload) }

// trySend queues a payload for the write pump without blocking. A full
// queue or a closed client drops the payload and returns false.
func (c *Client) trySend(payload []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- payload:
		return true
	case <-c.done:
		return false
	default:
		logger.Warnf("[gateway] send queue full, drop conn=%s", c.ConnID)
		return false
	}
}

// Close is idempotent and safe from any goroutine. The write pump
// observes done and sends the close frame.
func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Client) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// writePump drains the send queue onto the wire and keeps the
// transport alive with pings. Exits on Close or on the first write
// error; either way the read loop notices via the dropped transport.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeWait))
		_ = c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Debugf("[gateway] write err conn=%s err=%v", c.ConnID, err)
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(c.writeWait)); err != nil {
				logger.Debugf("[gateway] ping err conn=%s err=%v", c.ConnID, err)
				return
			}
		case <-c.done:
			// flush whatever is already queued before closing
			for {
				select {
				case payload := <-c.send:
					_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeWait))
					if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
						return
					}
				default:
					return
				}
			}
		}
	}
}
