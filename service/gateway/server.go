package gateway

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/hsumonkyi-hmk/ayar-farm-sub000/config"
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/logger"
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/tools/errs"
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/tools/ids"
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/tools/security"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server owns the shared gateway state (presence, rooms, fanout) and
// runs the lifecycle of every connection from upgrade to cleanup.
type Server struct {
	cfg      *config.GatewayConfig
	resolver *Resolver
	registry *Registry
	rooms    *RoomManager
	disp     *Dispatcher
	fanout   *Fanout

	mu    sync.RWMutex
	conns map[string]*Client // conn_id -> client, every live connection
}

func NewServer(cfg *config.GatewayConfig) *Server {
	opts := security.Options{
		Secret: []byte(cfg.JWTSecret),
		Alg:    cfg.JWTAlg,
		TTL:    cfg.JWTTTL,
	}
	return &Server{
		cfg:      cfg,
		resolver: NewResolver(opts, cfg.AllowClaimedIdentity),
		registry: NewRegistry(),
		rooms:    NewRoomManager(),
		disp:     NewDispatcher(),
		fanout:   NewFanout(cfg.FanoutShards, cfg.FanoutQueue),
		conns:    make(map[string]*Client),
	}
}

func (s *Server) Registry() *Registry { return s.registry }
func (s *Server) Rooms() *RoomManager { return s.rooms }
func (s *Server) Disp() *Dispatcher   { return s.disp }

// Close stops the fanout workers and drops every connection.
func (s *Server) Close() {
	s.mu.Lock()
	for _, c := range s.conns {
		c.Close()
	}
	s.conns = make(map[string]*Client)
	s.mu.Unlock()
	s.fanout.Close()
}

// Emit delivers an event to every current member of target (a room
// name or user:<id>). Zero members is a successful no-op; dead
// connections are skipped silently.
func (s *Server) Emit(target, event string, data any) {
	s.EmitPayload(target, BuildEvent(event, "", "", data))
}

// EmitPayload is Emit for an already-encoded frame.
func (s *Server) EmitPayload(target string, payload []byte) {
	members := s.rooms.MembersOf(target)
	s.fanout.Dispatch(target, members, payload)
}

// BroadcastAll delivers to the entire connected set, authenticated or
// not; used by the HTTP-triggered broadcast variant.
func (s *Server) BroadcastAll(payload []byte) {
	s.mu.RLock()
	conns := make([]*Client, 0, len(s.conns))
	for _, c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.RUnlock()
	s.fanout.Dispatch("*", conns, payload)
}

func (s *Server) addConn(c *Client) {
	s.mu.Lock()
	s.conns[c.ConnID] = c
	s.mu.Unlock()
}

func (s *Server) removeConn(c *Client) {
	s.mu.Lock()
	delete(s.conns, c.ConnID)
	s.mu.Unlock()
}

func (s *Server) ConnCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conns)
}

// HandleWS runs one connection: upgrade, handshake, read loop,
// teardown. Credentials ride the upgrade request query: either token=
// or the claimed user_id=/role= pair.
func (s *Server) HandleWS(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Infof("[gateway] upgrade error: %v", err)
		return
	}

	client := newClient(ids.GenerateString(), ws, s.cfg.SendQueueSize, s.cfg.WriteWait)
	s.addConn(client)
	go client.writePump()

	ws.SetReadLimit(int64(s.cfg.ReadLimitBytes))
	_ = ws.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	})

	cred := Credential{
		Token:  c.Query("token"),
		UserID: c.Query("user_id"),
		Role:   c.Query("role"),
	}
	s.handshake(client, cred)
	s.readLoop(client, ws)
	s.teardown(client)
}

// handshake drives the Open -> Authenticated/Anonymous transition. A
// failed credential never closes the connection, it only degrades it
// to anonymous.
func (s *Server) handshake(client *Client, cred Credential) {
	if cred.Empty() {
		client.trySend(BuildConnectedAck(client.ConnID))
		return
	}

	identity, err := s.resolver.Resolve(cred)
	if err != nil {
		if errs.ErrNoCredential.Is(err) {
			// claimed pair supplied but the trust path is disabled
			client.trySend(BuildAuthInvalid())
		} else {
			client.trySend(BuildAuthError(err.Error()))
		}
		logger.Infof("[gateway] auth failed conn=%s err=%v", client.ConnID, err)
		return
	}

	client.setIdentity(identity)
	if prev := s.registry.Register(identity.UserID, client); prev != nil {
		// last-connected-wins: user-targeted pushes follow the new
		// connection, so the displaced one leaves the user room
		s.rooms.Leave(prev, UserRoom(identity.UserID))
		logger.Infof("[gateway] displaced conn=%s user=%s by conn=%s", prev.ConnID, identity.UserID, client.ConnID)
	}
	s.rooms.Join(client, UserRoom(identity.UserID))
	if identity.IsAdmin() {
		s.rooms.Join(client, RoomAdmins)
	}
	client.trySend(BuildAuthOK(client.ConnID, identity))
	s.Emit(RoomAdmins, EventUserOnline, map[string]string{"user_id": identity.UserID})
	logger.Infof("[gateway] authenticated conn=%s user=%s role=%s", client.ConnID, identity.UserID, identity.Role)
}

func (s *Server) readLoop(client *Client, ws *websocket.Conn) {
	for {
		mt, data, rerr := ws.ReadMessage()
		if rerr != nil {
			if websocket.IsCloseError(rerr,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Debugf("[gateway] peer closed conn=%s err=%v", client.ConnID, rerr)
			} else if ne, ok := rerr.(net.Error); ok && ne.Timeout() {
				logger.Debugf("[gateway] read timeout conn=%s err=%v", client.ConnID, rerr)
			} else {
				logger.Debugf("[gateway] read err conn=%s err=%v", client.ConnID, rerr)
			}
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		frame, perr := ParseFrame(data)
		if perr != nil {
			sample := data
			if len(sample) > 256 {
				sample = sample[:256]
			}
			logger.Warnf("[gateway] bad frame conn=%s err=%v sample=%q", client.ConnID, perr, sample)
			continue
		}

		if err := s.disp.Dispatch(s, client, frame); err != nil {
			// handler errors are connection-local, never fatal
			logger.Warnf("[gateway] handler err conn=%s event=%s code=%d err=%v", client.ConnID, frame.Event, errs.Code(err), err)
		}
	}
}

// teardown guarantees full cleanup no matter how the transport died:
// presence slot (only if still ours), every room, and the offline
// signal to the admins room. A displaced connection closing late does
// not signal offline, its user is still online elsewhere.
func (s *Server) teardown(client *Client) {
	identity, identified := client.Identity()
	wasRegistered := false
	if identified {
		wasRegistered = s.registry.Unregister(identity.UserID, client.ConnID)
	}
	s.rooms.LeaveAll(client)
	s.removeConn(client)
	client.Close()
	if wasRegistered {
		s.Emit(RoomAdmins, EventUserOffline, map[string]string{"user_id": identity.UserID})
		logger.Infof("[gateway] offline conn=%s user=%s", client.ConnID, identity.UserID)
	} else {
		logger.Debugf("[gateway] closed conn=%s", client.ConnID)
	}
}
