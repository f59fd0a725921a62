package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hsumonkyi-hmk/ayar-farm-sub000/logger"
	security "github.com/hsumonkyi-hmk/ayar-farm-sub000/middleware/security"
)

// EmitRequest is the body of the server-initiated emit endpoint: the
// durable collaborator persists a record and then echoes the event to
// the relevant room through here.
type EmitRequest struct {
	Target string `json:"target" binding:"required"`
	Event  string `json:"event" binding:"required"`
	ID     string `json:"id"`
	From   string `json:"from"`
	Data   any    `json:"data"`
}

// BroadcastRequest targets the entire connected set.
type BroadcastRequest struct {
	Event string `json:"event"`
	ID    string `json:"id"`
	Data  any    `json:"data"`
}

// RegisterRoutes mounts the websocket endpoint and the internal HTTP
// surface on the engine.
func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws", s.HandleWS)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "conns": s.ConnCount()})
	})

	api := r.Group("/api/v1", security.InternalKey(s.cfg.InternalAPIKey))
	api.POST("/emit", s.handleEmit)
	api.POST("/broadcast", s.handleBroadcast)
	api.GET("/online", s.handleOnline)
}

func (s *Server) handleEmit(c *gin.Context) {
	var req EmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "msg": err.Error()})
		return
	}
	if req.ID == "" {
		// the durable path must still carry a dedup id for clients
		req.ID = uuid.NewString()
	}
	s.EmitPayload(req.Target, BuildEvent(req.Event, req.ID, req.From, req.Data))
	logger.Debugf("[gateway] http emit target=%s event=%s id=%s", req.Target, req.Event, req.ID)
	c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "ok", "id": req.ID})
}

func (s *Server) handleBroadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "msg": err.Error()})
		return
	}
	if req.Event == "" {
		req.Event = EventNotifyAdmin
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	s.BroadcastAll(BuildEvent(req.Event, req.ID, "", req.Data))
	logger.Debugf("[gateway] http broadcast event=%s id=%s", req.Event, req.ID)
	c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "ok", "id": req.ID})
}

func (s *Server) handleOnline(c *gin.Context) {
	users := s.registry.ListOnline()
	c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "ok", "users": users, "count": len(users)})
}
