package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"community-api/internal/domain"
	"community-api/internal/realtime"
	"community-api/internal/response"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WSHandler upgrades connections and subscribes them to event scopes
type WSHandler struct {
	hub    *realtime.Hub
	logger *zap.Logger
}

// NewWSHandler creates a new WebSocket handler
func NewWSHandler(hub *realtime.Hub, logger *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, logger: logger}
}

// Subscribe upgrades the connection and joins the requested scopes.
// ?thread=<id> subscribes to one thread's events, ?kind=ANNOUNCEMENT or
// ?kind=QUESTION to list-level events; both can be combined.
func (h *WSHandler) Subscribe(c *gin.Context) {
	scopes, ok := h.resolveScopes(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return
	}

	client := h.hub.NewClient(conn, scopes)
	go client.WritePump()
	go client.ReadPump()
}

func (h *WSHandler) resolveScopes(c *gin.Context) ([]string, bool) {
	var scopes []string

	if threadParam := c.Query("thread"); threadParam != "" {
		threadID, err := uuid.Parse(threadParam)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid thread id")
			return nil, false
		}
		scopes = append(scopes, realtime.ThreadScope(threadID.String()))
	}

	if kindParam := c.Query("kind"); kindParam != "" {
		kind := domain.ThreadKind(strings.ToUpper(kindParam))
		if kind != domain.ThreadKindAnnouncement && kind != domain.ThreadKindQuestion {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid thread kind")
			return nil, false
		}
		scopes = append(scopes, realtime.KindScope(string(kind)))
	}

	if len(scopes) == 0 {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "At least one of thread or kind is required")
		return nil, false
	}

	return scopes, true
}
