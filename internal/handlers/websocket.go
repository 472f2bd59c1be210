package handlers

import (
	"net/http"

	ws "gogrind/internal/websocket"
	"gogrind/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin policy is enforced by the CORS middleware
		return true
	},
}

type WebSocketHandler struct {
	hub *ws.Hub
}

func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

// Connect upgrades an authenticated request to a WebSocket connection
// and registers it with the hub.
func (h *WebSocketHandler) Connect(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	username, _ := c.Get("username")
	name, _ := username.(string)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(conn, h.hub, userID.Hex(), name)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
