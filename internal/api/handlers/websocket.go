package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/efootball-stats/internal/services"
)

type WebSocketHandler struct {
	hub      *services.WebSocketHub
	upgrader websocket.Upgrader
	logger   *logrus.Logger
}

// NewWebSocketHandler accepts upgrades from the given origins; "*" allows any.
func NewWebSocketHandler(hub *services.WebSocketHub, origins []string, logger *logrus.Logger) *WebSocketHandler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &WebSocketHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// HandleWebSocket upgrades the connection and subscribes it to player updates.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to upgrade connection")
		return
	}

	client := services.NewClient(h.hub, conn)
	h.hub.Register(client)

	data, _ := json.Marshal(gin.H{
		"message": "Connected to eFootball stats updates",
		"topics":  []string{services.TopicPlayers},
	})
	welcome := services.WebSocketMessage{
		Type:      "welcome",
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
	if err := conn.WriteJSON(welcome); err != nil {
		h.logger.WithError(err).Error("Failed to send welcome message")
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
