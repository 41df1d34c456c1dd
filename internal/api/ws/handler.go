package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/xivmarket/marketboard/internal/dispatch"
	"github.com/xivmarket/marketboard/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxControlMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The browser clients are third-party tools on arbitrary origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// controlMessage is the only client-to-server payload: subscription
// filter management after connection setup.
type controlMessage struct {
	Action string          `json:"action"`
	Filter dispatch.Filter `json:"filter"`
}

// Handler upgrades client connections and bridges them to the
// dispatch hub.
type Handler struct {
	hub *dispatch.Hub
}

// NewHandler creates a websocket handler over the dispatch hub.
func NewHandler(hub *dispatch.Hub) *Handler {
	return &Handler{hub: hub}
}

// Serve handles GET /api/v1/ws. The connection starts subscribed to
// all events; the client may narrow it with subscribe/unsubscribe
// control messages.
func (h *Handler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error(err, zap.String("message", "Failed to upgrade websocket connection"))
		return
	}

	sub := h.hub.Subscribe()
	logger.Debug("websocket client connected", zap.String("subscription_id", sub.ID))

	go h.writePump(conn, sub)
	h.readPump(conn, sub)
}

// readPump consumes control messages until the connection dies, then
// tears the subscription down. Teardown here also stops the write pump
// through the closed send channel.
func (h *Handler) readPump(conn *websocket.Conn, sub *dispatch.Subscription) {
	defer func() {
		h.hub.Unsubscribe(sub.ID)
		conn.Close()
		logger.Debug("websocket client disconnected", zap.String("subscription_id", sub.ID))
	}()

	conn.SetReadLimit(maxControlMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("websocket read failed", zap.String("subscription_id", sub.ID), zap.Error(err))
			}
			return
		}

		var msg controlMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Debug("ignoring malformed control message", zap.String("subscription_id", sub.ID), zap.Error(err))
			continue
		}

		switch msg.Action {
		case "subscribe":
			sub.AddFilter(msg.Filter)
		case "unsubscribe":
			sub.RemoveFilter(msg.Filter)
		}
	}
}

// writePump pushes dispatched deltas and pings to the client. A failed
// send is connection teardown, never retried.
func (h *Handler) writePump(conn *websocket.Conn, sub *dispatch.Subscription) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case payload, ok := <-sub.C():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
