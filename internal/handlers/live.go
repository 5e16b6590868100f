package handlers

import (
	"net/http"
	"time"

	"vehicle_dashboard/internal/dom"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing and message size limits for the live feed.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB; browsers only send control frames
)

const msgPatch = "patch"

// wsEnvelope wraps every message on the live feed.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict to the configured page origin
}

// @Summary      Live page feed
// @Description  WebSocket. Sends {"type":"patch","data":{"ops":[...]}} messages: first a full page snapshot, then every change.
// @Tags         page
// @Router       /live [get]
func (h *Handler) wsLive(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	sub := h.services.Monitoring.Subscribe()
	defer sub.Close()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	if err := sendPatch(conn, h.services.Monitoring.Snapshot()); err != nil {
		h.log.Infow("ws_write_failed_initial", "err", err)
		return
	}
	h.log.Infow("ws_live_connected", "remote", c.ClientIP())

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case p, ok := <-sub.C:
			if !ok {
				return
			}
			if err := sendPatch(conn, p); err != nil {
				h.log.Infow("ws_write_failed", "err", err)
				return
			}
		}
	}
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

func sendPatch(conn *websocket.Conn, p dom.Patch) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: msgPatch, Data: p})
}
