package navapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tabrail/tabrail/internal/app/observability/metrics"
	"github.com/tabrail/tabrail/internal/bus"
	"github.com/tabrail/tabrail/internal/pkg/debugger"
)

const (
	wsReadLimit    = 4 * 1024
	wsReadTimeout  = 60 * time.Second
	wsWriteTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The demo serves everything from one origin; embedders fronting this
	// with their own domain should restrict it.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// eventMessage is a client frame. Type is "fullscreen" (with active) or
// "auth-changed".
type eventMessage struct {
	Type   string `json:"type"`
	Active bool   `json:"active"`
}

// stateMessage is the reply after each processed frame: the bar's resulting
// state plus its re-rendered markup, ready to swap in.
type stateMessage struct {
	Type        string `json:"type"`
	Page        string `json:"page,omitempty"`
	Visible     bool   `json:"visible,omitempty"`
	SignedIn    bool   `json:"signedIn,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	HTML        string `json:"html,omitempty"`
	Message     string `json:"message,omitempty"`
}

// HandleWebSocket is the long-lived event channel: the page streams
// fullscreen and auth-change notifications up, the server answers each with
// the bar's new state and markup.
func (h *NavHandlers) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	conn.SetReadLimit(wsReadLimit)

	metrics.Get().WSConnectionsTotal.Add(c.Request.Context(), 1)
	h.logger.Info("WebSocket event connection opened",
		zap.String("conn_id", connID),
		zap.String("remote", c.ClientIP()),
	)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
			return
		}

		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket closed unexpectedly",
					zap.String("conn_id", connID),
					zap.Error(err),
				)
			}
			return
		}
		if h.logger.Core().Enabled(zapcore.DebugLevel) {
			debugger.DebugPrintFrame(h.logger.Sugar(), raw)
		}

		var msg eventMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			// A malformed frame is recoverable; the session goes on.
			h.writeError(conn, "invalid event payload")
			continue
		}

		switch msg.Type {
		case "fullscreen":
			h.events.PublishFullscreen(bus.FullscreenEvent{Active: msg.Active})
		case "auth-changed":
			h.events.PublishAuthChanged()
		default:
			h.writeError(conn, "unknown event type "+msg.Type)
			continue
		}

		metrics.Get().WSEventsTotal.Add(c.Request.Context(), 1,
			metric.WithAttributes(attribute.String("type", msg.Type)))

		if err := h.writeState(conn); err != nil {
			h.logger.Warn("WebSocket state push failed",
				zap.String("conn_id", connID),
				zap.Error(err),
			)
			return
		}
	}
}

func (h *NavHandlers) writeState(conn *websocket.Conn) error {
	reply := stateMessage{Type: "state"}

	if bar, ok := h.activeBar(); ok {
		st := bar.Snapshot()
		reply.Page = st.CurrentPage.String()
		reply.Visible = st.Visible
		reply.SignedIn = st.SignedIn
		reply.DisplayName = st.DisplayName

		var buf bytes.Buffer
		if err := bar.Component().Render(context.Background(), &buf); err == nil {
			reply.HTML = buf.String()
		}
	}

	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(reply)
}

func (h *NavHandlers) writeError(conn *websocket.Conn, message string) {
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return
	}
	if err := conn.WriteJSON(stateMessage{Type: "error", Message: message}); err != nil {
		h.logger.Debug("WebSocket error frame write failed", zap.Error(err))
	}
}
