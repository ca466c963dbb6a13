package navapi

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialEvents(t *testing.T, rig *navRig) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(rig.router)
	t.Cleanup(server.Close)

	wsURL := "ws" + server.URL[4:] + "/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err, "should establish WebSocket connection")
	t.Cleanup(func() { conn.Close() })

	return conn
}

func readReply(t *testing.T, conn *websocket.Conn) stateMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var reply stateMessage
	require.NoError(t, conn.ReadJSON(&reply))
	return reply
}

func TestWebSocketFullscreenEvent(t *testing.T) {
	rig := newNavRig(t, nil)
	conn := dialEvents(t, rig)

	require.NoError(t, conn.WriteJSON(eventMessage{Type: "fullscreen", Active: true}))

	reply := readReply(t, conn)
	assert.Equal(t, "state", reply.Type)
	assert.False(t, reply.Visible)
	assert.Equal(t, "home", reply.Page)
	assert.True(t, strings.Contains(reply.HTML, `id="bottom-nav"`), "reply carries the re-rendered bar")
	assert.False(t, rig.bar.Visible())

	require.NoError(t, conn.WriteJSON(eventMessage{Type: "fullscreen", Active: false}))

	reply = readReply(t, conn)
	assert.True(t, reply.Visible)
	assert.True(t, rig.bar.Visible())
}

func TestWebSocketAuthChangedEvent(t *testing.T) {
	rig := newNavRig(t, nil)
	conn := dialEvents(t, rig)

	_, err := rig.state.SignIn("Ada", "ada@example.com")
	require.NoError(t, err)

	require.NoError(t, conn.WriteJSON(eventMessage{Type: "auth-changed"}))

	reply := readReply(t, conn)
	assert.Equal(t, "state", reply.Type)
	assert.True(t, reply.SignedIn)
	assert.Equal(t, "Ada", reply.DisplayName)
}

func TestWebSocketRecoversFromMalformedFrame(t *testing.T) {
	rig := newNavRig(t, nil)
	conn := dialEvents(t, rig)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

	reply := readReply(t, conn)
	assert.Equal(t, "error", reply.Type)
	assert.Equal(t, "invalid event payload", reply.Message)

	// The connection survives; the next well-formed frame is processed.
	require.NoError(t, conn.WriteJSON(eventMessage{Type: "fullscreen", Active: true}))
	reply = readReply(t, conn)
	assert.Equal(t, "state", reply.Type)
	assert.False(t, rig.bar.Visible())
}

func TestWebSocketRejectsUnknownEventType(t *testing.T) {
	rig := newNavRig(t, nil)
	conn := dialEvents(t, rig)

	require.NoError(t, conn.WriteJSON(eventMessage{Type: "zoom"}))

	reply := readReply(t, conn)
	assert.Equal(t, "error", reply.Type)
	assert.Contains(t, reply.Message, "unknown event type")
	assert.True(t, rig.bar.Visible(), "unknown events must not change state")
}
