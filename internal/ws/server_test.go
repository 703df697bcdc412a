package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/devtrail/devtrail/internal/broadcast"
)

const testAPIKey = "test-key"

func startServer(t *testing.T) (*httptest.Server, *broadcast.Broadcaster) {
	t.Helper()

	hub := broadcast.New(zaptest.NewLogger(t))
	srv := NewServer(hub, testAPIKey, time.Minute, 10*time.Second, zaptest.NewLogger(t))

	e := echo.New()
	e.GET("/ws", srv.Handle)

	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)
	return ts, hub
}

func dial(t *testing.T, ts *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	if token != "" {
		url += "?token=" + token
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]json.RawMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var frame map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &frame))
	return frame
}

func frameType(frame map[string]json.RawMessage) string {
	var s string
	json.Unmarshal(frame["type"], &s)
	return s
}

func TestHandle_BadTokenClosedWith4401(t *testing.T) {
	ts, _ := startServer(t)
	conn := dial(t, ts, "wrong-token")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)

	closeErr, ok := err.(*websocket.CloseError)
	require.True(t, ok, "expected a close frame, got %v", err)
	assert.Equal(t, 4401, closeErr.Code)
}

func TestHandle_MissingTokenRejected(t *testing.T) {
	ts, _ := startServer(t)
	conn := dial(t, ts, "")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	closeErr, ok := err.(*websocket.CloseError)
	require.True(t, ok)
	assert.Equal(t, 4401, closeErr.Code)
}

func TestSubscribeAll_ReceivesBroadcast(t *testing.T) {
	ts, hub := startServer(t)
	conn := dial(t, ts, testAPIKey)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "subscribe", "scope": "all"}))
	ack := readFrame(t, conn)
	assert.Equal(t, "subscribed", frameType(ack))

	// Registration is synchronous with the ack, so the broadcast must land.
	hub.BroadcastEvent("ws-1", "sess-1", map[string]string{"id": "evt-1"})

	frame := readFrame(t, conn)
	assert.Equal(t, "event", frameType(frame))
	assert.Contains(t, string(frame["event"]), "evt-1")
}

func TestSubscribeWorkspace_FiltersOtherWorkspaces(t *testing.T) {
	ts, hub := startServer(t)
	conn := dial(t, ts, testAPIKey)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "subscribe", "workspace_id": "ws-1"}))
	readFrame(t, conn) // ack

	hub.BroadcastEvent("ws-2", "", map[string]string{"id": "other"})
	hub.BroadcastEvent("ws-1", "", map[string]string{"id": "mine"})

	frame := readFrame(t, conn)
	assert.Contains(t, string(frame["event"]), "mine", "only the subscribed workspace's event arrives")
}

func TestUnsubscribe_StopsDelivery(t *testing.T) {
	ts, hub := startServer(t)
	conn := dial(t, ts, testAPIKey)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "subscribe", "scope": "all"}))
	readFrame(t, conn)
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "unsubscribe", "scope": "all"}))
	ack := readFrame(t, conn)
	assert.Equal(t, "unsubscribed", frameType(ack))

	hub.BroadcastEvent("ws-1", "", map[string]string{"id": "evt-1"})

	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "no frame should arrive after unsubscribe")
}

func TestSubscribe_InvalidScopeReturnsError(t *testing.T) {
	ts, _ := startServer(t)
	conn := dial(t, ts, testAPIKey)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "subscribe"}))
	frame := readFrame(t, conn)
	assert.Equal(t, "error", frameType(frame))
}

func TestUnknownFrameType_ReturnsError(t *testing.T) {
	ts, _ := startServer(t)
	conn := dial(t, ts, testAPIKey)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "bogus"}))
	frame := readFrame(t, conn)
	assert.Equal(t, "error", frameType(frame))
}

func TestClientMatches(t *testing.T) {
	c := newClient(nil)

	c.subscribe("", "ws-1", "")
	c.subscribe("", "", "sess-9")

	assert.True(t, c.Matches("ws-1", ""))
	assert.True(t, c.Matches("", "sess-9"))
	assert.False(t, c.Matches("ws-2", "sess-2"))
	assert.False(t, c.Matches("", ""))

	c.subscribe("all", "", "")
	assert.True(t, c.Matches("ws-2", "sess-2"))
}
