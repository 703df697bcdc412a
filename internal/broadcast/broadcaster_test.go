package broadcast_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/devtrail/devtrail/internal/broadcast"
)

// fakeSub is a Subscriber with a scripted match rule and bounded capacity.
type fakeSub struct {
	id       string
	matchAll bool
	wsID     string
	sessID   string

	frames [][]byte
	full   bool
	closed bool
}

func (f *fakeSub) ID() string { return f.id }

func (f *fakeSub) Matches(workspaceID, sessionID string) bool {
	if f.matchAll {
		return true
	}
	if f.wsID != "" && f.wsID == workspaceID {
		return true
	}
	return f.sessID != "" && f.sessID == sessionID
}

func (f *fakeSub) TrySend(frame []byte) bool {
	if f.full {
		return false
	}
	f.frames = append(f.frames, frame)
	return true
}

func (f *fakeSub) Close() { f.closed = true }

func TestBroadcastEvent_FiltersBySubscription(t *testing.T) {
	b := broadcast.New(zaptest.NewLogger(t))

	all := &fakeSub{id: "all", matchAll: true}
	ws := &fakeSub{id: "ws", wsID: "ws-1"}
	other := &fakeSub{id: "other", wsID: "ws-2"}
	sess := &fakeSub{id: "sess", sessID: "sess-1"}

	b.Register(all)
	b.Register(ws)
	b.Register(other)
	b.Register(sess)

	b.BroadcastEvent("ws-1", "sess-1", map[string]string{"id": "evt-1"})

	assert.Len(t, all.frames, 1)
	assert.Len(t, ws.frames, 1)
	assert.Len(t, sess.frames, 1)
	assert.Empty(t, other.frames, "non-matching workspace subscription must not receive the event")
}

func TestBroadcastEvent_FrameShape(t *testing.T) {
	b := broadcast.New(zaptest.NewLogger(t))
	sub := &fakeSub{id: "all", matchAll: true}
	b.Register(sub)

	b.BroadcastSessionUpdate(broadcast.SessionUpdate{
		SessionID:   "sess-1",
		WorkspaceID: "ws-1",
		Lifecycle:   "ended",
	})

	require.Len(t, sub.frames, 1)
	var frame map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(sub.frames[0], &frame))
	assert.JSONEq(t, `"session.update"`, string(frame["type"]))
	assert.Contains(t, string(frame["session"]), `"lifecycle":"ended"`)
}

func TestBroadcast_DropsSlowClient(t *testing.T) {
	b := broadcast.New(zaptest.NewLogger(t))

	slow := &fakeSub{id: "slow", matchAll: true, full: true}
	healthy := &fakeSub{id: "healthy", matchAll: true}
	b.Register(slow)
	b.Register(healthy)

	b.BroadcastEvent("ws-1", "", map[string]string{"id": "evt-1"})

	assert.True(t, slow.closed, "slow client must be closed")
	assert.Equal(t, 1, b.ClientCount())
	assert.Len(t, healthy.frames, 1, "healthy client still receives the frame")

	// Subsequent broadcasts no longer reach the dropped client.
	b.BroadcastEvent("ws-1", "", map[string]string{"id": "evt-2"})
	assert.Len(t, healthy.frames, 2)
}

func TestOnSessionUpdate_HookRunsPerUpdate(t *testing.T) {
	b := broadcast.New(zaptest.NewLogger(t))

	var invalidated []string
	b.OnSessionUpdate(func(sessionID string) {
		invalidated = append(invalidated, sessionID)
	})

	b.BroadcastSessionUpdate(broadcast.SessionUpdate{SessionID: "sess-1", WorkspaceID: "ws-1", Lifecycle: "parsed"})
	b.BroadcastSessionUpdate(broadcast.SessionUpdate{SessionID: "sess-2", WorkspaceID: "ws-1", Lifecycle: "ended"})
	b.BroadcastEvent("ws-1", "sess-1", map[string]string{"id": "evt-1"})

	assert.Equal(t, []string{"sess-1", "sess-2"}, invalidated, "hook fires for session updates only")
}

func TestUnregister_Idempotent(t *testing.T) {
	b := broadcast.New(zaptest.NewLogger(t))
	sub := &fakeSub{id: "c1", matchAll: true}
	b.Register(sub)

	b.Unregister("c1")
	b.Unregister("c1")
	assert.Zero(t, b.ClientCount())
}
