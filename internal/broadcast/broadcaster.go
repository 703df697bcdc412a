// Package broadcast fans out server frames to connected WebSocket clients.
// Delivery is best-effort: frames are marshaled once, sends never block, and
// a client whose buffer is full is dropped rather than allowed to stall the
// event processor.
package broadcast

import (
	"context"
	"encoding/json"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Subscriber is one connected client. Implementations must make TrySend
// non-blocking; returning false tells the broadcaster to drop the client.
type Subscriber interface {
	ID() string
	Matches(workspaceID, sessionID string) bool
	TrySend(frame []byte) bool
	Close()
}

// EventFrame is the "event" message pushed for every processed event.
type EventFrame struct {
	Type  string      `json:"type"`
	Event interface{} `json:"event"`
}

// SessionUpdate is pushed on every lifecycle transition.
type SessionUpdate struct {
	SessionID   string        `json:"session_id"`
	WorkspaceID string        `json:"workspace_id"`
	Lifecycle   string        `json:"lifecycle"`
	Summary     *string       `json:"summary,omitempty"`
	Stats       *SessionStats `json:"stats,omitempty"`
}

// SessionStats are the transcript aggregates attached to updates once a
// session has parsed messages.
type SessionStats struct {
	MessageCount     int64   `json:"message_count"`
	TokensIn         int64   `json:"tokens_in"`
	TokensOut        int64   `json:"tokens_out"`
	TokensCacheRead  int64   `json:"tokens_cache_read"`
	TokensCacheWrite int64   `json:"tokens_cache_write"`
	CostUSD          float64 `json:"cost_usd"`
}

// RemoteUpdate is pushed for remote environment provisioning events.
type RemoteUpdate struct {
	WorkspaceID string                 `json:"workspace_id"`
	SessionID   string                 `json:"session_id,omitempty"`
	Status      string                 `json:"status"`
	Detail      map[string]interface{} `json:"detail,omitempty"`
}

type sessionUpdateFrame struct {
	Type    string        `json:"type"`
	Session SessionUpdate `json:"session"`
}

type remoteUpdateFrame struct {
	Type   string       `json:"type"`
	Remote RemoteUpdate `json:"remote"`
}

// Broadcaster is the fanout hub. Safe for concurrent use.
type Broadcaster struct {
	mu     sync.RWMutex
	subs   map[string]Subscriber
	logger *zap.Logger

	// onSessionUpdate runs before each session.update fanout, set once at
	// wiring time. The read API uses it to drop its cached detail.
	onSessionUpdate func(sessionID string)

	dropped metric.Int64Counter
}

func New(logger *zap.Logger) *Broadcaster {
	meter := otel.Meter("devtrail/broadcast")
	dropped, _ := meter.Int64Counter("ws_clients_dropped_total",
		metric.WithDescription("Clients removed because their send buffer overflowed"))

	return &Broadcaster{
		subs:    make(map[string]Subscriber),
		logger:  logger,
		dropped: dropped,
	}
}

func (b *Broadcaster) Register(sub Subscriber) {
	b.mu.Lock()
	b.subs[sub.ID()] = sub
	b.mu.Unlock()
	b.logger.Debug("ws client registered", zap.String("client_id", sub.ID()))
}

func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	delete(b.subs, id)
	b.mu.Unlock()
}

// ClientCount reports the number of registered subscribers.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// BroadcastEvent pushes a processed event to every subscriber whose
// subscription matches the event's workspace or session.
func (b *Broadcaster) BroadcastEvent(workspaceID, sessionID string, event interface{}) {
	b.fanout(workspaceID, sessionID, EventFrame{Type: "event", Event: event})
}

// OnSessionUpdate registers a hook invoked for every session.update before
// it is fanned out. Call before any broadcasting starts; the hook must not
// block.
func (b *Broadcaster) OnSessionUpdate(fn func(sessionID string)) {
	b.onSessionUpdate = fn
}

// BroadcastSessionUpdate pushes a lifecycle transition.
func (b *Broadcaster) BroadcastSessionUpdate(update SessionUpdate) {
	if b.onSessionUpdate != nil {
		b.onSessionUpdate(update.SessionID)
	}
	b.fanout(update.WorkspaceID, update.SessionID, sessionUpdateFrame{Type: "session.update", Session: update})
}

// BroadcastRemoteUpdate pushes a remote environment status change.
func (b *Broadcaster) BroadcastRemoteUpdate(update RemoteUpdate) {
	b.fanout(update.WorkspaceID, update.SessionID, remoteUpdateFrame{Type: "remote.update", Remote: update})
}

func (b *Broadcaster) fanout(workspaceID, sessionID string, frame interface{}) {
	data, err := json.Marshal(frame)
	if err != nil {
		b.logger.Error("failed to marshal broadcast frame", zap.Error(err))
		return
	}

	var drop []Subscriber
	b.mu.RLock()
	for _, sub := range b.subs {
		if !sub.Matches(workspaceID, sessionID) {
			continue
		}
		if !sub.TrySend(data) {
			drop = append(drop, sub)
		}
	}
	b.mu.RUnlock()

	for _, sub := range drop {
		b.logger.Warn("dropping slow ws client", zap.String("client_id", sub.ID()))
		b.dropped.Add(context.Background(), 1)
		b.Unregister(sub.ID())
		sub.Close()
	}
}
