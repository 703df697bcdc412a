// Package processor consumes events off the durable log, resolves workspace
// and device identity, persists them idempotently, and dispatches per-type
// handlers for session lifecycle, git correlation, and remote environment
// updates.
package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/devtrail/devtrail/internal/broadcast"
	"github.com/devtrail/devtrail/internal/events"
	"github.com/devtrail/devtrail/internal/identity"
	"github.com/devtrail/devtrail/internal/repository/db"
)

// Process outcomes. A duplicate is an event whose id was already persisted;
// its handler must not run again.
const (
	StatusProcessed = "processed"
	StatusDuplicate = "duplicate"
)

// Result reports what Process did with one event. HandlerErr carries a
// handler failure that happened after the event row was durably inserted;
// the consumer still acks in that case because redelivery would be a
// guaranteed duplicate.
type Result struct {
	Status     string
	HandlerErr error
}

// Enqueuer hands a session to the transcript pipeline. Enqueue never blocks.
type Enqueuer interface {
	Enqueue(sessionID string) bool
}

type handlerFunc func(ctx context.Context, env *events.Envelope, workspaceID string) error

// Processor is one member of the event-processor consumer group.
type Processor struct {
	querier  db.Querier
	resolver *identity.Resolver
	git      GitStore
	pipeline Enqueuer
	bcast    *broadcast.Broadcaster
	logger   *zap.Logger

	handlers map[string]handlerFunc
}

func New(querier db.Querier, resolver *identity.Resolver, git GitStore, pipeline Enqueuer, bcast *broadcast.Broadcaster, logger *zap.Logger) *Processor {
	p := &Processor{
		querier:  querier,
		resolver: resolver,
		git:      git,
		pipeline: pipeline,
		bcast:    bcast,
		logger:   logger,
	}
	p.handlers = map[string]handlerFunc{
		events.TypeSessionStart:   p.handleSessionStart,
		events.TypeSessionEnd:     p.handleSessionEnd,
		events.TypeSessionCompact: p.handleSessionCompact,

		events.TypeGitCommit:   p.handleGit,
		events.TypeGitPush:     p.handleGit,
		events.TypeGitCheckout: p.handleGit,
		events.TypeGitMerge:    p.handleGit,

		events.TypeRemoteProvisionStart: p.handleRemote,
		events.TypeRemoteProvisionReady: p.handleRemote,
		events.TypeRemoteProvisionError: p.handleRemote,
		events.TypeRemoteTerminate:      p.handleRemote,

		events.TypeSystemHeartbeat: p.handleHeartbeat,
	}
	return p
}

// Process handles one raw log entry. A *events.ValidationError return means
// the entry is a poison pill and must be terminated, any other error is
// transient and the entry should be redelivered.
func (p *Processor) Process(ctx context.Context, raw []byte) (Result, error) {
	env, err := events.Decode(raw)
	if err != nil {
		return Result{}, err
	}

	workspaceID, err := p.resolver.ResolveWorkspace(ctx, env.WorkspaceID, extractHints(env))
	if err != nil {
		return Result{}, err
	}
	if err := p.resolver.EnsureDevice(ctx, env.DeviceID); err != nil {
		return Result{}, err
	}
	// Every event proves the device works in this workspace, even when it
	// carries no path (git hooks, heartbeats). A later event with a real
	// cwd refreshes the placeholder.
	cwd, ok := env.StringField("cwd")
	if !ok {
		cwd = "unknown"
	}
	if err := p.resolver.EnsureLink(ctx, workspaceID, env.DeviceID, cwd); err != nil {
		p.logger.Warn("failed to link workspace device", zap.String("event_id", env.ID), zap.Error(err))
	}

	data, err := json.Marshal(env.Data)
	if err != nil {
		return Result{}, fmt.Errorf("marshal event data: %w", err)
	}
	blobRefs, err := json.Marshal(env.BlobRefs)
	if err != nil {
		return Result{}, fmt.Errorf("marshal blob refs: %w", err)
	}

	rows, err := p.querier.InsertEvent(ctx, db.InsertEventParams{
		ID:          env.ID,
		Type:        env.Type,
		Timestamp:   pgtype.Timestamptz{Time: env.Time(), Valid: true},
		DeviceID:    env.DeviceID,
		WorkspaceID: workspaceID,
		SessionID:   textPtr(env.SessionID),
		Data:        data,
		BlobRefs:    blobRefs,
	})
	if err != nil {
		return Result{}, fmt.Errorf("insert event %s: %w", env.ID, err)
	}
	if rows == 0 {
		p.logger.Debug("duplicate event", zap.String("event_id", env.ID))
		return Result{Status: StatusDuplicate}, nil
	}

	p.broadcastEvent(env, workspaceID)

	if handler, ok := p.handlers[env.Type]; ok {
		if err := handler(ctx, env, workspaceID); err != nil {
			p.logger.Error("event handler failed",
				zap.String("event_id", env.ID),
				zap.String("type", env.Type),
				zap.Error(err),
			)
			return Result{Status: StatusProcessed, HandlerErr: err}, nil
		}
	}
	return Result{Status: StatusProcessed}, nil
}

func (p *Processor) broadcastEvent(env *events.Envelope, workspaceID string) {
	sessionID := ""
	if env.SessionID != nil {
		sessionID = *env.SessionID
	}
	p.bcast.BroadcastEvent(workspaceID, sessionID, map[string]interface{}{
		"id":           env.ID,
		"type":         env.Type,
		"timestamp":    env.Timestamp,
		"device_id":    env.DeviceID,
		"workspace_id": workspaceID,
		"session_id":   env.SessionID,
		"data":         env.Data,
	})
}

// extractHints pulls workspace metadata out of events that carry it.
func extractHints(env *events.Envelope) *identity.WorkspaceHints {
	if env.Type != events.TypeSessionStart {
		return nil
	}
	branch, ok := env.StringField("git_branch")
	if !ok {
		return nil
	}
	return &identity.WorkspaceHints{DefaultBranch: branch}
}

func textPtr(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func marshalData(env *events.Envelope) []byte {
	data, _ := json.Marshal(env.Data)
	return data
}

func textField(env *events.Envelope, key string) pgtype.Text {
	v, ok := env.StringField(key)
	if !ok {
		return pgtype.Text{}
	}
	return pgtype.Text{String: v, Valid: true}
}
