package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/devtrail/devtrail/internal/broadcast"
	"github.com/devtrail/devtrail/internal/events"
	"github.com/devtrail/devtrail/internal/repository/db"
)

// handleSessionStart creates the session row in the detected state. The
// session id is the client-generated cc_session_id, so replays and duplicate
// starts collapse onto the same row.
func (p *Processor) handleSessionStart(ctx context.Context, env *events.Envelope, workspaceID string) error {
	sessionID, _ := env.StringField("cc_session_id")
	cwd, _ := env.StringField("cwd")

	rows, err := p.querier.InsertSession(ctx, db.InsertSessionParams{
		ID:          sessionID,
		WorkspaceID: workspaceID,
		DeviceID:    env.DeviceID,
		Cwd:         cwd,
		GitBranch:   textField(env, "git_branch"),
		GitRemote:   textField(env, "git_remote"),
		Model:       textField(env, "model"),
		StartedAt:   pgtype.Timestamptz{Time: env.Time(), Valid: true},
	})
	if err != nil {
		return fmt.Errorf("insert session %s: %w", sessionID, err)
	}
	if rows == 0 {
		p.logger.Debug("session already exists", zap.String("session_id", sessionID))
		return nil
	}

	p.bcast.BroadcastSessionUpdate(broadcast.SessionUpdate{
		SessionID:   sessionID,
		WorkspaceID: workspaceID,
		Lifecycle:   "detected",
	})
	return nil
}

// handleSessionEnd transitions the session to ended. When the client did not
// report a positive duration it is backfilled from the start timestamp,
// clamped at zero for clock skew. A session already past ended (or never
// seen) makes this a no-op.
func (p *Processor) handleSessionEnd(ctx context.Context, env *events.Envelope, workspaceID string) error {
	sessionID, _ := env.StringField("cc_session_id")

	sess, err := p.querier.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.logger.Warn("session.end for unknown session", zap.String("session_id", sessionID))
			return nil
		}
		return fmt.Errorf("load session %s: %w", sessionID, err)
	}

	durationMs, ok := env.NumberField("duration_ms")
	if !ok || durationMs <= 0 {
		durationMs = float64(env.Time().Sub(sess.StartedAt.Time).Milliseconds())
		if durationMs < 0 {
			durationMs = 0
		}
	}

	rows, err := p.querier.MarkSessionEnded(ctx, db.MarkSessionEndedParams{
		ID:         sessionID,
		EndedAt:    pgtype.Timestamptz{Time: env.Time(), Valid: true},
		EndReason:  textField(env, "end_reason"),
		DurationMs: pgtype.Int8{Int64: int64(durationMs), Valid: true},
	})
	if err != nil {
		return fmt.Errorf("mark session %s ended: %w", sessionID, err)
	}
	if rows == 0 {
		p.logger.Warn("session.end ignored, session not active",
			zap.String("session_id", sessionID),
			zap.String("lifecycle", sess.Lifecycle),
		)
		return nil
	}

	p.bcast.BroadcastSessionUpdate(broadcast.SessionUpdate{
		SessionID:   sessionID,
		WorkspaceID: workspaceID,
		Lifecycle:   "ended",
	})

	// The transcript may have been uploaded before the end event arrived.
	if sess.TranscriptS3Key.Valid && p.pipeline != nil {
		p.pipeline.Enqueue(sessionID)
	}
	return nil
}

// handleSessionCompact advances the session's compact sequence. GREATEST in
// the query keeps the sequence non-decreasing under replays and reordering.
func (p *Processor) handleSessionCompact(ctx context.Context, env *events.Envelope, _ string) error {
	sessionID, _ := env.StringField("cc_session_id")
	seq, _ := env.NumberField("compact_sequence")

	err := p.querier.AdvanceSessionCompactSequence(ctx, db.AdvanceSessionCompactSequenceParams{
		ID:              sessionID,
		CompactSequence: int32(seq),
	})
	if err != nil {
		return fmt.Errorf("advance compact sequence for %s: %w", sessionID, err)
	}
	return nil
}

// handleHeartbeat moves a detected session into capturing once the client
// confirms hook activity inside it.
func (p *Processor) handleHeartbeat(ctx context.Context, env *events.Envelope, workspaceID string) error {
	if env.SessionID == nil {
		return nil
	}
	rows, err := p.querier.MarkSessionCapturing(ctx, *env.SessionID)
	if err != nil {
		return fmt.Errorf("mark session %s capturing: %w", *env.SessionID, err)
	}
	if rows > 0 {
		p.bcast.BroadcastSessionUpdate(broadcast.SessionUpdate{
			SessionID:   *env.SessionID,
			WorkspaceID: workspaceID,
			Lifecycle:   "capturing",
		})
	}
	return nil
}
