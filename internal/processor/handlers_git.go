package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/devtrail/devtrail/internal/events"
	"github.com/devtrail/devtrail/internal/repository/db"
)

// handleGit records a git activity row, correlating it to a session either
// by the explicit session id on the envelope or by the time-window rule:
// the newest session on the same workspace and device whose span covers the
// event timestamp. No candidate means the activity stands alone.
func (p *Processor) handleGit(ctx context.Context, env *events.Envelope, workspaceID string) error {
	var sessionID pgtype.Text
	if env.SessionID != nil {
		sessionID = pgtype.Text{String: *env.SessionID, Valid: true}
	} else {
		sess, err := p.git.FindActiveSessionAt(ctx, workspaceID, env.DeviceID, env.Time())
		switch {
		case err == nil:
			sessionID = pgtype.Text{String: sess.ID, Valid: true}
		case errors.Is(err, pgx.ErrNoRows):
			p.logger.Debug("git activity has no active session",
				zap.String("event_id", env.ID),
				zap.String("type", env.Type),
			)
		default:
			return fmt.Errorf("correlate git activity %s: %w", env.ID, err)
		}
	}

	return p.git.InsertActivityLinked(ctx, db.InsertGitActivityParams{
		ID:           env.ID,
		WorkspaceID:  workspaceID,
		DeviceID:     env.DeviceID,
		SessionID:    sessionID,
		Type:         env.Type,
		Branch:       gitBranch(env),
		CommitSha:    textField(env, "commit_sha"),
		Message:      textField(env, "message"),
		Insertions:   int4Field(env, "insertions"),
		Deletions:    int4Field(env, "deletions"),
		FilesChanged: int4Field(env, "files_changed"),
		Timestamp:    pgtype.Timestamptz{Time: env.Time(), Valid: true},
		Data:         marshalData(env),
	})
}

// gitBranch picks the branch to record. Checkouts land on the target branch;
// a detached-head checkout reports to_ref instead.
func gitBranch(env *events.Envelope) string {
	if env.Type == events.TypeGitCheckout {
		if branch, ok := env.StringField("to_branch"); ok {
			return branch
		}
		ref, _ := env.StringField("to_ref")
		return ref
	}
	branch, _ := env.StringField("branch")
	return branch
}

func int4Field(env *events.Envelope, key string) pgtype.Int4 {
	v, ok := env.NumberField(key)
	if !ok {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(v), Valid: true}
}
