package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devtrail/devtrail/internal/repository/db"
)

// GitStore isolates the transactional parts of git correlation so handlers
// stay testable without a live pool.
type GitStore interface {
	// FindActiveSessionAt returns the most recent session on the same
	// workspace and device whose span covers the given instant.
	FindActiveSessionAt(ctx context.Context, workspaceID, deviceID string, at time.Time) (db.Session, error)
	// InsertActivityLinked inserts the git activity row and, when it is
	// correlated to a session, backfills the originating event's session id
	// in the same transaction.
	InsertActivityLinked(ctx context.Context, arg db.InsertGitActivityParams) error
}

type pgGitStore struct {
	pool    *pgxpool.Pool
	queries *db.Queries
}

func NewGitStore(pool *pgxpool.Pool) GitStore {
	return &pgGitStore{pool: pool, queries: db.New(pool)}
}

func (s *pgGitStore) FindActiveSessionAt(ctx context.Context, workspaceID, deviceID string, at time.Time) (db.Session, error) {
	return s.queries.FindActiveSessionAt(ctx, db.FindActiveSessionAtParams{
		WorkspaceID: workspaceID,
		DeviceID:    deviceID,
		StartedAt:   pgtype.Timestamptz{Time: at, Valid: true},
	})
}

func (s *pgGitStore) InsertActivityLinked(ctx context.Context, arg db.InsertGitActivityParams) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin git activity tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := s.queries.WithTx(tx)
	if _, err := qtx.InsertGitActivity(ctx, arg); err != nil {
		return fmt.Errorf("insert git activity %s: %w", arg.ID, err)
	}
	if arg.SessionID.Valid {
		// The activity id doubles as the source event id.
		err := qtx.LinkEventSession(ctx, db.LinkEventSessionParams{
			ID:        arg.ID,
			SessionID: arg.SessionID,
		})
		if err != nil {
			return fmt.Errorf("link event %s to session: %w", arg.ID, err)
		}
	}
	return tx.Commit(ctx)
}
