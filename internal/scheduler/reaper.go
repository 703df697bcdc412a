// Package scheduler runs the session reaper: an hourly cron job that fails
// out sessions stuck in a non-terminal lifecycle for more than 24 hours.
// This is the backstop for clients that crash without sending session.end
// or never upload a transcript.
package scheduler

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/devtrail/devtrail/internal/broadcast"
	"github.com/devtrail/devtrail/internal/repository/db"
)

const staleAfter = 24 * time.Hour

// Reaper wraps robfig/cron around the stale-session sweep.
type Reaper struct {
	cron    *cron.Cron
	querier db.Querier
	bcast   *broadcast.Broadcaster
	logger  *zap.Logger
}

func NewReaper(querier db.Querier, bcast *broadcast.Broadcaster, logger *zap.Logger) *Reaper {
	return &Reaper{
		cron:    cron.New(),
		querier: querier,
		bcast:   bcast,
		logger:  logger,
	}
}

// Start registers the hourly sweep and starts the scheduler. Call Stop()
// to gracefully shut down.
func (r *Reaper) Start() error {
	if _, err := r.cron.AddFunc("@hourly", r.sweep); err != nil {
		return err
	}
	r.cron.Start()
	r.logger.Info("session reaper started", zap.Duration("stale_after", staleAfter))
	return nil
}

// Stop gracefully stops the scheduler, waiting for an in-flight sweep.
func (r *Reaper) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("session reaper stopped")
}

func (r *Reaper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	r.Sweep(ctx)
}

// Sweep fails every non-terminal session untouched for staleAfter and
// broadcasts the transitions. Exported so it can run on demand.
func (r *Reaper) Sweep(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-staleAfter)
	rows, err := r.querier.MarkStaleSessionsFailed(ctx, pgtype.Timestamptz{Time: cutoff, Valid: true})
	if err != nil {
		r.logger.Error("stale session sweep failed", zap.Error(err))
		return
	}
	if len(rows) == 0 {
		return
	}

	r.logger.Info("reaped stale sessions", zap.Int("count", len(rows)))
	for _, row := range rows {
		r.bcast.BroadcastSessionUpdate(broadcast.SessionUpdate{
			SessionID:   row.ID,
			WorkspaceID: row.WorkspaceID,
			Lifecycle:   "failed",
		})
	}
}
