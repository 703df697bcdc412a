package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/devtrail/devtrail/internal/broadcast"
	"github.com/devtrail/devtrail/internal/repository/db"
	"github.com/devtrail/devtrail/internal/repository/mock"
	"github.com/devtrail/devtrail/internal/scheduler"
)

func TestSweep_FailsStaleSessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var cutoff pgtype.Timestamptz
	q := mock.NewMockQuerier(ctrl)
	q.EXPECT().
		MarkStaleSessionsFailed(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg pgtype.Timestamptz) ([]db.MarkStaleSessionsFailedRow, error) {
			cutoff = arg
			return []db.MarkStaleSessionsFailedRow{
				{ID: "cc-sess-1", WorkspaceID: "ws-1"},
			}, nil
		})

	r := scheduler.NewReaper(q, broadcast.New(zaptest.NewLogger(t)), zaptest.NewLogger(t))
	r.Sweep(context.Background())

	require.True(t, cutoff.Valid)
	age := time.Since(cutoff.Time)
	assert.InDelta(t, 24*time.Hour, age, float64(time.Minute), "cutoff sits 24h in the past")
}

func TestSweep_NoStaleSessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	q.EXPECT().MarkStaleSessionsFailed(gomock.Any(), gomock.Any()).Return(nil, nil)

	r := scheduler.NewReaper(q, broadcast.New(zaptest.NewLogger(t)), zaptest.NewLogger(t))
	r.Sweep(context.Background())
}
