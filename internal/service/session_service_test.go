package service_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	db "github.com/devtrail/devtrail/internal/repository/db"
	"github.com/devtrail/devtrail/internal/repository/mock"
	"github.com/devtrail/devtrail/internal/service"
)

// Caching requires a live Redis; these tests exercise the nil-client
// passthrough path. The read-through behavior itself is a thin Get/Set
// wrapper around the same queries.

func newService(t *testing.T, q db.Querier) *service.SessionService {
	t.Helper()
	return service.NewSessionService(q, nil, zaptest.NewLogger(t))
}

func TestGetSessionDetail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	q.EXPECT().GetSession(gomock.Any(), "s1").Return(db.Session{
		ID:        "s1",
		Lifecycle: "summarized",
		Summary:   pgtype.Text{String: "Did things.", Valid: true},
	}, nil)
	q.EXPECT().GetSessionStats(gomock.Any(), "s1").Return(db.GetSessionStatsRow{
		MessageCount: 12,
		TokensIn:     3400,
		CostUsd:      0.07,
	}, nil)

	detail, err := newService(t, q).GetSessionDetail(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "summarized", detail.Lifecycle)
	require.NotNil(t, detail.Summary)
	assert.Equal(t, "Did things.", *detail.Summary)
	assert.EqualValues(t, 12, detail.Stats.MessageCount)
}

func TestGetSessionDetail_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	q.EXPECT().GetSession(gomock.Any(), "missing").Return(db.Session{}, pgx.ErrNoRows)

	_, err := newService(t, q).GetSessionDetail(context.Background(), "missing")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListSessions_DefaultsAndFilters(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var params db.ListSessionsParams
	q := mock.NewMockQuerier(ctrl)
	q.EXPECT().
		ListSessions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.ListSessionsParams) ([]db.Session, error) {
			params = arg
			return []db.Session{{ID: "s1"}}, nil
		})

	out, err := newService(t, q).ListSessions(context.Background(), service.ListFilter{
		WorkspaceID: "ws-1",
	})
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, pgtype.Text{String: "ws-1", Valid: true}, params.WorkspaceID)
	assert.False(t, params.Lifecycle.Valid, "empty lifecycle filter must be NULL")
	assert.EqualValues(t, 50, params.Limit)
}

func TestListSessions_RejectsOversizedLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := newService(t, mock.NewMockQuerier(ctrl)).ListSessions(context.Background(), service.ListFilter{Limit: 500})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestTimeline_GroupsBlocksByMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	q.EXPECT().GetSession(gomock.Any(), "s1").Return(db.Session{ID: "s1"}, nil)
	q.EXPECT().ListSessionMessages(gomock.Any(), gomock.Any()).Return([]db.TranscriptMessage{
		{ID: "m1", Ordinal: 0, Role: "user"},
		{ID: "m2", Ordinal: 1, Role: "assistant"},
	}, nil)
	q.EXPECT().ListSessionContentBlocks(gomock.Any(), "s1").Return([]db.ContentBlock{
		{ID: "b1", MessageID: "m1", BlockType: "text", ContentText: pgtype.Text{String: "hi", Valid: true}},
		{ID: "b2", MessageID: "m2", BlockType: "text", ContentText: pgtype.Text{String: "hello", Valid: true}},
		{ID: "b3", MessageID: "m2", BlockType: "tool_use", ToolName: pgtype.Text{String: "Bash", Valid: true}},
	}, nil)

	timeline, err := newService(t, q).Timeline(context.Background(), "s1", 0, 0)
	require.NoError(t, err)
	require.Len(t, timeline, 2)
	assert.Len(t, timeline[0].Blocks, 1)
	assert.Len(t, timeline[1].Blocks, 2)
	assert.Equal(t, "tool_use", timeline[1].Blocks[1].Type)
}

func TestTimeline_UnknownSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	q.EXPECT().GetSession(gomock.Any(), "missing").Return(db.Session{}, pgx.ErrNoRows)

	_, err := newService(t, q).Timeline(context.Background(), "missing", 0, 0)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
