package processor_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/devtrail/devtrail/internal/broadcast"
	"github.com/devtrail/devtrail/internal/events"
	"github.com/devtrail/devtrail/internal/identity"
	"github.com/devtrail/devtrail/internal/processor"
	db "github.com/devtrail/devtrail/internal/repository/db"
	"github.com/devtrail/devtrail/internal/repository/mock"
)

const (
	eventID   = "01HQZX3Y4K5M6N7P8Q9RSTVWXY"
	wsULID    = "01J9GXAMPLEWORKSPACEULID00"
	canonical = "github.com/acme/api"
	deviceID  = "device-1"
	sessionID = "cc-sess-1"
)

var baseTime = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

type fakeGitStore struct {
	session   db.Session
	findErr   error
	inserted  []db.InsertGitActivityParams
	insertErr error
}

func (f *fakeGitStore) FindActiveSessionAt(_ context.Context, _, _ string, _ time.Time) (db.Session, error) {
	return f.session, f.findErr
}

func (f *fakeGitStore) InsertActivityLinked(_ context.Context, arg db.InsertGitActivityParams) error {
	f.inserted = append(f.inserted, arg)
	return f.insertErr
}

type fakeEnqueuer struct {
	enqueued []string
}

func (f *fakeEnqueuer) Enqueue(id string) bool {
	f.enqueued = append(f.enqueued, id)
	return true
}

func rawEvent(t *testing.T, eventType string, data map[string]interface{}, sessID *string) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"id":           eventID,
		"type":         eventType,
		"timestamp":    baseTime.Format(time.RFC3339),
		"device_id":    deviceID,
		"workspace_id": canonical,
		"session_id":   sessID,
		"data":         data,
	})
	require.NoError(t, err)
	return raw
}

// expectIdentity wires the resolver calls every successfully decoded event
// triggers.
func expectIdentity(q *mock.MockQuerier) {
	q.EXPECT().
		GetWorkspaceByCanonicalID(gomock.Any(), canonical).
		Return(db.Workspace{ID: wsULID, CanonicalID: canonical, DefaultBranch: pgtype.Text{String: "main", Valid: true}}, nil).
		AnyTimes()
	q.EXPECT().TouchWorkspace(gomock.Any(), wsULID).Return(nil).AnyTimes()
	q.EXPECT().UpsertDevice(gomock.Any(), deviceID).Return(nil).AnyTimes()
	q.EXPECT().UpsertWorkspaceDevice(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func newProcessor(t *testing.T, q db.Querier, git processor.GitStore, pipe processor.Enqueuer) *processor.Processor {
	t.Helper()
	logger := zaptest.NewLogger(t)
	resolver := identity.NewResolver(q, logger)
	return processor.New(q, resolver, git, pipe, broadcast.New(logger), logger)
}

func TestProcess_SessionStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	expectIdentity(q)
	q.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).Return(int64(1), nil)

	var inserted db.InsertSessionParams
	q.EXPECT().
		InsertSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.InsertSessionParams) (int64, error) {
			inserted = arg
			return 1, nil
		})

	p := newProcessor(t, q, &fakeGitStore{}, &fakeEnqueuer{})
	res, err := p.Process(context.Background(), rawEvent(t, "session.start", map[string]interface{}{
		"cc_session_id": sessionID,
		"cwd":           "/home/dev/api",
		"git_branch":    "feat/ingest",
		"model":         "claude-sonnet",
	}, nil))

	require.NoError(t, err)
	assert.Equal(t, processor.StatusProcessed, res.Status)
	assert.NoError(t, res.HandlerErr)
	assert.Equal(t, sessionID, inserted.ID)
	assert.Equal(t, wsULID, inserted.WorkspaceID)
	assert.Equal(t, "/home/dev/api", inserted.Cwd)
	assert.Equal(t, pgtype.Text{String: "feat/ingest", Valid: true}, inserted.GitBranch)
}

func TestProcess_DuplicateEventSkipsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	expectIdentity(q)
	q.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	// No InsertSession expectation: the handler must not run on a duplicate.

	p := newProcessor(t, q, &fakeGitStore{}, &fakeEnqueuer{})
	res, err := p.Process(context.Background(), rawEvent(t, "session.start", map[string]interface{}{
		"cc_session_id": sessionID,
		"cwd":           "/home/dev/api",
	}, nil))

	require.NoError(t, err)
	assert.Equal(t, processor.StatusDuplicate, res.Status)
}

func TestProcess_InvalidEnvelopeIsValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := newProcessor(t, mock.NewMockQuerier(ctrl), &fakeGitStore{}, &fakeEnqueuer{})
	_, err := p.Process(context.Background(), []byte(`{"id":"nope","type":"mystery"}`))

	var verr *events.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestProcess_SessionEndBackfillsDuration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	expectIdentity(q)
	q.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	q.EXPECT().
		GetSession(gomock.Any(), sessionID).
		Return(db.Session{
			ID:        sessionID,
			Lifecycle: "capturing",
			StartedAt: pgtype.Timestamptz{Time: baseTime.Add(-90 * time.Second), Valid: true},
		}, nil)

	var ended db.MarkSessionEndedParams
	q.EXPECT().
		MarkSessionEnded(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.MarkSessionEndedParams) (int64, error) {
			ended = arg
			return 1, nil
		})

	p := newProcessor(t, q, &fakeGitStore{}, &fakeEnqueuer{})
	res, err := p.Process(context.Background(), rawEvent(t, "session.end", map[string]interface{}{
		"cc_session_id": sessionID,
	}, nil))

	require.NoError(t, err)
	assert.Equal(t, processor.StatusProcessed, res.Status)
	assert.Equal(t, pgtype.Int8{Int64: 90_000, Valid: true}, ended.DurationMs)
}

func TestProcess_SessionEndZeroDurationBackfilled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	expectIdentity(q)
	q.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	q.EXPECT().
		GetSession(gomock.Any(), sessionID).
		Return(db.Session{
			ID:        sessionID,
			Lifecycle: "capturing",
			StartedAt: pgtype.Timestamptz{Time: baseTime.Add(-300 * time.Second), Valid: true},
		}, nil)

	var ended db.MarkSessionEndedParams
	q.EXPECT().
		MarkSessionEnded(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.MarkSessionEndedParams) (int64, error) {
			ended = arg
			return 1, nil
		})

	// Some hooks report duration_ms:0 when they cannot measure; zero is as
	// meaningless as absent and gets the same backfill.
	p := newProcessor(t, q, &fakeGitStore{}, &fakeEnqueuer{})
	_, err := p.Process(context.Background(), rawEvent(t, "session.end", map[string]interface{}{
		"cc_session_id": sessionID,
		"duration_ms":   float64(0),
	}, nil))

	require.NoError(t, err)
	assert.Equal(t, pgtype.Int8{Int64: 300_000, Valid: true}, ended.DurationMs)
}

func TestProcess_SessionCompactKeepsWatermark(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	expectIdentity(q)
	q.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).Return(int64(1), nil).Times(2)

	// Mirror the GREATEST semantics of the UPDATE so a replayed lower
	// sequence is visibly refused.
	var watermark int32
	q.EXPECT().
		AdvanceSessionCompactSequence(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.AdvanceSessionCompactSequenceParams) error {
			if arg.CompactSequence > watermark {
				watermark = arg.CompactSequence
			}
			return nil
		}).
		Times(2)

	p := newProcessor(t, q, &fakeGitStore{}, &fakeEnqueuer{})
	for _, seq := range []float64{3, 1} {
		_, err := p.Process(context.Background(), rawEvent(t, "session.compact", map[string]interface{}{
			"cc_session_id":    sessionID,
			"compact_sequence": seq,
		}, nil))
		require.NoError(t, err)
	}

	assert.EqualValues(t, 3, watermark, "replayed lower sequence must not lower the watermark")
}

func TestProcess_LinksDeviceWithoutCwd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	q.EXPECT().
		GetWorkspaceByCanonicalID(gomock.Any(), canonical).
		Return(db.Workspace{ID: wsULID, CanonicalID: canonical}, nil)
	q.EXPECT().TouchWorkspace(gomock.Any(), wsULID).Return(nil)
	q.EXPECT().UpsertDevice(gomock.Any(), deviceID).Return(nil)

	var link db.UpsertWorkspaceDeviceParams
	q.EXPECT().
		UpsertWorkspaceDevice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.UpsertWorkspaceDeviceParams) error {
			link = arg
			return nil
		})
	q.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).Return(int64(1), nil)

	git := &fakeGitStore{findErr: pgx.ErrNoRows}
	p := newProcessor(t, q, git, &fakeEnqueuer{})
	_, err := p.Process(context.Background(), rawEvent(t, "git.push", map[string]interface{}{
		"branch": "main",
	}, nil))

	require.NoError(t, err)
	assert.Equal(t, wsULID, link.WorkspaceID)
	assert.Equal(t, deviceID, link.DeviceID)
	assert.Equal(t, "unknown", link.LocalPath, "events without a cwd still create the junction row")
}

func TestProcess_SessionEndTriggersPipelineWhenTranscriptPresent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	expectIdentity(q)
	q.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	q.EXPECT().
		GetSession(gomock.Any(), sessionID).
		Return(db.Session{
			ID:              sessionID,
			Lifecycle:       "capturing",
			StartedAt:       pgtype.Timestamptz{Time: baseTime.Add(-time.Minute), Valid: true},
			TranscriptS3Key: pgtype.Text{String: "transcripts/x/y/raw.jsonl", Valid: true},
		}, nil)
	q.EXPECT().MarkSessionEnded(gomock.Any(), gomock.Any()).Return(int64(1), nil)

	pipe := &fakeEnqueuer{}
	p := newProcessor(t, q, &fakeGitStore{}, pipe)
	_, err := p.Process(context.Background(), rawEvent(t, "session.end", map[string]interface{}{
		"cc_session_id": sessionID,
		"duration_ms":   float64(1000),
	}, nil))

	require.NoError(t, err)
	assert.Equal(t, []string{sessionID}, pipe.enqueued)
}

func TestProcess_SessionEndUnknownSessionIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	expectIdentity(q)
	q.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	q.EXPECT().GetSession(gomock.Any(), sessionID).Return(db.Session{}, pgx.ErrNoRows)

	p := newProcessor(t, q, &fakeGitStore{}, &fakeEnqueuer{})
	res, err := p.Process(context.Background(), rawEvent(t, "session.end", map[string]interface{}{
		"cc_session_id": sessionID,
	}, nil))

	require.NoError(t, err)
	assert.Equal(t, processor.StatusProcessed, res.Status)
	assert.NoError(t, res.HandlerErr)
}

func TestProcess_GitCommitCorrelatesByTimeWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	expectIdentity(q)
	q.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).Return(int64(1), nil)

	git := &fakeGitStore{session: db.Session{ID: sessionID}}
	p := newProcessor(t, q, git, &fakeEnqueuer{})
	res, err := p.Process(context.Background(), rawEvent(t, "git.commit", map[string]interface{}{
		"branch":     "main",
		"commit_sha": "abc1234",
		"message":    "fix ingest validation",
		"insertions": float64(12),
		"deletions":  float64(3),
	}, nil))

	require.NoError(t, err)
	assert.Equal(t, processor.StatusProcessed, res.Status)
	require.Len(t, git.inserted, 1)
	arg := git.inserted[0]
	assert.Equal(t, eventID, arg.ID)
	assert.Equal(t, pgtype.Text{String: sessionID, Valid: true}, arg.SessionID)
	assert.Equal(t, "main", arg.Branch)
	assert.Equal(t, pgtype.Text{String: "abc1234", Valid: true}, arg.CommitSha)
	assert.Equal(t, pgtype.Int4{Int32: 12, Valid: true}, arg.Insertions)
}

func TestProcess_GitCommitWithoutActiveSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	expectIdentity(q)
	q.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).Return(int64(1), nil)

	git := &fakeGitStore{findErr: pgx.ErrNoRows}
	p := newProcessor(t, q, git, &fakeEnqueuer{})
	res, err := p.Process(context.Background(), rawEvent(t, "git.commit", map[string]interface{}{
		"branch":     "main",
		"commit_sha": "def5678",
	}, nil))

	require.NoError(t, err)
	assert.NoError(t, res.HandlerErr)
	require.Len(t, git.inserted, 1)
	assert.False(t, git.inserted[0].SessionID.Valid, "uncorrelated activity keeps a null session id")
}

func TestProcess_GitCheckoutDetachedHeadUsesRef(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	expectIdentity(q)
	q.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).Return(int64(1), nil)

	git := &fakeGitStore{findErr: pgx.ErrNoRows}
	p := newProcessor(t, q, git, &fakeEnqueuer{})
	_, err := p.Process(context.Background(), rawEvent(t, "git.checkout", map[string]interface{}{
		"to_ref": "abc1234",
	}, nil))

	require.NoError(t, err)
	require.Len(t, git.inserted, 1)
	assert.Equal(t, "abc1234", git.inserted[0].Branch)
}

func TestProcess_HandlerFailureStillProcessed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	expectIdentity(q)
	q.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).Return(int64(1), nil)

	git := &fakeGitStore{findErr: pgx.ErrNoRows, insertErr: errors.New("deadlock")}
	p := newProcessor(t, q, git, &fakeEnqueuer{})
	res, err := p.Process(context.Background(), rawEvent(t, "git.push", map[string]interface{}{
		"branch": "main",
	}, nil))

	require.NoError(t, err, "handler failures after the insert must not trigger redelivery")
	assert.Equal(t, processor.StatusProcessed, res.Status)
	assert.Error(t, res.HandlerErr)
}

func TestProcess_HeartbeatMarksCapturing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sid := sessionID
	q := mock.NewMockQuerier(ctrl)
	expectIdentity(q)
	q.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	q.EXPECT().MarkSessionCapturing(gomock.Any(), sid).Return(int64(1), nil)

	p := newProcessor(t, q, &fakeGitStore{}, &fakeEnqueuer{})
	res, err := p.Process(context.Background(), rawEvent(t, "system.heartbeat", nil, &sid))

	require.NoError(t, err)
	assert.Equal(t, processor.StatusProcessed, res.Status)
}
