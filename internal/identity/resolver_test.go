package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/devtrail/devtrail/internal/identity"
	db "github.com/devtrail/devtrail/internal/repository/db"
	"github.com/devtrail/devtrail/internal/repository/mock"
)

const wsULID = "01J9GXAMPLEWORKSPACEULID00"

func newResolver(t *testing.T, q db.Querier) *identity.Resolver {
	t.Helper()
	return identity.NewResolver(q, zaptest.NewLogger(t))
}

func TestResolveWorkspace_ExistingRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	q.EXPECT().
		GetWorkspaceByCanonicalID(gomock.Any(), "github.com/acme/api").
		Return(db.Workspace{ID: wsULID, CanonicalID: "github.com/acme/api"}, nil)
	q.EXPECT().TouchWorkspace(gomock.Any(), wsULID).Return(nil)

	id, err := newResolver(t, q).ResolveWorkspace(context.Background(), "github.com/acme/api", nil)
	require.NoError(t, err)
	assert.Equal(t, wsULID, id)
}

func TestResolveWorkspace_CreatesOnFirstSight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	q.EXPECT().
		GetWorkspaceByCanonicalID(gomock.Any(), "github.com/acme/api").
		Return(db.Workspace{}, pgx.ErrNoRows)

	var inserted db.InsertWorkspaceParams
	q.EXPECT().
		InsertWorkspace(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.InsertWorkspaceParams) (int64, error) {
			inserted = arg
			return 1, nil
		})

	id, err := newResolver(t, q).ResolveWorkspace(context.Background(), "github.com/acme/api",
		&identity.WorkspaceHints{DefaultBranch: "main"})
	require.NoError(t, err)

	assert.Equal(t, inserted.ID, id)
	assert.Len(t, id, 26, "workspace id should be a ULID")
	assert.Equal(t, "github.com/acme/api", inserted.CanonicalID)
	assert.Equal(t, "api", inserted.DisplayName)
	assert.Equal(t, pgtype.Text{String: "main", Valid: true}, inserted.DefaultBranch)
}

func TestResolveWorkspace_LostInsertRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	gomock.InOrder(
		q.EXPECT().
			GetWorkspaceByCanonicalID(gomock.Any(), "github.com/acme/api").
			Return(db.Workspace{}, pgx.ErrNoRows),
		q.EXPECT().
			InsertWorkspace(gomock.Any(), gomock.Any()).
			Return(int64(0), nil),
		q.EXPECT().
			GetWorkspaceByCanonicalID(gomock.Any(), "github.com/acme/api").
			Return(db.Workspace{ID: wsULID}, nil),
	)

	id, err := newResolver(t, q).ResolveWorkspace(context.Background(), "github.com/acme/api", nil)
	require.NoError(t, err)
	assert.Equal(t, wsULID, id, "loser of the race must converge on the winner's row")
}

func TestResolveWorkspace_HintOnlyFillsNullBranch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	q.EXPECT().
		GetWorkspaceByCanonicalID(gomock.Any(), "github.com/acme/api").
		Return(db.Workspace{ID: wsULID, DefaultBranch: pgtype.Text{String: "trunk", Valid: true}}, nil)
	q.EXPECT().TouchWorkspace(gomock.Any(), wsULID).Return(nil)
	// No SetWorkspaceDefaultBranch expected: the row already has a branch.

	_, err := newResolver(t, q).ResolveWorkspace(context.Background(), "github.com/acme/api",
		&identity.WorkspaceHints{DefaultBranch: "main"})
	require.NoError(t, err)
}

func TestResolveWorkspace_LookupError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := mock.NewMockQuerier(ctrl)
	q.EXPECT().
		GetWorkspaceByCanonicalID(gomock.Any(), "_unassociated").
		Return(db.Workspace{}, errors.New("connection refused"))

	_, err := newResolver(t, q).ResolveWorkspace(context.Background(), "_unassociated", nil)
	assert.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Unassociated", identity.DisplayName("_unassociated"))
	assert.Equal(t, "api", identity.DisplayName("github.com/acme/api"))
	assert.Equal(t, "local-project", identity.DisplayName("local-project"))
}
