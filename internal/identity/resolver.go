// Package identity maps the canonical workspace ids and device ids reported
// by clients onto server-side rows. Workspaces are created on first sight, so
// ingest never rejects an event for referencing an unknown workspace.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/devtrail/devtrail/internal/repository/db"
)

// WorkspaceHints carries optional metadata gleaned from the triggering event,
// applied only when the workspace row has no value yet.
type WorkspaceHints struct {
	DefaultBranch string
}

// Resolver resolves canonical ids to workspace ULIDs and keeps device and
// workspace-device link rows fresh.
type Resolver struct {
	querier db.Querier
	logger  *zap.Logger
}

func NewResolver(querier db.Querier, logger *zap.Logger) *Resolver {
	return &Resolver{querier: querier, logger: logger}
}

// ResolveWorkspace returns the ULID of the workspace identified by the
// client's canonical id (e.g. "github.com/acme/api", or "_unassociated" for
// sessions outside any git repo), inserting the row on first sight. Two
// processors racing on the same canonical id both converge on the winner's
// row via the unique constraint.
func (r *Resolver) ResolveWorkspace(ctx context.Context, canonicalID string, hints *WorkspaceHints) (string, error) {
	ws, err := r.querier.GetWorkspaceByCanonicalID(ctx, canonicalID)
	if err == nil {
		r.applyHints(ctx, ws, hints)
		if err := r.querier.TouchWorkspace(ctx, ws.ID); err != nil {
			r.logger.Warn("failed to touch workspace", zap.String("workspace_id", ws.ID), zap.Error(err))
		}
		return ws.ID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("lookup workspace %q: %w", canonicalID, err)
	}

	id := ulid.Make().String()
	params := db.InsertWorkspaceParams{
		ID:          id,
		CanonicalID: canonicalID,
		DisplayName: DisplayName(canonicalID),
	}
	if hints != nil && hints.DefaultBranch != "" {
		params.DefaultBranch = pgtype.Text{String: hints.DefaultBranch, Valid: true}
	}

	rows, err := r.querier.InsertWorkspace(ctx, params)
	if err != nil {
		return "", fmt.Errorf("insert workspace %q: %w", canonicalID, err)
	}
	if rows == 0 {
		// Lost the insert race; the other processor's row wins.
		ws, err = r.querier.GetWorkspaceByCanonicalID(ctx, canonicalID)
		if err != nil {
			return "", fmt.Errorf("re-lookup workspace %q: %w", canonicalID, err)
		}
		return ws.ID, nil
	}

	r.logger.Info("workspace created",
		zap.String("workspace_id", id),
		zap.String("canonical_id", canonicalID),
	)
	return id, nil
}

func (r *Resolver) applyHints(ctx context.Context, ws db.Workspace, hints *WorkspaceHints) {
	if hints == nil || hints.DefaultBranch == "" || ws.DefaultBranch.Valid {
		return
	}
	err := r.querier.SetWorkspaceDefaultBranch(ctx, db.SetWorkspaceDefaultBranchParams{
		ID:            ws.ID,
		DefaultBranch: pgtype.Text{String: hints.DefaultBranch, Valid: true},
	})
	if err != nil {
		r.logger.Warn("failed to set workspace default branch", zap.String("workspace_id", ws.ID), zap.Error(err))
	}
}

// EnsureDevice upserts the device row and bumps its last-seen timestamp.
func (r *Resolver) EnsureDevice(ctx context.Context, deviceID string) error {
	if err := r.querier.UpsertDevice(ctx, deviceID); err != nil {
		return fmt.Errorf("upsert device %q: %w", deviceID, err)
	}
	return nil
}

// EnsureLink upserts the workspace-device association, recording the local
// checkout path the device reported.
func (r *Resolver) EnsureLink(ctx context.Context, workspaceID, deviceID, localPath string) error {
	err := r.querier.UpsertWorkspaceDevice(ctx, db.UpsertWorkspaceDeviceParams{
		WorkspaceID: workspaceID,
		DeviceID:    deviceID,
		LocalPath:   localPath,
	})
	if err != nil {
		return fmt.Errorf("link workspace %q to device %q: %w", workspaceID, deviceID, err)
	}
	return nil
}

// DisplayName derives a human-readable name from a canonical id: the path
// tail for repo-style ids, "Unassociated" for the catch-all workspace.
func DisplayName(canonicalID string) string {
	if canonicalID == "_unassociated" {
		return "Unassociated"
	}
	if idx := strings.LastIndex(canonicalID, "/"); idx >= 0 && idx < len(canonicalID)-1 {
		return canonicalID[idx+1:]
	}
	return canonicalID
}
