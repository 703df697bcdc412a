package service

import (
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/devtrail/devtrail/internal/repository/db"
)

// API-facing shapes. Nullable DB columns become pointers so JSON consumers
// see null instead of zero values.

type Session struct {
	ID              string     `json:"id"`
	WorkspaceID     string     `json:"workspace_id"`
	DeviceID        string     `json:"device_id"`
	Lifecycle       string     `json:"lifecycle"`
	ParseStatus     string     `json:"parse_status"`
	Cwd             string     `json:"cwd"`
	GitBranch       *string    `json:"git_branch,omitempty"`
	GitRemote       *string    `json:"git_remote,omitempty"`
	Model           *string    `json:"model,omitempty"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	DurationMs      *int64     `json:"duration_ms,omitempty"`
	EndReason       *string    `json:"end_reason,omitempty"`
	CompactSequence int32      `json:"compact_sequence"`
	TranscriptS3Key *string    `json:"transcript_s3_key,omitempty"`
	Summary         *string    `json:"summary,omitempty"`
	CostEstimateUSD *float64   `json:"cost_estimate_usd,omitempty"`
}

type SessionStats struct {
	MessageCount     int64   `json:"message_count"`
	TokensIn         int64   `json:"tokens_in"`
	TokensOut        int64   `json:"tokens_out"`
	TokensCacheRead  int64   `json:"tokens_cache_read"`
	TokensCacheWrite int64   `json:"tokens_cache_write"`
	CostUSD          float64 `json:"cost_usd"`
}

type SessionDetail struct {
	Session
	Stats SessionStats `json:"stats"`
}

type TimelineBlock struct {
	ID           string          `json:"id"`
	Order        int32           `json:"order"`
	Type         string          `json:"type"`
	Text         *string         `json:"text,omitempty"`
	ToolName     *string         `json:"tool_name,omitempty"`
	ToolInput    json.RawMessage `json:"tool_input,omitempty"`
	ToolResultID *string         `json:"tool_result_id,omitempty"`
	ResultS3Key  *string         `json:"result_s3_key,omitempty"`
	IsError      bool            `json:"is_error"`
}

type TimelineMessage struct {
	ID              string          `json:"id"`
	LineNumber      int32           `json:"line_number"`
	Ordinal         int32           `json:"ordinal"`
	Role            string          `json:"role"`
	Model           *string         `json:"model,omitempty"`
	TokensIn        *int64          `json:"tokens_in,omitempty"`
	TokensOut       *int64          `json:"tokens_out,omitempty"`
	CostUSD         *float64        `json:"cost_usd,omitempty"`
	CompactSequence int32           `json:"compact_sequence"`
	IsCompacted     bool            `json:"is_compacted"`
	Timestamp       *time.Time      `json:"timestamp,omitempty"`
	Metadata        json.RawMessage `json:"metadata,omitempty"`
	Blocks          []TimelineBlock `json:"blocks"`
}

type GitActivity struct {
	ID           string     `json:"id"`
	WorkspaceID  string     `json:"workspace_id"`
	DeviceID     string     `json:"device_id"`
	SessionID    *string    `json:"session_id,omitempty"`
	Type         string     `json:"type"`
	Branch       string     `json:"branch"`
	CommitSha    *string    `json:"commit_sha,omitempty"`
	Message      *string    `json:"message,omitempty"`
	Insertions   *int32     `json:"insertions,omitempty"`
	Deletions    *int32     `json:"deletions,omitempty"`
	FilesChanged *int32     `json:"files_changed,omitempty"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
}

type Workspace struct {
	ID            string     `json:"id"`
	CanonicalID   string     `json:"canonical_id"`
	DisplayName   string     `json:"display_name"`
	DefaultBranch *string    `json:"default_branch,omitempty"`
	LastSeenAt    *time.Time `json:"last_seen_at,omitempty"`
}

type WorkspaceDevice struct {
	ID         string     `json:"id"`
	Name       *string    `json:"name,omitempty"`
	Type       *string    `json:"type,omitempty"`
	LocalPath  string     `json:"local_path"`
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`
}

func toSession(row db.Session) Session {
	return Session{
		ID:              row.ID,
		WorkspaceID:     row.WorkspaceID,
		DeviceID:        row.DeviceID,
		Lifecycle:       row.Lifecycle,
		ParseStatus:     row.ParseStatus,
		Cwd:             row.Cwd,
		GitBranch:       textPtr(row.GitBranch),
		GitRemote:       textPtr(row.GitRemote),
		Model:           textPtr(row.Model),
		StartedAt:       row.StartedAt.Time,
		EndedAt:         tsPtr(row.EndedAt),
		DurationMs:      int8Ptr(row.DurationMs),
		EndReason:       textPtr(row.EndReason),
		CompactSequence: row.CompactSequence,
		TranscriptS3Key: textPtr(row.TranscriptS3Key),
		Summary:         textPtr(row.Summary),
		CostEstimateUSD: float8Ptr(row.CostEstimateUsd),
	}
}

func toStats(row db.GetSessionStatsRow) SessionStats {
	return SessionStats{
		MessageCount:     row.MessageCount,
		TokensIn:         row.TokensIn,
		TokensOut:        row.TokensOut,
		TokensCacheRead:  row.TokensCacheRead,
		TokensCacheWrite: row.TokensCacheWrite,
		CostUSD:          row.CostUsd,
	}
}

func toTimelineMessage(row db.TranscriptMessage) TimelineMessage {
	return TimelineMessage{
		ID:              row.ID,
		LineNumber:      row.LineNumber,
		Ordinal:         row.Ordinal,
		Role:            row.Role,
		Model:           textPtr(row.Model),
		TokensIn:        int8Ptr(row.TokensIn),
		TokensOut:       int8Ptr(row.TokensOut),
		CostUSD:         float8Ptr(row.CostUsd),
		CompactSequence: row.CompactSequence,
		IsCompacted:     row.IsCompacted,
		Timestamp:       tsPtr(row.Timestamp),
		Metadata:        row.Metadata,
		Blocks:          []TimelineBlock{},
	}
}

func toTimelineBlock(row db.ContentBlock) TimelineBlock {
	return TimelineBlock{
		ID:           row.ID,
		Order:        row.BlockOrder,
		Type:         row.BlockType,
		Text:         textPtr(row.ContentText),
		ToolName:     textPtr(row.ToolName),
		ToolInput:    row.ToolInput,
		ToolResultID: textPtr(row.ToolResultID),
		ResultS3Key:  textPtr(row.ResultS3Key),
		IsError:      row.IsError,
	}
}

func toGitActivity(row db.GitActivity) GitActivity {
	return GitActivity{
		ID:           row.ID,
		WorkspaceID:  row.WorkspaceID,
		DeviceID:     row.DeviceID,
		SessionID:    textPtr(row.SessionID),
		Type:         row.Type,
		Branch:       row.Branch,
		CommitSha:    textPtr(row.CommitSha),
		Message:      textPtr(row.Message),
		Insertions:   int4Ptr(row.Insertions),
		Deletions:    int4Ptr(row.Deletions),
		FilesChanged: int4Ptr(row.FilesChanged),
		Timestamp:    tsPtr(row.Timestamp),
	}
}

func toWorkspace(row db.Workspace) Workspace {
	return Workspace{
		ID:            row.ID,
		CanonicalID:   row.CanonicalID,
		DisplayName:   row.DisplayName,
		DefaultBranch: textPtr(row.DefaultBranch),
		LastSeenAt:    tsPtr(row.LastSeenAt),
	}
}

func toWorkspaceDevice(row db.ListWorkspaceDevicesRow) WorkspaceDevice {
	return WorkspaceDevice{
		ID:         row.ID,
		Name:       textPtr(row.Name),
		Type:       textPtr(row.Type),
		LocalPath:  row.LocalPath,
		LastSeenAt: tsPtr(row.LastSeenAt),
	}
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return &t.String
}

func tsPtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

func int8Ptr(v pgtype.Int8) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func int4Ptr(v pgtype.Int4) *int32 {
	if !v.Valid {
		return nil
	}
	return &v.Int32
}

func float8Ptr(v pgtype.Float8) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
