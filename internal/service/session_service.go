// Package service is the read side of the API: session listings, detail,
// timeline, git activity, and workspace views. Session detail is cached in
// Redis with a short TTL so dashboard polling does not hammer Postgres.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/devtrail/devtrail/internal/repository/db"
)

// Sentinel errors the HTTP layer maps to status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

const (
	sessionCacheTTL = 30 * time.Second

	defaultPageSize = 50
	maxPageSize     = 200
)

// SessionService serves read queries. A nil Redis client disables caching.
type SessionService struct {
	querier db.Querier
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewSessionService(querier db.Querier, rdb *redis.Client, logger *zap.Logger) *SessionService {
	return &SessionService{querier: querier, rdb: rdb, logger: logger}
}

// ListFilter narrows ListSessions. Empty fields match everything.
type ListFilter struct {
	WorkspaceID string
	Lifecycle   string
	Limit       int
	Offset      int
}

func (s *SessionService) ListSessions(ctx context.Context, filter ListFilter) ([]Session, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		return nil, fmt.Errorf("%w: limit exceeds %d", ErrInvalidInput, maxPageSize)
	}
	if filter.Offset < 0 {
		return nil, fmt.Errorf("%w: negative offset", ErrInvalidInput)
	}

	rows, err := s.querier.ListSessions(ctx, db.ListSessionsParams{
		WorkspaceID: optionalText(filter.WorkspaceID),
		Lifecycle:   optionalText(filter.Lifecycle),
		Limit:       int32(limit),
		Offset:      int32(filter.Offset),
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	out := make([]Session, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSession(row))
	}
	return out, nil
}

// GetSessionDetail returns the session plus aggregate message stats,
// read-through cached.
func (s *SessionService) GetSessionDetail(ctx context.Context, id string) (SessionDetail, error) {
	if cached, ok := s.cacheGet(ctx, id); ok {
		return cached, nil
	}

	row, err := s.querier.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SessionDetail{}, ErrNotFound
		}
		return SessionDetail{}, fmt.Errorf("get session %s: %w", id, err)
	}
	stats, err := s.querier.GetSessionStats(ctx, id)
	if err != nil {
		return SessionDetail{}, fmt.Errorf("get session stats %s: %w", id, err)
	}

	detail := SessionDetail{Session: toSession(row), Stats: toStats(stats)}
	s.cacheSet(ctx, id, detail)
	return detail, nil
}

// Invalidate drops the cached detail after a lifecycle transition.
func (s *SessionService) Invalidate(ctx context.Context, id string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, sessionCacheKey(id)).Err(); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("session_id", id), zap.Error(err))
	}
}

// Timeline returns the parsed messages with their content blocks, in
// ordinal order.
func (s *SessionService) Timeline(ctx context.Context, id string, limit, offset int) ([]TimelineMessage, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		return nil, fmt.Errorf("%w: limit exceeds %d", ErrInvalidInput, maxPageSize)
	}

	if _, err := s.querier.GetSession(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	msgs, err := s.querier.ListSessionMessages(ctx, db.ListSessionMessagesParams{
		SessionID: id,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, fmt.Errorf("list messages for %s: %w", id, err)
	}
	blocks, err := s.querier.ListSessionContentBlocks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list blocks for %s: %w", id, err)
	}

	blocksByMessage := make(map[string][]TimelineBlock)
	for _, block := range blocks {
		blocksByMessage[block.MessageID] = append(blocksByMessage[block.MessageID], toTimelineBlock(block))
	}

	out := make([]TimelineMessage, 0, len(msgs))
	for _, msg := range msgs {
		tm := toTimelineMessage(msg)
		if bs, ok := blocksByMessage[msg.ID]; ok {
			tm.Blocks = bs
		}
		out = append(out, tm)
	}
	return out, nil
}

func (s *SessionService) SessionGitActivity(ctx context.Context, id string) ([]GitActivity, error) {
	if _, err := s.querier.GetSession(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	rows, err := s.querier.ListSessionGitActivity(ctx, pgtype.Text{String: id, Valid: true})
	if err != nil {
		return nil, fmt.Errorf("list git activity for %s: %w", id, err)
	}
	out := make([]GitActivity, 0, len(rows))
	for _, row := range rows {
		out = append(out, toGitActivity(row))
	}
	return out, nil
}

func (s *SessionService) ListWorkspaces(ctx context.Context) ([]Workspace, error) {
	rows, err := s.querier.ListWorkspaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	out := make([]Workspace, 0, len(rows))
	for _, row := range rows {
		out = append(out, toWorkspace(row))
	}
	return out, nil
}

func (s *SessionService) WorkspaceDevices(ctx context.Context, workspaceID string) ([]WorkspaceDevice, error) {
	if _, err := s.querier.GetWorkspace(ctx, workspaceID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get workspace %s: %w", workspaceID, err)
	}

	rows, err := s.querier.ListWorkspaceDevices(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list devices for %s: %w", workspaceID, err)
	}
	out := make([]WorkspaceDevice, 0, len(rows))
	for _, row := range rows {
		out = append(out, toWorkspaceDevice(row))
	}
	return out, nil
}

func sessionCacheKey(id string) string {
	return "session:" + id
}

func (s *SessionService) cacheGet(ctx context.Context, id string) (SessionDetail, bool) {
	if s.rdb == nil {
		return SessionDetail{}, false
	}
	raw, err := s.rdb.Get(ctx, sessionCacheKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("cache read failed", zap.String("session_id", id), zap.Error(err))
		}
		return SessionDetail{}, false
	}
	var detail SessionDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return SessionDetail{}, false
	}
	return detail, true
}

func (s *SessionService) cacheSet(ctx context.Context, id string, detail SessionDetail) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(detail)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, sessionCacheKey(id), raw, sessionCacheTTL).Err(); err != nil {
		s.logger.Warn("cache write failed", zap.String("session_id", id), zap.Error(err))
	}
}

func optionalText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}
