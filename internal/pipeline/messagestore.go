package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/devtrail/devtrail/internal/repository/db"
)

// MessageStore persists a parsed transcript in one transaction so the
// pipeline stays unit-testable without a live pool.
type MessageStore interface {
	PersistMessages(ctx context.Context, sessionID string, msgs []Message) error
}

type pgMessageStore struct {
	pool    *pgxpool.Pool
	queries *db.Queries
}

func NewMessageStore(pool *pgxpool.Pool) MessageStore {
	return &pgMessageStore{pool: pool, queries: db.New(pool)}
}

// PersistMessages inserts messages and their blocks atomically. The unique
// (session_id, ordinal) constraint makes retries idempotent: a conflicting
// message is skipped together with its blocks, because the surviving row
// already carries its own.
func (s *pgMessageStore) PersistMessages(ctx context.Context, sessionID string, msgs []Message) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin persist tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := s.queries.WithTx(tx)
	for _, msg := range msgs {
		messageID := ulid.Make().String()
		metadata, err := json.Marshal(msg.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata for ordinal %d: %w", msg.Ordinal, err)
		}

		rows, err := qtx.InsertTranscriptMessage(ctx, db.InsertTranscriptMessageParams{
			ID:               messageID,
			SessionID:        sessionID,
			LineNumber:       int32(msg.LineNumber),
			Ordinal:          int32(msg.Ordinal),
			Role:             msg.Role,
			Model:            textOrNull(msg.Model),
			TokensIn:         int8If(msg.TokensIn, msg.HasUsage),
			TokensOut:        int8If(msg.TokensOut, msg.HasUsage),
			TokensCacheRead:  int8If(msg.TokensCacheRead, msg.HasUsage),
			TokensCacheWrite: int8If(msg.TokensCacheWrite, msg.HasUsage),
			CostUsd:          float8If(msg.CostUSD, msg.HasCost),
			CompactSequence:  int32(msg.CompactSequence),
			IsCompacted:      msg.IsCompacted,
			Timestamp:        tsOrNull(msg.Timestamp),
			Metadata:         metadata,
		})
		if err != nil {
			return fmt.Errorf("insert message ordinal %d: %w", msg.Ordinal, err)
		}
		if rows == 0 {
			// Replayed ordinal; the existing message owns its blocks.
			continue
		}

		for _, block := range msg.Blocks {
			err := qtx.InsertContentBlock(ctx, db.InsertContentBlockParams{
				ID:           ulid.Make().String(),
				MessageID:    messageID,
				SessionID:    sessionID,
				BlockOrder:   int32(block.Order),
				BlockType:    block.Type,
				ContentText:  textOrNull(block.Text),
				ToolName:     textOrNull(block.ToolName),
				ToolInput:    block.ToolInput,
				ToolResultID: textOrNull(block.ToolResultID),
				ResultS3Key:  textOrNull(block.ResultS3Key),
				IsError:      block.IsError,
			})
			if err != nil {
				return fmt.Errorf("insert block %d of ordinal %d: %w", block.Order, msg.Ordinal, err)
			}
		}
	}

	return tx.Commit(ctx)
}

func textOrNull(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func int8If(v int64, ok bool) pgtype.Int8 {
	if !ok {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: v, Valid: true}
}

func float8If(v float64, ok bool) pgtype.Float8 {
	if !ok {
		return pgtype.Float8{}
	}
	return pgtype.Float8{Float64: v, Valid: true}
}

func tsOrNull(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}
