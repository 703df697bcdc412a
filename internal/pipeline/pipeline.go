// Package pipeline post-processes ended sessions: fetch the raw transcript
// from the object store, parse it, persist messages and blocks, then
// optionally summarize. Work arrives on a bounded queue served by a fixed
// worker pool; submissions to a full queue are dropped because every trigger
// is re-derivable from session state.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/devtrail/devtrail/internal/broadcast"
	"github.com/devtrail/devtrail/internal/config"
	"github.com/devtrail/devtrail/internal/objectstore"
	"github.com/devtrail/devtrail/internal/repository/db"
	"github.com/devtrail/devtrail/internal/summary"
)

// oversizedResultBytes is the threshold above which a tool result body is
// moved to the object store instead of the content_blocks row.
const oversizedResultBytes = 64 * 1024

// Per-step deadlines. A step that times out fails at its boundary, never
// mid-transaction.
const (
	fetchTimeout   = 60 * time.Second
	persistTimeout = 60 * time.Second
	summaryTimeout = 120 * time.Second
)

// summaryExcerptLimit bounds how many messages feed the summarizer.
const summaryExcerptLimit = 50

// Pipeline is the bounded-concurrency transcript processor.
type Pipeline struct {
	querier  db.Querier
	messages MessageStore
	store    objectstore.Store
	gen      summary.Generator // nil disables the summarize step
	bcast    *broadcast.Broadcaster
	logger   *zap.Logger

	queue   chan string
	workers int
	wg      sync.WaitGroup

	dropped     metric.Int64Counter
	regressions metric.Int64Counter
}

func New(querier db.Querier, messages MessageStore, store objectstore.Store, gen summary.Generator, bcast *broadcast.Broadcaster, cfg config.PipelineConfig, logger *zap.Logger) *Pipeline {
	meter := otel.Meter("devtrail/pipeline")
	dropped, _ := meter.Int64Counter("pipeline_enqueue_dropped_total",
		metric.WithDescription("Sessions dropped because the pipeline queue was full"))
	regressions, _ := meter.Int64Counter("pipeline_compact_regressions_total",
		metric.WithDescription("Transcript lines that tried to lower the compact sequence"))

	return &Pipeline{
		querier:     querier,
		messages:    messages,
		store:       store,
		gen:         gen,
		bcast:       bcast,
		logger:      logger,
		queue:       make(chan string, cfg.QueueCapacity),
		workers:     cfg.MaxConcurrency,
		dropped:     dropped,
		regressions: regressions,
	}
}

// Start launches the worker pool. Workers drain until the context is
// canceled; Wait blocks until they exit.
func (p *Pipeline) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case sessionID := <-p.queue:
					p.Run(ctx, sessionID)
				}
			}
		}()
	}
}

func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// Enqueue submits a session without blocking. A full queue drops the
// submission; a later trigger (session.end replay, re-upload, or operator
// action) re-derives it from session state.
func (p *Pipeline) Enqueue(sessionID string) bool {
	select {
	case p.queue <- sessionID:
		return true
	default:
		p.logger.Warn("pipeline queue full, dropping session", zap.String("session_id", sessionID))
		p.dropped.Add(context.Background(), 1)
		return false
	}
}

// Run executes the pipeline synchronously for one session. Exported so the
// upload route (and tests) can bypass the queue. Every step is guarded by
// the lifecycle state machine, so reruns are safe.
func (p *Pipeline) Run(ctx context.Context, sessionID string) {
	sess, err := p.querier.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.logger.Warn("pipeline triggered for unknown session", zap.String("session_id", sessionID))
		} else {
			p.logger.Error("failed to load session", zap.String("session_id", sessionID), zap.Error(err))
		}
		return
	}

	switch sess.Lifecycle {
	case "ended":
		if !p.parseStage(ctx, sess) {
			return
		}
		p.summarizeStage(ctx, sessionID, sess.WorkspaceID)
	case "parsed":
		// Retry path after a summary failure or restart.
		p.summarizeStage(ctx, sessionID, sess.WorkspaceID)
	default:
		p.logger.Debug("pipeline skip, session not processable",
			zap.String("session_id", sessionID),
			zap.String("lifecycle", sess.Lifecycle),
		)
	}
}

// parseStage runs fetch, parse, persist, and the ended→parsed transition.
// Fetch and parse failures mark the session failed; persist failures leave
// it ended so a later trigger retries.
func (p *Pipeline) parseStage(ctx context.Context, sess db.Session) bool {
	sessionID := sess.ID
	if !sess.TranscriptS3Key.Valid {
		p.logger.Warn("ended session has no transcript key", zap.String("session_id", sessionID))
		return false
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	raw, err := p.store.Get(fetchCtx, sess.TranscriptS3Key.String)
	cancel()
	if err != nil {
		p.logger.Error("transcript fetch failed", zap.String("session_id", sessionID), zap.Error(err))
		p.fail(ctx, sessionID, sess.WorkspaceID, "fetch_failed")
		return false
	}

	result, err := Parse(bytes.NewReader(raw), int(sess.CompactSequence))
	if err != nil {
		p.logger.Error("transcript parse failed", zap.String("session_id", sessionID), zap.Error(err))
		p.fail(ctx, sessionID, sess.WorkspaceID, "parse_failed")
		return false
	}
	if result.Regressions > 0 {
		p.regressions.Add(ctx, int64(result.Regressions))
		p.logger.Warn("compact sequence regressions refused",
			zap.String("session_id", sessionID),
			zap.Int("count", result.Regressions),
		)
	}

	if err := p.externalizeOversized(ctx, sessionID, result.Messages); err != nil {
		p.logger.Error("artifact upload failed", zap.String("session_id", sessionID), zap.Error(err))
		return false // retryable, session stays ended
	}

	persistCtx, cancel := context.WithTimeout(ctx, persistTimeout)
	err = p.messages.PersistMessages(persistCtx, sessionID, result.Messages)
	cancel()
	if err != nil {
		p.logger.Error("transcript persist failed", zap.String("session_id", sessionID), zap.Error(err))
		return false // retryable, session stays ended
	}

	rows, err := p.querier.MarkSessionParsed(ctx, sessionID)
	if err != nil {
		p.logger.Error("parsed transition failed", zap.String("session_id", sessionID), zap.Error(err))
		return false
	}
	if rows == 0 {
		p.logger.Debug("session no longer ended, skipping", zap.String("session_id", sessionID))
		return false
	}

	update := broadcast.SessionUpdate{
		SessionID:   sessionID,
		WorkspaceID: sess.WorkspaceID,
		Lifecycle:   "parsed",
	}
	if stats, err := p.querier.GetSessionStats(ctx, sessionID); err != nil {
		p.logger.Warn("failed to load stats for parsed broadcast", zap.String("session_id", sessionID), zap.Error(err))
	} else {
		update.Stats = &broadcast.SessionStats{
			MessageCount:     stats.MessageCount,
			TokensIn:         stats.TokensIn,
			TokensOut:        stats.TokensOut,
			TokensCacheRead:  stats.TokensCacheRead,
			TokensCacheWrite: stats.TokensCacheWrite,
			CostUSD:          stats.CostUsd,
		}
	}
	p.bcast.BroadcastSessionUpdate(update)
	return true
}

// externalizeOversized moves large tool-result bodies into the object store,
// leaving only the artifact key on the block.
func (p *Pipeline) externalizeOversized(ctx context.Context, sessionID string, msgs []Message) error {
	for mi := range msgs {
		for bi := range msgs[mi].Blocks {
			block := &msgs[mi].Blocks[bi]
			if block.Type != "tool_result" || len(block.Text) <= oversizedResultBytes {
				continue
			}
			key := objectstore.ArtifactKey(sessionID, ulid.Make().String())
			if err := p.store.Put(ctx, key, "text/plain", []byte(block.Text)); err != nil {
				return err
			}
			block.ResultS3Key = key
			block.Text = ""
		}
	}
	return nil
}

// summarizeStage generates and persists the session summary, then moves
// parsed→summarized. Failures leave the session parsed; the next trigger
// retries.
func (p *Pipeline) summarizeStage(ctx context.Context, sessionID, workspaceID string) {
	if p.gen == nil {
		return
	}

	req, err := p.buildSummaryRequest(ctx, sessionID)
	if err != nil {
		p.logger.Warn("failed to assemble summary input", zap.String("session_id", sessionID), zap.Error(err))
		return
	}

	sumCtx, cancel := context.WithTimeout(ctx, summaryTimeout)
	result, err := p.gen.Summarize(sumCtx, req)
	cancel()
	if err != nil {
		p.logger.Warn("summary generation failed", zap.String("session_id", sessionID), zap.Error(err))
		return
	}

	stats, err := p.querier.GetSessionStats(ctx, sessionID)
	if err != nil {
		p.logger.Warn("failed to load session stats", zap.String("session_id", sessionID), zap.Error(err))
	}

	err = p.querier.UpdateSessionSummary(ctx, db.UpdateSessionSummaryParams{
		ID:              sessionID,
		Summary:         pgtype.Text{String: result.Summary, Valid: true},
		CostEstimateUsd: pgtype.Float8{Float64: stats.CostUsd, Valid: true},
	})
	if err != nil {
		p.logger.Error("failed to persist summary", zap.String("session_id", sessionID), zap.Error(err))
		return
	}

	rows, err := p.querier.MarkSessionSummarized(ctx, sessionID)
	if err != nil || rows == 0 {
		p.logger.Warn("summarized transition skipped", zap.String("session_id", sessionID), zap.Error(err))
		return
	}

	p.bcast.BroadcastSessionUpdate(broadcast.SessionUpdate{
		SessionID:   sessionID,
		WorkspaceID: workspaceID,
		Lifecycle:   "summarized",
		Summary:     &result.Summary,
	})
}

// buildSummaryRequest loads a bounded selection of persisted messages and
// flattens their text blocks into excerpts.
func (p *Pipeline) buildSummaryRequest(ctx context.Context, sessionID string) (summary.Request, error) {
	sess, err := p.querier.GetSession(ctx, sessionID)
	if err != nil {
		return summary.Request{}, err
	}

	msgs, err := p.querier.ListSessionMessages(ctx, db.ListSessionMessagesParams{
		SessionID: sessionID,
		Limit:     summaryExcerptLimit,
		Offset:    0,
	})
	if err != nil {
		return summary.Request{}, err
	}
	blocks, err := p.querier.ListSessionContentBlocks(ctx, sessionID)
	if err != nil {
		return summary.Request{}, err
	}

	textByMessage := make(map[string][]string)
	for _, block := range blocks {
		if block.BlockType == "text" && block.ContentText.Valid {
			textByMessage[block.MessageID] = append(textByMessage[block.MessageID], block.ContentText.String)
		}
	}

	req := summary.Request{SessionID: sessionID}
	if sess.GitBranch.Valid {
		req.GitBranch = sess.GitBranch.String
	}
	for _, msg := range msgs {
		texts := textByMessage[msg.ID]
		if len(texts) == 0 {
			continue
		}
		req.Excerpts = append(req.Excerpts, summary.Excerpt{
			Role: msg.Role,
			Text: strings.Join(texts, "\n"),
		})
	}
	return req, nil
}

// fail transitions any live session to failed and broadcasts it.
func (p *Pipeline) fail(ctx context.Context, sessionID, workspaceID, reason string) {
	rows, err := p.querier.MarkSessionFailed(ctx, db.MarkSessionFailedParams{
		ID:          sessionID,
		ParseStatus: reason,
	})
	if err != nil {
		p.logger.Error("failed transition errored", zap.String("session_id", sessionID), zap.Error(err))
		return
	}
	if rows > 0 {
		p.bcast.BroadcastSessionUpdate(broadcast.SessionUpdate{
			SessionID:   sessionID,
			WorkspaceID: workspaceID,
			Lifecycle:   "failed",
		})
	}
}
