package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/devtrail/devtrail/internal/objectstore"
	"github.com/devtrail/devtrail/internal/repository/db"
)

const maxTranscriptBytes = 200 << 20 // 200 MiB

// Enqueuer hands a session id to the transcript pipeline.
type Enqueuer interface {
	Enqueue(sessionID string) bool
}

// TranscriptHandler receives raw JSONL transcripts. Uploads race the
// session.end event: whichever side observes both the stored key and the
// ended lifecycle triggers the parse pipeline.
type TranscriptHandler struct {
	querier  db.Querier
	store    objectstore.Store
	pipeline Enqueuer
	logger   *zap.Logger
}

func NewTranscriptHandler(querier db.Querier, store objectstore.Store, pipeline Enqueuer, logger *zap.Logger) *TranscriptHandler {
	return &TranscriptHandler{querier: querier, store: store, pipeline: pipeline, logger: logger}
}

func (h *TranscriptHandler) Register(e *echo.Echo) {
	e.POST("/api/sessions/:id/transcript/upload", h.Upload)
}

type uploadResponse struct {
	Status            string `json:"status"`
	S3Key             string `json:"s3_key"`
	PipelineTriggered bool   `json:"pipeline_triggered,omitempty"`
}

func (h *TranscriptHandler) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("id")

	if c.Request().ContentLength <= 0 {
		return errResponse(c, http.StatusBadRequest, "empty transcript body")
	}
	if c.Request().ContentLength > maxTranscriptBytes {
		return errResponse(c, http.StatusRequestEntityTooLarge, "transcript exceeds 200MiB")
	}

	sess, err := h.querier.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errResponse(c, http.StatusNotFound, "session not found")
		}
		h.logger.Error("session lookup failed", zap.String("session_id", sessionID), zap.Error(err))
		return errResponse(c, http.StatusInternalServerError, "internal error")
	}
	if sess.TranscriptS3Key.Valid {
		return c.JSON(http.StatusOK, uploadResponse{Status: "already_uploaded", S3Key: sess.TranscriptS3Key.String})
	}

	ws, err := h.querier.GetWorkspace(ctx, sess.WorkspaceID)
	if err != nil {
		h.logger.Error("workspace lookup failed", zap.String("workspace_id", sess.WorkspaceID), zap.Error(err))
		return errResponse(c, http.StatusInternalServerError, "internal error")
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxTranscriptBytes+1))
	if err != nil {
		return errResponse(c, http.StatusBadRequest, "failed to read transcript body")
	}
	if len(body) == 0 {
		return errResponse(c, http.StatusBadRequest, "empty transcript body")
	}
	if len(body) > maxTranscriptBytes {
		return errResponse(c, http.StatusRequestEntityTooLarge, "transcript exceeds 200MiB")
	}

	key := objectstore.TranscriptKey(ws.CanonicalID, sessionID)
	if err := h.store.Put(ctx, key, "application/x-ndjson", body); err != nil {
		h.logger.Error("transcript upload failed", zap.String("session_id", sessionID), zap.Error(err))
		return errResponse(c, http.StatusInternalServerError, "failed to store transcript")
	}

	lifecycle, err := h.querier.SetSessionTranscriptKey(ctx, db.SetSessionTranscriptKeyParams{
		ID:              sessionID,
		TranscriptS3Key: pgtype.Text{String: key, Valid: true},
	})
	if err != nil {
		h.logger.Error("transcript key update failed", zap.String("session_id", sessionID), zap.Error(err))
		return errResponse(c, http.StatusInternalServerError, "failed to record transcript")
	}

	triggered := false
	if lifecycle == "ended" {
		triggered = h.pipeline.Enqueue(sessionID)
		if !triggered {
			h.logger.Warn("pipeline queue full, parse deferred to reaper", zap.String("session_id", sessionID))
		}
	}

	return c.JSON(http.StatusAccepted, uploadResponse{Status: "uploaded", S3Key: key, PipelineTriggered: triggered})
}
