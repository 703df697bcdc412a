package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/devtrail/devtrail/internal/events"
)

const maxBatchSize = 100

// Appender is the durable log's producer interface.
type Appender interface {
	Append(ctx context.Context, env *events.Envelope) error
}

// IngestHandler accepts event batches from devtrail clients. Validation is
// all-or-nothing per batch: any invalid envelope rejects the whole request
// with per-index detail, so clients never half-submit.
type IngestHandler struct {
	log    Appender
	logger *zap.Logger
}

func NewIngestHandler(log Appender, logger *zap.Logger) *IngestHandler {
	return &IngestHandler{log: log, logger: logger}
}

func (h *IngestHandler) Register(e *echo.Echo) {
	e.POST("/api/events/ingest", h.Ingest)
}

type ingestRequest struct {
	Events []json.RawMessage `json:"events"`
}

type ingestError struct {
	Index    int      `json:"index"`
	Problems []string `json:"problems"`
}

type ingestAccepted struct {
	Ingested int `json:"ingested"`
}

func (h *IngestHandler) Ingest(c echo.Context) error {
	var req ingestRequest
	if err := c.Bind(&req); err != nil {
		return errResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if len(req.Events) == 0 {
		return errResponse(c, http.StatusBadRequest, "events must contain at least one event")
	}
	if len(req.Events) > maxBatchSize {
		return errResponse(c, http.StatusBadRequest, fmt.Sprintf("batch exceeds %d events", maxBatchSize))
	}

	envelopes := make([]*events.Envelope, 0, len(req.Events))
	var invalid []ingestError
	for i, raw := range req.Events {
		env, err := events.Decode(raw)
		if err != nil {
			var verr *events.ValidationError
			if errors.As(err, &verr) {
				invalid = append(invalid, ingestError{Index: i, Problems: verr.Problems})
			} else {
				invalid = append(invalid, ingestError{Index: i, Problems: []string{err.Error()}})
			}
			continue
		}
		envelopes = append(envelopes, env)
	}
	if len(invalid) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"errors": invalid})
	}

	ctx := c.Request().Context()
	for _, env := range envelopes {
		if err := h.log.Append(ctx, env); err != nil {
			// Already-appended events are harmless: ids are idempotent
			// downstream, so the client can retry the whole batch.
			h.logger.Error("event append failed", zap.String("event_id", env.ID), zap.Error(err))
			return errResponse(c, http.StatusInternalServerError, "failed to persist events")
		}
	}

	return c.JSON(http.StatusAccepted, ingestAccepted{Ingested: len(envelopes)})
}
