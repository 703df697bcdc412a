package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nats-io/nats.go"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db   Pinger
	nats *nats.Conn
}

func NewHealthHandler(db Pinger, nc *nats.Conn) *HealthHandler {
	return &HealthHandler{db: db, nats: nc}
}

func (h *HealthHandler) Register(e *echo.Echo) {
	e.GET("/api/health", h.Health)
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Nats     string `json:"nats"`
}

func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Database: "ok", Nats: "ok"}
	status := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		resp.Database = "unreachable"
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	if h.nats == nil || !h.nats.IsConnected() {
		resp.Nats = "disconnected"
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, resp)
}
