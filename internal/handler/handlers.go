// Package handler holds the HTTP surface: batch ingest, transcript upload,
// and the read API consumed by dashboards.
package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/devtrail/devtrail/internal/service"
)

// ── Shared error response helper ─────────────────────────────────────────

type errResp struct {
	Error string `json:"error"`
}

func errResponse(c echo.Context, status int, msg string) error {
	return c.JSON(status, errResp{Error: msg})
}

func handleSvcError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return errResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		return errResponse(c, http.StatusBadRequest, err.Error())
	default:
		return errResponse(c, http.StatusInternalServerError, "internal error")
	}
}

// ── Bearer auth middleware ───────────────────────────────────────────────

// BearerAuth guards every /api route with the shared API token. The health
// probe is open, and the WebSocket endpoint authenticates itself after the
// upgrade so it can answer with a proper close code. Comparison is
// constant-time.
func BearerAuth(apiKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Path() {
			case "/api/health", "/ws":
				return next(c)
			}

			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				return errResponse(c, http.StatusUnauthorized, "missing bearer token")
			}
			token := auth[len(prefix):]
			if subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
				return errResponse(c, http.StatusUnauthorized, "invalid token")
			}
			return next(c)
		}
	}
}
