package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/devtrail/devtrail/internal/service"
)

// ReadHandler exposes the dashboard read API.
type ReadHandler struct {
	svc *service.SessionService
}

func NewReadHandler(svc *service.SessionService) *ReadHandler {
	return &ReadHandler{svc: svc}
}

func (h *ReadHandler) Register(e *echo.Echo) {
	e.GET("/api/sessions", h.ListSessions)
	e.GET("/api/sessions/:id", h.GetSession)
	e.GET("/api/sessions/:id/timeline", h.Timeline)
	e.GET("/api/sessions/:id/git", h.GitActivity)
	e.GET("/api/workspaces", h.ListWorkspaces)
	e.GET("/api/workspaces/:id/devices", h.WorkspaceDevices)
}

func (h *ReadHandler) ListSessions(c echo.Context) error {
	limit, err := intQuery(c, "limit")
	if err != nil {
		return errResponse(c, http.StatusBadRequest, "limit must be an integer")
	}
	offset, err := intQuery(c, "offset")
	if err != nil {
		return errResponse(c, http.StatusBadRequest, "offset must be an integer")
	}

	out, err := h.svc.ListSessions(c.Request().Context(), service.ListFilter{
		WorkspaceID: c.QueryParam("workspace_id"),
		Lifecycle:   c.QueryParam("lifecycle"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return handleSvcError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"sessions": out})
}

func (h *ReadHandler) GetSession(c echo.Context) error {
	detail, err := h.svc.GetSessionDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleSvcError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *ReadHandler) Timeline(c echo.Context) error {
	limit, err := intQuery(c, "limit")
	if err != nil {
		return errResponse(c, http.StatusBadRequest, "limit must be an integer")
	}
	offset, err := intQuery(c, "offset")
	if err != nil {
		return errResponse(c, http.StatusBadRequest, "offset must be an integer")
	}

	msgs, err := h.svc.Timeline(c.Request().Context(), c.Param("id"), limit, offset)
	if err != nil {
		return handleSvcError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"messages": msgs})
}

func (h *ReadHandler) GitActivity(c echo.Context) error {
	activity, err := h.svc.SessionGitActivity(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleSvcError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"git_activity": activity})
}

func (h *ReadHandler) ListWorkspaces(c echo.Context) error {
	workspaces, err := h.svc.ListWorkspaces(c.Request().Context())
	if err != nil {
		return handleSvcError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"workspaces": workspaces})
}

func (h *ReadHandler) WorkspaceDevices(c echo.Context) error {
	devices, err := h.svc.WorkspaceDevices(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleSvcError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"devices": devices})
}

func intQuery(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
