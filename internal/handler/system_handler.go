package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sbrlabs/lookup-dashboard/api/internal/service"
)

// SystemHandler exposes the overview, logs and health endpoints.
type SystemHandler struct {
	service *service.SystemService
}

// NewSystemHandler creates a new handler instance.
func NewSystemHandler(service *service.SystemService) *SystemHandler {
	return &SystemHandler{service: service}
}

// Overview handles GET /overview requests.
func (h *SystemHandler) Overview(c echo.Context) error {
	overview, err := h.service.Overview(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to load overview")
	}

	return c.JSON(http.StatusOK, overview)
}

// Logs handles GET /logs requests.
func (h *SystemHandler) Logs(c echo.Context) error {
	logType := strings.TrimSpace(c.QueryParam("type"))
	limit := parseIntDefault(c.QueryParam("limit"), 0)

	entries, err := h.service.Logs(c.Request().Context(), logType, limit)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list logs")
	}

	return c.JSON(http.StatusOK, entries)
}

// Health handles GET /healthz requests. It reads the database clock through
// the read-only session, so a healthy response proves the store is reachable.
func (h *SystemHandler) Health(c echo.Context) error {
	now, err := h.service.Health(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusServiceUnavailable, "database unreachable")
	}

	return Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok", "now": now})
}
