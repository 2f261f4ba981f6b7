package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sbrlabs/lookup-dashboard/api/internal/service"
)

// JobsHandler exposes the recent-jobs listing.
type JobsHandler struct {
	service *service.JobsService
}

// NewJobsHandler creates a new handler instance.
func NewJobsHandler(service *service.JobsService) *JobsHandler {
	return &JobsHandler{service: service}
}

// List handles GET /jobs requests.
func (h *JobsHandler) List(c echo.Context) error {
	phone := strings.TrimSpace(c.QueryParam("phone"))
	limit := parseIntDefault(c.QueryParam("limit"), 0)

	jobs, err := h.service.Recent(c.Request().Context(), phone, limit)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list jobs")
	}

	return c.JSON(http.StatusOK, jobs)
}

func parseIntDefault(input string, fallback int) int {
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}
