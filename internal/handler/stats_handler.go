package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sbrlabs/lookup-dashboard/api/internal/dto"
	"github.com/sbrlabs/lookup-dashboard/api/internal/service"
)

// dateLayout is the calendar-date format accepted by the filter parameters.
const dateLayout = "2006-01-02"

// StatsHandler exposes the assembled dashboard snapshot.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler creates a new handler instance.
func NewStatsHandler(service *service.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Get handles GET /stats requests.
func (h *StatsHandler) Get(c echo.Context) error {
	filter, err := parseStatsFilter(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	snapshot, err := h.service.Snapshot(c.Request().Context(), filter)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to load stats")
	}

	return c.JSON(http.StatusOK, snapshot)
}

// parseStatsFilter reads the username/startDate/endDate query parameters.
// Dates must be calendar dates (YYYY-MM-DD) and are interpreted in UTC;
// malformed dates are rejected rather than silently ignored.
func parseStatsFilter(c echo.Context) (dto.StatsFilter, error) {
	filter := dto.StatsFilter{
		Username: strings.TrimSpace(c.QueryParam("username")),
	}

	if raw := strings.TrimSpace(c.QueryParam("startDate")); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			return dto.StatsFilter{}, errors.New("invalid startDate (use YYYY-MM-DD)")
		}
		filter.StartDate = &parsed
	}

	if raw := strings.TrimSpace(c.QueryParam("endDate")); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			return dto.StatsFilter{}, errors.New("invalid endDate (use YYYY-MM-DD)")
		}
		filter.EndDate = &parsed
	}

	return filter, nil
}
