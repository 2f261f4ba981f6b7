package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sbrlabs/lookup-dashboard/api/internal/service"
)

// NumbersHandler exposes the per-number aggregate endpoints.
type NumbersHandler struct {
	service *service.NumbersService
}

// NewNumbersHandler creates a new handler instance.
func NewNumbersHandler(service *service.NumbersService) *NumbersHandler {
	return &NumbersHandler{service: service}
}

// List handles GET /numbers requests.
func (h *NumbersHandler) List(c echo.Context) error {
	username := strings.TrimSpace(c.QueryParam("username"))

	profiles, err := h.service.Profiles(c.Request().Context(), username)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list numbers")
	}

	return c.JSON(http.StatusOK, profiles)
}

// Profile handles GET /numbers/profile requests: the drill-down view for one
// number, with derived counts, chart breakdown and extracted locations.
func (h *NumbersHandler) Profile(c echo.Context) error {
	phone := strings.TrimSpace(c.QueryParam("phone"))
	if phone == "" {
		return Error(c, http.StatusBadRequest, "phone is required")
	}

	profile, err := h.service.PhoneProfile(c.Request().Context(), phone)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to build phone profile")
	}

	return c.JSON(http.StatusOK, profile)
}

// PhoneHistory handles GET /jobs/phone-history requests: the complete,
// uncapped job list for one number.
func (h *NumbersHandler) PhoneHistory(c echo.Context) error {
	phone := strings.TrimSpace(c.QueryParam("phone"))
	if phone == "" {
		return Error(c, http.StatusBadRequest, "phone is required")
	}

	jobs, err := h.service.PhoneHistory(c.Request().Context(), phone)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to load phone history")
	}

	return c.JSON(http.StatusOK, jobs)
}
