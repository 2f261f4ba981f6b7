package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sbrlabs/lookup-dashboard/api/internal/config"
	"github.com/sbrlabs/lookup-dashboard/api/internal/handler"
	middlewarepkg "github.com/sbrlabs/lookup-dashboard/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Stats   *handler.StatsHandler
	Numbers *handler.NumbersHandler
	Jobs    *handler.JobsHandler
	System  *handler.SystemHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	e.GET("/healthz", handlers.System.Health)

	e.GET("/stats", handlers.Stats.Get, middlewarepkg.RateLimiter(cfg.RateLimitStats))
	e.GET("/numbers", handlers.Numbers.List)
	e.GET("/numbers/profile", handlers.Numbers.Profile)
	e.GET("/jobs", handlers.Jobs.List)
	e.GET("/jobs/phone-history", handlers.Numbers.PhoneHistory)
	e.GET("/overview", handlers.System.Overview)
	e.GET("/logs", handlers.System.Logs)
}
