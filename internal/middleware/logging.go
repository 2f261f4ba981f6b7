package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sbrlabs/lookup-dashboard/api/internal/logging"
)

// Logging writes one structured line per HTTP request.
func Logging(log *logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			log.Info("request",
				"request_id", RequestIDFromContext(c),
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency", latency.String(),
			)

			return err
		}
	}
}
