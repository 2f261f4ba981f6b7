package middleware

import "github.com/labstack/echo/v4"

// Context keys used to store request metadata.
const (
	ContextKeyRequestID = "request_id"
)

// RequestIDFromContext returns the request id stored by RequestID, or the
// empty string when none is set.
func RequestIDFromContext(c echo.Context) string {
	rid, _ := c.Get(ContextKeyRequestID).(string)
	return rid
}
