package api

import (
	"signal/analytics/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestID tags each request with an id (honoring an inbound X-Request-ID)
// and logs the request line.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Locals(requestIDKey, rid)
		c.Set("X-Request-ID", rid)

		logger.Get().Debugw("incoming request",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", rid,
		)
		return c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID, or "".
func GetRequestID(c *fiber.Ctx) string {
	if rid, ok := c.Locals(requestIDKey).(string); ok {
		return rid
	}
	return ""
}
