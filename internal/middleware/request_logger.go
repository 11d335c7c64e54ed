package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"newscheck/internal/logging"
)

// RequestLogger attaches a slog.Logger carrying the request id to the
// request context, so errors swallowed further down can still be traced.
// It must run after the requestid middleware.
func RequestLogger(base *slog.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		logger := base.With(
			"request_id", requestid.FromContext(c),
			"method", c.Method(),
			"path", c.Path(),
		)
		c.SetContext(logging.WithLogger(c.Context(), logger))
		return c.Next()
	}
}
