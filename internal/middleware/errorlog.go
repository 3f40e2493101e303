package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrorLog records failed requests (5xx) through slog so they reach the
// system_logs table.
func ErrorLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}
		if status < fiber.StatusInternalServerError {
			return err
		}

		attrs := []any{
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if email, ok := c.Locals("user_email").(string); ok {
			attrs = append(attrs, "user_email", email)
		}
		if err != nil {
			attrs = append(attrs, "error", err.Error())
		}
		slog.Error("request failed", attrs...)
		return err
	}
}
