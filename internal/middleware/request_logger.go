package middleware

import (
	"time"

	"cookbook/internal/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs one line per request with its id, route and latency.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		kv := []interface{}{
			"requestId", c.GetRespHeader(fiber.HeaderXRequestID),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start).String(),
			"ip", c.IP(),
		}
		if chainErr != nil {
			kv = append(kv, "error", chainErr)
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("Request failed", kv...)
		case status >= fiber.StatusBadRequest:
			log.Warn("Request rejected", kv...)
		default:
			log.Info("Request served", kv...)
		}
		return chainErr
	}
}
