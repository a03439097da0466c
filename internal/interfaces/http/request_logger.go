package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Timesheet-api/pkg/logger"
)

// RequestLogger registra cada petición: método, ruta, status, latencia y owner.
func RequestLogger(l *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		if chainErr != nil {
			if fe, ok := chainErr.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error().Err(chainErr)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("owner_id", GetOwnerID(c)).
			Msg("request")
		return chainErr
	}
}
