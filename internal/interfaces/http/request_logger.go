package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-cliente/pkg/logger"
)

// RequestLogger registra cada petición con método, ruta, status y duración. Debe ir
// después de requestid para incluir el id de la petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// el ErrorHandler escribe el status definitivo
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		level := log.Info
		switch {
		case status >= fiber.StatusInternalServerError:
			level = log.Error
		case status >= fiber.StatusBadRequest:
			level = log.Warn
		}
		rid, _ := c.Locals("requestid").(string)
		level().Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("petición")
		return nil
	}
}
