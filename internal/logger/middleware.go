package logger

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// Middleware logs one entry per request. Responses with status >= 400 are
// logged at warn level. Request strings are copied since fiber reuses their
// buffers once the handler returns.
func Middleware(l *zap.Logger) fiber.Handler {
	l = OrNop(l)

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		if c.Method() == fiber.MethodOptions {
			return err
		}

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		fields := []zap.Field{
			zap.String("method", utils.CopyString(c.Method())),
			zap.String("path", utils.CopyString(c.Path())),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", utils.CopyString(c.IP())),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		if status >= fiber.StatusBadRequest {
			l.Warn("api request", fields...)
		} else {
			l.Info("api request", fields...)
		}

		return err
	}
}
