package middleware

import (
	"errors"
	"inventory/pkg/metric"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// NewMetricsMiddleware records every request against its route pattern.
func NewMetricsMiddleware(m *metric.HTTP) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}

		// c.Method aliases the request buffer fasthttp reuses; labels outlive it.
		m.Request(utils.CopyString(c.Method()), utils.CopyString(c.Route().Path), status, time.Since(start))
		return err
	}
}
