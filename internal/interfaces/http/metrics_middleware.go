package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sige-scm/sige-backend/pkg/metrics"
)

// MetricsMiddleware registra conteo, duración y peticiones en vuelo.
// Etiqueta con el patrón de ruta de fiber (p.ej. /api/balances/:sku) para
// mantener acotada la cardinalidad.
func MetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		m.HTTPInFlight.Inc()
		err := c.Next()
		m.HTTPInFlight.Dec()

		status := c.Response().StatusCode()
		if err != nil {
			// El ErrorHandler de fiber corre después de este middleware;
			// anticipamos el código que va a responder.
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		path := c.Route().Path
		m.HTTPRequests.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}
