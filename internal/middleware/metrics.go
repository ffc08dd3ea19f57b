package middleware

import (
	"strconv"
	"time"

	"github.com/amankumarsingh77/cube-phase-detector/internal/metrics"
	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts and latency keyed by the route template, not the raw path.
func (mw *MiddlewareManager) MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request().Method
		metrics.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(c.Response().Status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
		return nil
	}
}
