package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// observe records request count and latency per route template. Errors are
// rendered here so the final status code is known.
func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}

		req := c.Request()
		status := c.Response().Status
		elapsed := time.Since(start)

		if s.metrics != nil {
			s.metrics.Requests.WithLabelValues(req.Method, c.Path(), strconv.Itoa(status)).Inc()
			s.metrics.LatencyMS.WithLabelValues(req.Method, c.Path()).Observe(float64(elapsed.Milliseconds()))
		}
		s.logger.Debug("request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed),
		)
		return nil
	}
}
