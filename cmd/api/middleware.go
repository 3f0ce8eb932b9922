package main

import (
	"log/slog"
	"strconv"
	"time"

	"history-map/internal/metrics"

	"github.com/gin-gonic/gin"
)

// requestLogger records every request as a slog entry and in the request
// metrics.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		status := c.Writer.Status()

		metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		metrics.RequestDurationMs.WithLabelValues(route).Observe(float64(elapsed.Milliseconds()))

		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", elapsed,
			"client_ip", c.ClientIP(),
		)
	}
}
