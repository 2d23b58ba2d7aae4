package middleware

import (
	"strconv"
	"time"

	"stockroom/internal/infrastructure/monitoring"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request counts and latency per route.
func MetricsMiddleware(collector *monitoring.PrometheusCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		collector.RecordHTTPRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
