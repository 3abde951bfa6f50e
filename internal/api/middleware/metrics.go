package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"audio2num/internal/app/metrics"
)

// Metrics records request counts and latency per route pattern.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		pattern := c.FullPath()
		if pattern == "" {
			pattern = "unknown"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(method, pattern, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, pattern).Observe(time.Since(start).Seconds())
	}
}
