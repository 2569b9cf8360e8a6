package middleware

import (
	"strconv"
	"time"

	"gateway/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency per route pattern.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		if path == "/metrics" {
			c.Next()
			return
		}

		metrics.HTTPInFlight.Inc()
		start := time.Now()
		c.Next()
		metrics.HTTPInFlight.Dec()

		method := c.Request.Method
		metrics.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
