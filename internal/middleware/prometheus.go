package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/persistorai/graphkernel/internal/metrics"
)

// PrometheusMiddleware records HTTP request duration and count. Websocket
// upgrades are counted but not timed, since their duration is the life of
// the stream.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath() // route pattern, not actual path (avoids cardinality explosion)
		if path == "" {
			path = "unknown"
		}

		metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.GetHeader("Upgrade") != "websocket" {
			metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		}
	}
}
