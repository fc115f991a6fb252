package middleware

import (
	"time"

	"github.com/circtek/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// HTTPMetrics records the duration of every routed request. Unmatched
// paths are reported as "unmatched" to keep the route label bounded. A nil
// metrics value disables recording.
func HTTPMetrics(metrics *telemetry.BusinessMetrics) gin.HandlerFunc {
	if metrics == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Context(), c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
