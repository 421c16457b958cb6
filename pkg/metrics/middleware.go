package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// GinMiddleware observes every request on the relay_http_* series, labeled
// by route template rather than raw path so order ids and payment ids do
// not explode the cardinality.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		elapsed := time.Since(start).Seconds()
		HTTPRequestDuration.WithLabelValues(route, c.Request.Method, status).Observe(elapsed)
		HTTPRequestsTotal.WithLabelValues(route, c.Request.Method, status).Inc()
	}
}
