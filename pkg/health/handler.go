package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// LivenessHandler answers 200 as long as the process is serving requests.
// It checks nothing; a live but not-ready instance still passes.
func LivenessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": StatusUp})
	}
}

// ReadinessHandler runs every registered probe within the given timeout and
// answers 503 when any dependency is down, so the instance is pulled from
// rotation instead of failing callbacks mid-flight.
func ReadinessHandler(registry *Registry, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		response := registry.CheckAll(ctx)

		code := http.StatusOK
		if response.Status == StatusDown {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, response)
	}
}
