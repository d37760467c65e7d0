package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edusync/academia-api/internal/service"
)

// Metrics times every handled request. The route template is used as
// the path label so /schedules/:id stays one series regardless of id.
func Metrics(metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
