package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dpointtt/sun-class-app/internal/service"
)

// probePaths are scraped by infrastructure and stay out of the request metrics.
var probePaths = map[string]struct{}{
	"/metrics": {},
	"/health":  {},
	"/ready":   {},
}

// Metrics records latency and status of page loads and form actions under their route
// pattern, so /class/3 and /class/4 share one series.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		route := c.FullPath()
		if _, skip := probePaths[route]; skip {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		if route == "" {
			route = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
