package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/roguepikachu/synopsis/internal/metrics"
)

// Metrics records request count, latency and in-flight requests per route.
// Unmatched routes are grouped under "unmatched" to bound label cardinality.
// A request whose handler panics is recorded as a 500.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		done := m.RequestStarted()
		panicked := true
		defer func() {
			done()
			status := c.Writer.Status()
			if panicked {
				status = http.StatusInternalServerError
			}
			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			m.ObserveRequest(c.Request.Method, route, status, time.Since(start))
		}()

		c.Next()
		panicked = false
	}
}
