// Package router sets up the HTTP routes for the Synopsis API server.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roguepikachu/synopsis/internal/http/handler"
	"github.com/roguepikachu/synopsis/internal/http/middleware"
	"github.com/roguepikachu/synopsis/internal/metrics"
	"github.com/roguepikachu/synopsis/pkg"
)

// DefaultMaxBodyBytes caps JSON request bodies when Deps leaves it unset.
const DefaultMaxBodyBytes = 10 << 20

// Deps carries everything the router wires into routes.
type Deps struct {
	Snippets *handler.Handler
	Health   *handler.HealthHandler
	// Metrics is optional; /metrics is only mounted when set.
	Metrics      *metrics.Metrics
	CORSOrigins  []string
	MaxBodyBytes int64
}

// NewRouter initializes and returns the main Gin engine with all routes.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.RequestLogger(pkg.LivenessPath, pkg.ReadinessPath, pkg.MetricsPath),
	)
	// Metrics sits outside Recovery so panicking requests are counted.
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}
	r.Use(
		middleware.Recovery(),
		middleware.SecurityHeaders(),
		middleware.CORS(d.CORSOrigins),
	)
	if d.Metrics != nil {
		r.GET(pkg.MetricsPath, gin.WrapH(d.Metrics.Handler()))
	}

	r.GET(pkg.HealthPath, d.Health.Health)
	r.GET(pkg.LivenessPath, d.Health.Liveness)
	r.GET(pkg.ReadinessPath, d.Health.Readiness)

	limit := d.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	r.POST(pkg.SnippetsPath, middleware.BodyLimit(limit), d.Snippets.Create)
	r.GET(pkg.SnippetPath, d.Snippets.Get)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, pkg.NewError(pkg.MsgRouteNotFound))
	})
	return r
}
