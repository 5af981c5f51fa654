// Package handler provides HTTP handler functions for the Synopsis API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roguepikachu/synopsis/internal/domain"
	"github.com/roguepikachu/synopsis/pkg/logger"
)

// Pinger is implemented by every store backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Check names a dependency probed by readiness.
type Check struct {
	Name   string
	Pinger Pinger
}

// CheckResult is one entry of the readiness report.
type CheckResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthHandler serves the health, liveness and readiness probes.
type HealthHandler struct {
	checks      []Check
	pingTimeout time.Duration
	now         func() time.Time
}

// NewHealthHandler constructs a HealthHandler probing the given dependencies.
func NewHealthHandler(checks ...Check) *HealthHandler {
	return &HealthHandler{
		checks:      checks,
		pingTimeout: 1 * time.Second,
		now:         time.Now,
	}
}

// Health reports that the service is up along with the current server time.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, domain.HealthResponseDTO{
		Status:    "OK",
		Timestamp: h.now().UTC().Format(domain.TimeFormat),
	})
}

// Liveness reports that the process is up. Do not check external deps here.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness checks external dependencies to decide if we can serve traffic.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.pingTimeout)
	defer cancel()

	results := make([]CheckResult, 0, len(h.checks))
	ready := true
	for _, chk := range h.checks {
		if err := chk.Pinger.Ping(ctx); err != nil {
			ready = false
			results = append(results, CheckResult{Name: chk.Name, Status: "down", Error: err.Error()})
			continue
		}
		results = append(results, CheckResult{Name: chk.Name, Status: "up"})
	}

	if ready {
		c.JSON(http.StatusOK, gin.H{"ready": true, "checks": results})
		return
	}
	logger.Warn(c.Request.Context(), "readiness failed: %+v", results)
	c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false, "checks": results})
}
