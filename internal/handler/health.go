package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"autoparts/internal/repository"
)

// HealthChecker reports the state of both stores and the breaker.
type HealthChecker interface {
	Health(ctx context.Context) repository.Health
}

// Health returns a JSON health check response. The service stays usable on
// the fallback store alone, so only a dead fallback store yields 503.
func Health(hc HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		h := hc.Health(ctx)
		status := http.StatusOK
		if h.Local != repository.StatusOK {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":      status == http.StatusOK,
			"remote":  h.Remote,
			"local":   h.Local,
			"breaker": h.Breaker,
		})
	}
}
