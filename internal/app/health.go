package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker reports per-dependency liveness for /health
type HealthChecker struct {
	infra Infrastructure
}

func NewHealthChecker(infra Infrastructure) *HealthChecker {
	return &HealthChecker{
		infra: infra,
	}
}

type dependencyStatus struct {
	name string
	err  error
}

func (h *HealthChecker) check(ctx context.Context) []dependencyStatus {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	results := make(chan dependencyStatus, 2)

	go func() {
		results <- dependencyStatus{name: "postgres", err: h.infra.Postgres().Ping(ctx)}
	}()

	go func() {
		results <- dependencyStatus{name: "redis", err: h.infra.Redis().Ping(ctx)}
	}()

	return []dependencyStatus{<-results, <-results}
}

func (h *HealthChecker) Handler(c *gin.Context) {
	deps := h.check(c.Request.Context())

	components := gin.H{}
	healthy := true
	for _, d := range deps {
		if d.err != nil {
			healthy = false
			components[d.name] = d.err.Error()
			continue
		}
		components[d.name] = "pass"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "fail",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "pass",
		"components": components,
	})
}
