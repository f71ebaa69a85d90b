package httpserver

import (
	"time"

	"github.com/gin-gonic/gin"

	"task-intent/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthVersion = "1.0.0"
	ServiceName   = "task-intent"
)

// Inference states reported on /health and /ready.
const (
	inferenceAvailable = "available"
	inferenceDisabled  = "disabled"
)

// healthCheck reports service identity plus the state of the interpretation
// cascade.
// @Summary Health Check
// @Description Service identity, cache occupancy and inference state
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	stats := srv.interpretUC.Stats(c.Request.Context())
	response.OK(c, gin.H{
		"status":  "healthy",
		"version": HealthVersion,
		"service": ServiceName,
		"cache": gin.H{
			"len":      stats.CacheLen,
			"capacity": stats.CacheCapacity,
		},
		"inference": inferenceState(stats.InferenceAvailable),
	})
}

// readyCheck reports ready once the dispatcher is wired. Inference is an
// optional stage, so its absence is reported but does not fail readiness.
// @Summary Readiness Check
// @Description Whether the interpretation cascade can serve traffic
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	stats := srv.interpretUC.Stats(c.Request.Context())
	stages := []string{"cache", "fixed_pattern", "rule_engine"}
	if stats.InferenceAvailable {
		stages = append(stages, "inference")
	}
	stages = append(stages, "fallback")

	response.OK(c, gin.H{
		"status":    "ready",
		"service":   ServiceName,
		"stages":    stages,
		"inference": inferenceState(stats.InferenceAvailable),
	})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API process is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":         "alive",
		"service":        ServiceName,
		"uptime_seconds": int64(time.Since(srv.startedAt).Seconds()),
	})
}

func inferenceState(available bool) string {
	if available {
		return inferenceAvailable
	}
	return inferenceDisabled
}
