package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tesseract-hub/polyglot-relay/internal/cache"
	"github.com/tesseract-hub/polyglot-relay/internal/orchestrator"
)

// adminHandlers is a thin operational surface over an already-running
// orchestrator and cache, grounded in the teacher's Health/Livez/Readyz/
// GetStats handlers (internal/handlers/translation_handler.go), stripped of
// the tenant/preference/cache-invalidation endpoints this module's
// SPEC_FULL.md scope has no host for (the bot's core operations are
// consumed directly from cmd/relaybot, not over HTTP).
type adminHandlers struct {
	orch  *orchestrator.Orchestrator
	cache *cache.Cache
}

// health reports per-provider status the way the teacher's Health handler
// did, degraded when some but not all tiers are healthy, unhealthy when none
// are.
func (h *adminHandlers) health(c *gin.Context) {
	providerHealth := h.orch.ProviderHealth()

	checks := make(gin.H, len(providerHealth))
	healthy := 0
	for id, health := range providerHealth {
		if health.Healthy {
			checks[string(id)] = "healthy"
			healthy++
		} else {
			checks[string(id)] = "unhealthy: " + health.LastError
		}
	}

	status := "healthy"
	switch {
	case healthy == 0 && len(providerHealth) > 0:
		status = "unhealthy"
	case healthy < len(providerHealth):
		status = "degraded"
	}

	code := http.StatusOK
	if status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{"status": status, "checks": checks})
}

func (h *adminHandlers) livez(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// readyz reports ready as soon as at least one tier is healthy, mirroring
// the teacher's Readyz fallback logic.
func (h *adminHandlers) readyz(c *gin.Context) {
	for _, health := range h.orch.ProviderHealth() {
		if health.Healthy {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
			return
		}
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
}

// stats reports per-provider metrics plus cache statistics, the relaybot
// equivalent of the teacher's tenant-scoped GetStats.
func (h *adminHandlers) stats(c *gin.Context) {
	metrics := h.orch.ProviderMetrics()
	providerStats := make(gin.H, len(metrics))
	for id, m := range metrics {
		providerStats[string(id)] = gin.H{
			"total_requests": m.TotalRequests,
			"success_count":  m.SuccessfulCount,
			"failed_count":   m.FailedCount,
			"characters":     m.CharactersCount,
			"latency_ms":     m.TotalLatencyMs,
		}
	}

	cacheStats := h.cache.Stats()

	c.JSON(http.StatusOK, gin.H{
		"providers": providerStats,
		"cache": gin.H{
			"hits":      cacheStats.Hits,
			"misses":    cacheStats.Misses,
			"evictions": cacheStats.Evictions,
			"size":      cacheStats.Size,
			"capacity":  cacheStats.Capacity,
		},
	})
}

func metricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
