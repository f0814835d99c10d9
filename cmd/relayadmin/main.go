// Command relayadmin is a thin operational HTTP surface
// (health/liveness/readiness/metrics/stats) over the same provider tier
// configuration relaybot runs, grounded in the teacher's gin router
// assembly in cmd/main.go. It constructs its own Orchestrator/Cache instance
// from the same environment configuration rather than sharing the bot
// process's live counters. It sends no translation requests and does not
// probe the providers, so the health and metrics it reports are those of its
// own orchestrator instance: every tier starts healthy and stays so until
// that instance records failures.
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/polyglot-relay/internal/cache"
	"github.com/tesseract-hub/polyglot-relay/internal/config"
	"github.com/tesseract-hub/polyglot-relay/internal/orchestrator"
	"github.com/tesseract-hub/polyglot-relay/internal/provider"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	log := logger.WithField("service", "relayadmin")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	premium := provider.NewPremiumAdapter(cfg.Translation.PremiumAPIKey, cfg.Translation.PremiumBaseURL, cfg.Translation.ProviderTimeout, log.WithField("provider", "premium"))
	free := provider.NewFreeAdapter(cfg.Translation.FreeBaseURL, cfg.Translation.FreeAPIKey, cfg.Translation.FreeUserIdentity, cfg.Translation.ProviderTimeout, log.WithField("provider", "free"))
	broad := provider.NewBroadAdapter(cfg.Translation.BroadAPIKey, cfg.Translation.BroadBaseURL, cfg.Translation.BroadEnabled, cfg.Translation.ProviderTimeout, log.WithField("provider", "broad"))

	tiers := []provider.Adapter{premium, free, broad}
	tCache := cache.New(cfg.Translation.CacheCapacity, cfg.Translation.CacheTTL)
	orch := orchestrator.New(tiers, tCache, log.WithField("component", "orchestrator"), prometheus.DefaultRegisterer)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestID())

	h := &adminHandlers{orch: orch, cache: tCache}
	router.GET("/healthz", h.health)
	router.GET("/livez", h.livez)
	router.GET("/readyz", h.readyz)
	router.GET("/stats", h.stats)
	router.GET("/metrics", metricsHandler())

	addr := fmt.Sprintf("%s:%d", cfg.Admin.Host, cfg.Admin.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.WithField("addr", addr).Info("starting relayadmin")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("relayadmin server failed")
	}
}
