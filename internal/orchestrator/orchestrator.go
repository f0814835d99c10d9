// Package orchestrator walks the fixed premium → free → broad provider tier
// order and returns a translated result, consulting the cache first (spec.md
// 4.5). It is directly grounded in the teacher's TranslationOrchestrator
// (internal/clients/orchestrator.go), generalized from the teacher's dynamic
// priority-sorted N-provider chain to the spec's fixed 3-tier walk with a
// closed error taxonomy instead of bare error strings.
package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/polyglot-relay/internal/cache"
	"github.com/tesseract-hub/polyglot-relay/internal/provider"
)

// Reason tags why Translate produced the result it did, for the structured
// observability event spec.md 4.5 requires.
type Reason string

const (
	ReasonNoTranslationNeeded Reason = "no_translation_needed"
	ReasonCacheHit            Reason = "cache_hit"
	ReasonTranslated          Reason = "translated"
	ReasonCancelled           Reason = "cancelled"
	ReasonAllProvidersFailed  Reason = "all_providers_failed"
)

// Result is what Translate returns: a TranslationResult per spec.md 4.5.
type Result struct {
	Text           string
	Source         string
	Target         string
	Provider       provider.ID
	ProviderKnown  bool
	Reason         Reason
	CacheHit       bool
	AttemptedTiers []provider.ID
}

const unknownSource = "unknown"

// Orchestrator dispatches translation requests across the tier chain,
// tracking per-provider health and metrics the way the teacher's
// orchestrator did, scoped down to the three-tier closed set.
type Orchestrator struct {
	tiers  []provider.Adapter
	cache  *cache.Cache
	logger *logrus.Entry

	metrics   map[provider.ID]*provider.Metrics
	metricsMu sync.RWMutex

	health   map[provider.ID]*provider.Health
	healthMu sync.RWMutex

	retryDelay time.Duration

	reqTotal   *prometheus.CounterVec
	latencyObs *prometheus.HistogramVec
}

// New builds an Orchestrator. tiers must already be ordered premium, free,
// broad (spec.md 4.5: "tier order is fixed") — New does not reorder them.
// Unconfigured adapters are kept in the chain; IsConfigured() is checked
// per request, mirroring the teacher's per-call IsHealthy check rather than a
// one-time startup filter.
func New(tiers []provider.Adapter, c *cache.Cache, logger *logrus.Entry, reg prometheus.Registerer) *Orchestrator {
	o := &Orchestrator{
		tiers:      tiers,
		cache:      c,
		logger:     logger,
		metrics:    make(map[provider.ID]*provider.Metrics),
		health:     make(map[provider.ID]*provider.Health),
		retryDelay: 250 * time.Millisecond,
		reqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "translations_total",
			Help: "Translation attempts by provider and outcome.",
		}, []string{"provider", "outcome"}),
		latencyObs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "translation_latency_ms",
			Help:    "Per-provider translation latency in milliseconds.",
			Buckets: prometheus.ExponentialBuckets(10, 2, 12),
		}, []string{"provider"}),
	}

	for _, t := range tiers {
		o.metrics[t.ID()] = &provider.Metrics{Provider: t.ID()}
		o.health[t.ID()] = &provider.Health{Provider: t.ID(), Healthy: true, LastChecked: time.Now()}
	}

	if reg != nil {
		reg.MustRegister(o.reqTotal, o.latencyObs)
	}

	names := make([]string, len(tiers))
	for i, t := range tiers {
		names[i] = string(t.ID())
	}
	logger.WithField("tiers", names).Info("translation orchestrator initialized")

	return o
}

// Translate implements spec.md 4.5's algorithm exactly.
func (o *Orchestrator) Translate(ctx context.Context, text, srcHint, tgt string) Result {
	start := time.Now()

	if text == "" {
		src := srcHint
		if src == "" {
			src = unknownSource
		}
		o.logEvent(tgt, srcHint, "", nil, time.Since(start), false, ReasonNoTranslationNeeded)
		return Result{Text: "", Source: src, Target: tgt, Reason: ReasonNoTranslationNeeded}
	}

	if srcHint != "" && srcHint == tgt {
		o.logEvent(tgt, srcHint, "", nil, time.Since(start), false, ReasonNoTranslationNeeded)
		return Result{Text: text, Source: srcHint, Target: tgt, Reason: ReasonNoTranslationNeeded}
	}

	key := cache.NewKey(text, srcHint, tgt)
	if cached, ok := o.cache.Get(key); ok {
		o.logEvent(tgt, srcHint, cached.Provider, nil, time.Since(start), true, ReasonCacheHit)
		return Result{
			Text:          cached.TranslatedText,
			Source:        cached.DetectedSource,
			Target:        tgt,
			Provider:      provider.ID(cached.Provider),
			ProviderKnown: cached.Provider != "",
			Reason:        ReasonCacheHit,
			CacheHit:      true,
		}
	}

	var attempted []provider.ID

	for _, adapter := range o.tiers {
		id := adapter.ID()

		if !adapter.IsConfigured() {
			continue
		}
		if !adapter.SupportedTargets()[tgt] {
			continue
		}

		attempted = append(attempted, id)

		result, err := o.callWithRetry(ctx, adapter, text, srcHint, tgt)
		if err != nil {
			var pErr *provider.Error
			if errors.As(err, &pErr) && pErr.Kind == provider.Cancelled {
				o.logEvent(tgt, srcHint, "", attempted, time.Since(start), false, ReasonCancelled)
				return Result{Source: srcHint, Target: tgt, Reason: ReasonCancelled, AttemptedTiers: attempted}
			}
			continue
		}

		o.cache.Put(key, cache.Result{
			TranslatedText: result.TranslatedText,
			DetectedSource: result.DetectedSource,
			Provider:       string(id),
		})

		o.logEvent(tgt, srcHint, string(id), attempted, time.Since(start), false, ReasonTranslated)
		return Result{
			Text:           result.TranslatedText,
			Source:         result.DetectedSource,
			Target:         tgt,
			Provider:       id,
			ProviderKnown:  true,
			Reason:         ReasonTranslated,
			AttemptedTiers: attempted,
		}
	}

	o.logEvent(tgt, srcHint, "", attempted, time.Since(start), false, ReasonAllProvidersFailed)
	return Result{Source: srcHint, Target: tgt, Reason: ReasonAllProvidersFailed, AttemptedTiers: attempted}
}

// callWithRetry calls adapter.Translate once, and once more after retryDelay
// if the first attempt fails with a Transient error (spec.md 4.5 step 4f).
// Unsupported and budget_exhausted Permanent errors fall through to the
// caller without a retry; the caller's loop continuing to the next tier IS
// the fall-through.
func (o *Orchestrator) callWithRetry(ctx context.Context, adapter provider.Adapter, text, src, tgt string) (*provider.Result, error) {
	id := adapter.ID()

	attemptStart := time.Now()
	result, err := adapter.Translate(ctx, text, src, tgt)
	if err == nil {
		o.recordSuccess(id, int64(len(text)), time.Since(attemptStart))
		return result, nil
	}

	var pErr *provider.Error
	if !errors.As(err, &pErr) {
		o.recordFailure(id, err.Error(), time.Since(attemptStart))
		return nil, err
	}

	o.recordFailure(id, pErr.Error(), time.Since(attemptStart))

	if pErr.Kind != provider.Transient {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, &provider.Error{Kind: provider.Cancelled, Reason: "context_done", Err: ctx.Err()}
	case <-time.After(o.retryDelay):
	}

	retryStart := time.Now()
	result, retryErr := adapter.Translate(ctx, text, src, tgt)
	if retryErr == nil {
		o.recordSuccess(id, int64(len(text)), time.Since(retryStart))
		return result, nil
	}
	o.recordFailure(id, retryErr.Error(), time.Since(retryStart))
	return nil, retryErr
}

func (o *Orchestrator) logEvent(tgt, srcHint, chosen string, attempted []provider.ID, latency time.Duration, cacheHit bool, reason Reason) {
	o.logger.WithFields(logrus.Fields{
		"target":          tgt,
		"source_hint":     srcHint,
		"chosen_provider": chosen,
		"attempted_tiers": attempted,
		"latency_ms":      latency.Milliseconds(),
		"cache_hit":       cacheHit,
		"outcome":         string(reason),
	}).Debug("translation request completed")
}

func (o *Orchestrator) recordSuccess(id provider.ID, chars int64, latency time.Duration) {
	o.metricsMu.Lock()
	if m, ok := o.metrics[id]; ok {
		m.TotalRequests++
		m.SuccessfulCount++
		m.TotalLatencyMs += latency.Milliseconds()
		m.CharactersCount += chars
	}
	o.metricsMu.Unlock()

	o.healthMu.Lock()
	if h, ok := o.health[id]; ok {
		h.Healthy = true
		h.LastChecked = time.Now()
		h.FailureCount = 0
		h.LastError = ""
	}
	o.healthMu.Unlock()

	o.reqTotal.WithLabelValues(string(id), "success").Inc()
	o.latencyObs.WithLabelValues(string(id)).Observe(float64(latency.Milliseconds()))
}

func (o *Orchestrator) recordFailure(id provider.ID, errMsg string, latency time.Duration) {
	o.metricsMu.Lock()
	if m, ok := o.metrics[id]; ok {
		m.TotalRequests++
		m.FailedCount++
		m.TotalLatencyMs += latency.Milliseconds()
	}
	o.metricsMu.Unlock()

	o.healthMu.Lock()
	if h, ok := o.health[id]; ok {
		h.FailureCount++
		h.LastError = errMsg
		h.LastChecked = time.Now()
		if h.FailureCount >= 3 {
			h.Healthy = false
		}
	}
	o.healthMu.Unlock()

	o.reqTotal.WithLabelValues(string(id), "failure").Inc()
	o.latencyObs.WithLabelValues(string(id)).Observe(float64(latency.Milliseconds()))
}

// ProviderHealth returns a point-in-time copy of health for every tier, for
// the operational surface's /readyz and /stats endpoints.
func (o *Orchestrator) ProviderHealth() map[provider.ID]provider.Health {
	o.healthMu.RLock()
	defer o.healthMu.RUnlock()
	out := make(map[provider.ID]provider.Health, len(o.health))
	for k, v := range o.health {
		out[k] = *v
	}
	return out
}

// ProviderMetrics returns a point-in-time copy of metrics for every tier.
func (o *Orchestrator) ProviderMetrics() map[provider.ID]provider.Metrics {
	o.metricsMu.RLock()
	defer o.metricsMu.RUnlock()
	out := make(map[provider.ID]provider.Metrics, len(o.metrics))
	for k, v := range o.metrics {
		out[k] = *v
	}
	return out
}
