package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// PremiumAdapter is the highest-quality, narrowest-coverage tier: an
// API-key-authenticated REST translate endpoint in the shape of Google Cloud
// Translation, with a hard length cap enforced locally (spec.md 4.3 "Premium").
type PremiumAdapter struct {
	apiKey  string
	baseURL string

	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Entry

	maxChars int
	targets  map[string]bool
}

const premiumMaxChars = 5000

// NewPremiumAdapter constructs the Premium adapter. An empty apiKey leaves the
// adapter unconfigured, matching spec.md section 6 ("enables premium tier when
// present").
func NewPremiumAdapter(apiKey, baseURL string, timeout time.Duration, logger *logrus.Entry) *PremiumAdapter {
	return &PremiumAdapter{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(10), 20),
		logger:     logger.WithField("provider", Premium),
		maxChars:   premiumMaxChars,
		targets:    premiumTargets,
	}
}

func (a *PremiumAdapter) ID() ID { return Premium }

func (a *PremiumAdapter) IsConfigured() bool { return a.apiKey != "" }

func (a *PremiumAdapter) SupportedTargets() map[string]bool { return a.targets }

func (a *PremiumAdapter) DetectsSource() bool { return true }

type premiumRequest struct {
	Q      []string `json:"q"`
	Source string   `json:"source,omitempty"`
	Target string   `json:"target"`
	Format string   `json:"format,omitempty"`
}

type premiumResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage,omitempty"`
		} `json:"translations"`
	} `json:"data"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Translate implements Adapter.
func (a *PremiumAdapter) Translate(ctx context.Context, text, src, tgt string) (*Result, error) {
	if !a.targets[tgt] {
		return nil, &Error{Kind: Unsupported, Reason: "target_not_supported"}
	}
	if len(text) > a.maxChars {
		return nil, &Error{Kind: Permanent, Reason: "text_too_long", Err: fmt.Errorf("%d chars exceeds cap of %d", len(text), a.maxChars)}
	}
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, &Error{Kind: Cancelled, Reason: "rate_limit_wait_cancelled", Err: err}
	}

	req := premiumRequest{Q: []string{text}, Target: tgt, Format: "text"}
	if src != "" && src != "auto" {
		req.Source = src
	}

	endpoint := fmt.Sprintf("%s?key=%s", a.baseURL, url.QueryEscape(a.apiKey))

	var resp premiumResponse
	if err := doJSON(ctx, a.httpClient, "POST", endpoint, nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, &Error{Kind: Permanent, Reason: "provider_error", Err: fmt.Errorf("code %d: %s", resp.Error.Code, resp.Error.Message)}
	}
	if len(resp.Data.Translations) == 0 {
		return nil, &Error{Kind: Permanent, Reason: "empty_response"}
	}

	t := resp.Data.Translations[0]
	detected := src
	if detected == "" || detected == "auto" {
		detected = t.DetectedSourceLanguage
		if detected == "" {
			detected = "en"
		}
	}

	return &Result{TranslatedText: t.TranslatedText, DetectedSource: detected}, nil
}

// premiumTargets is the curated ~30-language target set the premium tier
// covers, grounded in the teacher's GoogleTranslateClient supported-language
// additions (the languages Google covers that the broader-but-shallower tiers
// don't).
var premiumTargets = buildTargetSet(
	"en", "es", "fr", "de", "it", "pt", "nl", "ru", "ja", "ko", "zh",
	"ar", "hi", "mr", "ta", "te", "bn", "gu", "kn", "ml", "pa", "or",
	"as", "ne", "si", "my", "km", "lo", "am", "sw", "tl",
)

func buildTargetSet(codes ...string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set
}
