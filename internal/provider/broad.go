package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// BroadAdapter is the widest-coverage, unofficial/best-effort last-resort tier
// (spec.md 4.3 "Broad"). It speaks to a self-hosted multilingual model service
// when baseURL does not point at a hosted inference API, mirroring the
// teacher's HuggingFaceClient dual self-hosted/API mode; either way the
// request/response shapes are library-mediated and isolated from the rest of
// the orchestrator here.
type BroadAdapter struct {
	apiKey     string
	baseURL    string
	selfHosted bool
	enabled    bool

	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Entry
	targets    map[string]bool
}

// NewBroadAdapter constructs the Broad adapter. enabled mirrors BROAD_ENABLED
// (spec.md section 6); when false the adapter reports itself unconfigured
// regardless of baseURL/apiKey.
func NewBroadAdapter(apiKey, baseURL string, enabled bool, timeout time.Duration, logger *logrus.Entry) *BroadAdapter {
	selfHosted := baseURL != "" && !strings.Contains(baseURL, "huggingface.co")
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co/models"
	}
	return &BroadAdapter{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		selfHosted: selfHosted,
		enabled:    enabled,
		// Broad is last resort: a longer timeout is permitted but still bounded
		// (spec.md 4.3), so it gets a multiple of the configured provider
		// timeout rather than the raw value the other two tiers use.
		httpClient: &http.Client{Timeout: timeout * 3},
		// Unofficial/best-effort backend, sized conservatively below what the
		// curated Premium tier gets (spec.md section 5: "each provider adapter
		// owns its own token bucket ... sized to its published per-second/
		// per-day limits").
		limiter: rate.NewLimiter(rate.Limit(2), 5),
		logger:  logger.WithField("provider", Broad),
		targets: broadTargets,
	}
}

func (a *BroadAdapter) ID() ID { return Broad }

func (a *BroadAdapter) IsConfigured() bool {
	if !a.enabled {
		return false
	}
	return a.selfHosted || a.apiKey != ""
}

func (a *BroadAdapter) SupportedTargets() map[string]bool { return a.targets }

func (a *BroadAdapter) DetectsSource() bool { return false }

type broadSelfHostedRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type broadSelfHostedResponse struct {
	TranslatedText string `json:"translated_text"`
}

type broadAPIRequest struct {
	Inputs  string         `json:"inputs"`
	Options map[string]any `json:"options,omitempty"`
}

type broadAPIResponse struct {
	TranslationText string `json:"translation_text"`
}

// Translate implements Adapter.
func (a *BroadAdapter) Translate(ctx context.Context, text, src, tgt string) (*Result, error) {
	if !a.targets[tgt] {
		return nil, &Error{Kind: Unsupported, Reason: "target_not_supported"}
	}
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, &Error{Kind: Cancelled, Reason: "rate_limit_wait_cancelled", Err: err}
	}

	resolvedSrc := src
	if resolvedSrc == "" {
		resolvedSrc = "en"
	}

	if a.selfHosted {
		req := broadSelfHostedRequest{Text: text, SourceLang: resolvedSrc, TargetLang: tgt}
		var resp broadSelfHostedResponse
		endpoint := fmt.Sprintf("%s/translate", a.baseURL)
		if err := doJSON(ctx, a.httpClient, "POST", endpoint, nil, req, &resp); err != nil {
			return nil, err
		}
		if resp.TranslatedText == "" {
			return nil, &Error{Kind: Permanent, Reason: "empty_response"}
		}
		return &Result{TranslatedText: resp.TranslatedText, DetectedSource: resolvedSrc}, nil
	}

	model, ok := broadModelFor(resolvedSrc, tgt)
	if !ok {
		return nil, &Error{Kind: Unsupported, Reason: "no_model_for_pair"}
	}

	req := broadAPIRequest{Inputs: text, Options: map[string]any{"wait_for_model": true}}
	headers := map[string]string{"Authorization": "Bearer " + a.apiKey}
	endpoint := fmt.Sprintf("%s/%s", a.baseURL, model)

	var results []broadAPIResponse
	if err := doJSON(ctx, a.httpClient, "POST", endpoint, headers, req, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 || results[0].TranslationText == "" {
		return nil, &Error{Kind: Permanent, Reason: "empty_response"}
	}

	return &Result{TranslatedText: results[0].TranslationText, DetectedSource: resolvedSrc}, nil
}

// broadLanguagePairs mirrors the teacher's Helsinki-NLP/OPUS-MT static model
// table for the hosted-API code path.
var broadLanguagePairs = map[string]string{
	"en-hi": "Helsinki-NLP/opus-mt-en-hi",
	"en-es": "Helsinki-NLP/opus-mt-en-es",
	"en-fr": "Helsinki-NLP/opus-mt-en-fr",
	"en-de": "Helsinki-NLP/opus-mt-en-de",
	"en-it": "Helsinki-NLP/opus-mt-en-it",
	"en-pt": "Helsinki-NLP/opus-mt-en-pt",
	"en-nl": "Helsinki-NLP/opus-mt-en-nl",
	"en-ru": "Helsinki-NLP/opus-mt-en-ru",
	"en-zh": "Helsinki-NLP/opus-mt-en-zh",
	"en-ja": "Helsinki-NLP/opus-mt-en-jap",
	"en-ko": "Helsinki-NLP/opus-mt-en-ko",
	"en-ar": "Helsinki-NLP/opus-mt-en-ar",
	"en-sw": "Helsinki-NLP/opus-mt-en-mul",
	"hi-en": "Helsinki-NLP/opus-mt-hi-en",
	"es-en": "Helsinki-NLP/opus-mt-es-en",
	"fr-en": "Helsinki-NLP/opus-mt-fr-en",
	"de-en": "Helsinki-NLP/opus-mt-de-en",
	"zh-en": "Helsinki-NLP/opus-mt-zh-en",
	"ar-en": "Helsinki-NLP/opus-mt-ar-en",
	"sw-en": "Helsinki-NLP/opus-mt-mul-en",
}

func broadModelFor(src, tgt string) (string, bool) {
	model, ok := broadLanguagePairs[src+"-"+tgt]
	return model, ok
}

// broadTargets is the widest (~100 language) coverage set; the self-hosted
// path trusts the backend to reject unsupported pairs, but the adapter still
// declares a capability set so the orchestrator's pre-check (spec.md 4.5 step
// 4b) can skip obviously-unsupported targets without an HTTP round trip.
var broadTargets = buildTargetSet(
	"en", "es", "fr", "de", "it", "pt", "nl", "ru", "pl", "tr", "ar", "he",
	"zh", "ja", "ko", "hi", "vi", "id", "th", "uk", "el", "sv", "da", "fi",
	"nb", "cs", "ro", "hu", "bg", "fa", "sw", "yo", "ig", "ha", "am", "zu",
	"xh", "af", "sq", "hy", "az", "eu", "be", "bs", "ca", "hr", "eo", "et",
	"tl", "gl", "ka", "is", "ga", "jv", "kk", "lv", "lt", "mk", "ms", "mt",
	"mn", "ne", "ps", "sr", "sk", "sl", "so", "su", "sw", "ta", "te", "uz",
	"ur", "uz", "cy", "yi", "km", "lo", "my", "si", "bn", "gu", "kn", "ml",
	"mr", "or", "pa", "as", "pt", "ro",
)
