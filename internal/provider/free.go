package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// FreeAdapter is the broad-ish coverage, budget-limited middle tier: a GET
// translate endpoint taking query parameters, with an optional user identity
// for a higher daily quota (spec.md section 6, "Free"). It tracks its own
// UTC-day request budget and short-circuits with a Permanent budget_exhausted
// failure once spent (spec.md 4.3 "Free").
type FreeAdapter struct {
	baseURL      string
	apiKey       string
	userIdentity string

	httpClient *http.Client
	logger     *logrus.Entry
	targets    map[string]bool

	budgetMu     sync.Mutex
	dailyBudget  int
	budgetLeft   int
	budgetDay    string // YYYY-MM-DD in UTC, the day the budgetLeft counter applies to
}

const freeDefaultDailyBudget = 5000

// NewFreeAdapter constructs the Free adapter. An empty baseURL leaves it
// unconfigured.
func NewFreeAdapter(baseURL, apiKey, userIdentity string, timeout time.Duration, logger *logrus.Entry) *FreeAdapter {
	return &FreeAdapter{
		baseURL:      baseURL,
		apiKey:       apiKey,
		userIdentity: userIdentity,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger.WithField("provider", Free),
		targets:      freeTargets,
		dailyBudget:  freeDefaultDailyBudget,
	}
}

func (a *FreeAdapter) ID() ID { return Free }

func (a *FreeAdapter) IsConfigured() bool { return a.baseURL != "" }

func (a *FreeAdapter) SupportedTargets() map[string]bool { return a.targets }

func (a *FreeAdapter) DetectsSource() bool { return true }

// reserveBudget decrements today's counter, resetting it on UTC day rollover.
// It returns false when the day's budget is already spent (spec.md 5: "decrement
// happens before the HTTP call and is rolled back on <Unsupported> only").
func (a *FreeAdapter) reserveBudget() bool {
	today := time.Now().UTC().Format("2006-01-02")

	a.budgetMu.Lock()
	defer a.budgetMu.Unlock()

	if a.budgetDay != today {
		a.budgetDay = today
		a.budgetLeft = a.dailyBudget
	}
	if a.budgetLeft <= 0 {
		return false
	}
	a.budgetLeft--
	return true
}

// refundBudget rolls back a reservation, used only for <Unsupported> skips.
func (a *FreeAdapter) refundBudget() {
	today := time.Now().UTC().Format("2006-01-02")
	a.budgetMu.Lock()
	defer a.budgetMu.Unlock()
	if a.budgetDay == today && a.budgetLeft < a.dailyBudget {
		a.budgetLeft++
	}
}

type freeResponse struct {
	TranslatedText string  `json:"translatedText"`
	Confidence     float64 `json:"confidence,omitempty"`
}

// Translate implements Adapter.
func (a *FreeAdapter) Translate(ctx context.Context, text, src, tgt string) (*Result, error) {
	if !a.targets[tgt] {
		return nil, &Error{Kind: Unsupported, Reason: "target_not_supported"}
	}

	if !a.reserveBudget() {
		return nil, &Error{Kind: Permanent, Reason: "budget_exhausted"}
	}

	resolvedSrc := src
	if resolvedSrc == "" {
		resolvedSrc = "auto"
	}

	query := url.Values{}
	query.Set("q", text)
	query.Set("source", resolvedSrc)
	query.Set("target", tgt)
	if a.apiKey != "" {
		query.Set("api_key", a.apiKey)
	}
	if a.userIdentity != "" {
		query.Set("identity", a.userIdentity)
	}

	endpoint := fmt.Sprintf("%s/translate?%s", a.baseURL, query.Encode())

	var resp freeResponse
	if err := doJSON(ctx, a.httpClient, "GET", endpoint, nil, nil, &resp); err != nil {
		if pe, ok := err.(*Error); ok && pe.Kind == Unsupported {
			a.refundBudget()
		}
		return nil, err
	}

	detected := src
	if detected == "" {
		// LibreTranslate-style backends do not echo detected source on this
		// endpoint shape; default to the requested target's sibling language
		// is wrong, so fall back to "en" the way the teacher's LibreTranslate
		// client does when detection is unavailable.
		detected = "en"
	}

	return &Result{TranslatedText: resp.TranslatedText, DetectedSource: detected, Confidence: resp.Confidence}, nil
}

// freeTargets is a broad-ish Argos/LibreTranslate-style coverage set.
var freeTargets = buildTargetSet(
	"en", "es", "fr", "de", "it", "pt", "nl", "ru", "pl", "tr", "ar",
	"zh", "ja", "ko", "hi", "vi", "id", "th", "uk", "el", "he", "sv",
	"da", "fi", "nb", "cs", "ro", "hu", "bg", "fa",
)
