package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/polyglot-relay/internal/cache"
	"github.com/tesseract-hub/polyglot-relay/internal/provider"
)

type fakeAdapter struct {
	id         provider.ID
	configured bool
	targets    map[string]bool
	calls      int
	results    []fakeOutcome
}

type fakeOutcome struct {
	result *provider.Result
	err    error
}

func (f *fakeAdapter) ID() provider.ID                      { return f.id }
func (f *fakeAdapter) IsConfigured() bool                   { return f.configured }
func (f *fakeAdapter) SupportedTargets() map[string]bool    { return f.targets }
func (f *fakeAdapter) DetectsSource() bool                  { return true }
func (f *fakeAdapter) Translate(ctx context.Context, text, src, tgt string) (*provider.Result, error) {
	idx := f.calls
	if idx >= len(f.results) {
		idx = len(f.results) - 1
	}
	f.calls++
	o := f.results[idx]
	return o.result, o.err
}

func testLogger() *logrus.Entry {
	return logrus.NewEntry(logrus.New())
}

func TestTranslate_EmptyText(t *testing.T) {
	o := New(nil, cache.New(10, time.Hour), testLogger(), nil)
	got := o.Translate(context.Background(), "", "en", "es")
	if got.Reason != ReasonNoTranslationNeeded {
		t.Fatalf("reason = %q, want %q", got.Reason, ReasonNoTranslationNeeded)
	}
}

func TestTranslate_SourceEqualsTarget(t *testing.T) {
	o := New(nil, cache.New(10, time.Hour), testLogger(), nil)
	got := o.Translate(context.Background(), "hello", "en", "en")
	if got.Reason != ReasonNoTranslationNeeded || got.Text != "hello" {
		t.Fatalf("got %+v", got)
	}
}

func TestTranslate_FirstTierSucceeds(t *testing.T) {
	premium := &fakeAdapter{
		id: provider.Premium, configured: true,
		targets: map[string]bool{"es": true},
		results: []fakeOutcome{{result: &provider.Result{TranslatedText: "hola"}}},
	}
	o := New([]provider.Adapter{premium}, cache.New(10, time.Hour), testLogger(), nil)

	got := o.Translate(context.Background(), "hello", "en", "es")
	if got.Reason != ReasonTranslated || got.Text != "hola" || got.Provider != provider.Premium {
		t.Fatalf("got %+v", got)
	}
	if premium.calls != 1 {
		t.Fatalf("expected exactly one call, got %d", premium.calls)
	}
}

func TestTranslate_FallsThroughOnUnsupported(t *testing.T) {
	premium := &fakeAdapter{id: provider.Premium, configured: true, targets: map[string]bool{"fr": true}}
	free := &fakeAdapter{
		id: provider.Free, configured: true, targets: map[string]bool{"es": true},
		results: []fakeOutcome{{result: &provider.Result{TranslatedText: "hola"}}},
	}
	o := New([]provider.Adapter{premium, free}, cache.New(10, time.Hour), testLogger(), nil)

	got := o.Translate(context.Background(), "hello", "en", "es")
	if got.Provider != provider.Free {
		t.Fatalf("expected fallback to free tier, got %+v", got)
	}
}

func TestTranslate_BudgetExhaustedFallsThrough(t *testing.T) {
	free := &fakeAdapter{
		id: provider.Free, configured: true, targets: map[string]bool{"es": true},
		results: []fakeOutcome{{err: &provider.Error{Kind: provider.Permanent, Reason: "budget_exhausted"}}},
	}
	broad := &fakeAdapter{
		id: provider.Broad, configured: true, targets: map[string]bool{"es": true},
		results: []fakeOutcome{{result: &provider.Result{TranslatedText: "hola"}}},
	}
	o := New([]provider.Adapter{free, broad}, cache.New(10, time.Hour), testLogger(), nil)

	got := o.Translate(context.Background(), "hello", "en", "es")
	if got.Provider != provider.Broad {
		t.Fatalf("expected fallback to broad after budget_exhausted, got %+v", got)
	}
}

func TestTranslate_TransientRetriesOnceThenFallsThrough(t *testing.T) {
	free := &fakeAdapter{
		id: provider.Free, configured: true, targets: map[string]bool{"es": true},
		results: []fakeOutcome{
			{err: &provider.Error{Kind: provider.Transient, Reason: "timeout"}},
			{err: &provider.Error{Kind: provider.Transient, Reason: "timeout"}},
		},
	}
	broad := &fakeAdapter{
		id: provider.Broad, configured: true, targets: map[string]bool{"es": true},
		results: []fakeOutcome{{result: &provider.Result{TranslatedText: "hola"}}},
	}
	o := New([]provider.Adapter{free, broad}, cache.New(10, time.Hour), testLogger(), nil)
	o.retryDelay = time.Millisecond

	got := o.Translate(context.Background(), "hello", "en", "es")
	if got.Provider != provider.Broad {
		t.Fatalf("expected fallback after exhausted retry, got %+v", got)
	}
	if free.calls != 2 {
		t.Fatalf("expected exactly one retry (2 calls), got %d", free.calls)
	}
}

func TestTranslate_CancelledStopsImmediately(t *testing.T) {
	free := &fakeAdapter{
		id: provider.Free, configured: true, targets: map[string]bool{"es": true},
		results: []fakeOutcome{{err: &provider.Error{Kind: provider.Cancelled, Reason: "context_done"}}},
	}
	broad := &fakeAdapter{
		id: provider.Broad, configured: true, targets: map[string]bool{"es": true},
		results: []fakeOutcome{{result: &provider.Result{TranslatedText: "hola"}}},
	}
	o := New([]provider.Adapter{free, broad}, cache.New(10, time.Hour), testLogger(), nil)

	got := o.Translate(context.Background(), "hello", "en", "es")
	if got.Reason != ReasonCancelled {
		t.Fatalf("expected cancelled reason, got %+v", got)
	}
	if broad.calls != 0 {
		t.Fatal("expected broad tier never attempted after cancellation")
	}
}

func TestTranslate_AllTiersFail(t *testing.T) {
	free := &fakeAdapter{
		id: provider.Free, configured: true, targets: map[string]bool{"es": true},
		results: []fakeOutcome{{err: &provider.Error{Kind: provider.Permanent, Reason: "client_error"}}},
	}
	o := New([]provider.Adapter{free}, cache.New(10, time.Hour), testLogger(), nil)

	got := o.Translate(context.Background(), "hello", "en", "es")
	if got.Reason != ReasonAllProvidersFailed {
		t.Fatalf("got %+v", got)
	}
}

func TestTranslate_CacheHitSkipsProviders(t *testing.T) {
	premium := &fakeAdapter{
		id: provider.Premium, configured: true, targets: map[string]bool{"es": true},
		results: []fakeOutcome{{result: &provider.Result{TranslatedText: "hola"}}},
	}
	c := cache.New(10, time.Hour)
	o := New([]provider.Adapter{premium}, c, testLogger(), nil)

	first := o.Translate(context.Background(), "hello", "en", "es")
	if first.CacheHit {
		t.Fatal("first call should not be a cache hit")
	}

	second := o.Translate(context.Background(), "hello", "en", "es")
	if !second.CacheHit || second.Text != "hola" {
		t.Fatalf("expected cache hit on second call, got %+v", second)
	}
	if premium.calls != 1 {
		t.Fatalf("expected provider called exactly once across both requests, got %d", premium.calls)
	}
}

func TestTranslate_UnconfiguredTierSkipped(t *testing.T) {
	premium := &fakeAdapter{id: provider.Premium, configured: false, targets: map[string]bool{"es": true}}
	free := &fakeAdapter{
		id: provider.Free, configured: true, targets: map[string]bool{"es": true},
		results: []fakeOutcome{{result: &provider.Result{TranslatedText: "hola"}}},
	}
	o := New([]provider.Adapter{premium, free}, cache.New(10, time.Hour), testLogger(), nil)

	got := o.Translate(context.Background(), "hello", "en", "es")
	if got.Provider != provider.Free {
		t.Fatalf("expected unconfigured premium to be skipped, got %+v", got)
	}
}
