package broadcast

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/polyglot-relay/internal/cache"
	"github.com/tesseract-hub/polyglot-relay/internal/orchestrator"
	"github.com/tesseract-hub/polyglot-relay/internal/provider"
)

type scriptedAdapter struct {
	id      provider.ID
	targets map[string]bool
	text    map[string]string // target -> translated text
}

func (a *scriptedAdapter) ID() provider.ID                   { return a.id }
func (a *scriptedAdapter) IsConfigured() bool                { return true }
func (a *scriptedAdapter) SupportedTargets() map[string]bool { return a.targets }
func (a *scriptedAdapter) DetectsSource() bool               { return true }
func (a *scriptedAdapter) Translate(ctx context.Context, text, src, tgt string) (*provider.Result, error) {
	if out, ok := a.text[tgt]; ok {
		return &provider.Result{TranslatedText: out}, nil
	}
	return nil, &provider.Error{Kind: provider.Permanent, Reason: "no_script"}
}

func testLogger() *logrus.Entry { return logrus.NewEntry(logrus.New()) }

func newTestOrchestrator() *orchestrator.Orchestrator {
	premium := &scriptedAdapter{
		id:      provider.Premium,
		targets: map[string]bool{"es": true, "fr": true},
		text:    map[string]string{"es": "¡Fuego! Evacúen ahora.", "fr": "Feu ! Évacuez maintenant."},
	}
	return orchestrator.New([]provider.Adapter{premium}, cache.New(100, time.Hour), testLogger(), nil)
}

type recordingSender struct {
	mu      sync.Mutex
	sent    map[string]string
	failFor map[string]bool
}

func newRecordingSender(failFor map[string]bool) *recordingSender {
	return &recordingSender{sent: make(map[string]string), failFor: failFor}
}

func (s *recordingSender) Send(ctx context.Context, recipientID, text string) error {
	if s.failFor[recipientID] {
		return errors.New("dm blocked")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent[recipientID] = text
	return nil
}

func TestBroadcast_MixedLanguageFanOut(t *testing.T) {
	orch := newTestOrchestrator()
	sender := newRecordingSender(map[string]bool{"r5": true})
	b := New(orch, sender.Send, 10, 5, testLogger())

	recipients := []Recipient{
		{UserID: "r1", Target: "en"},
		{UserID: "r2", Target: "es"},
		{UserID: "r3", Target: "fr"},
		{UserID: "r4", IsBot: true, Target: "es"},
		{UserID: "r5", Target: "es", CanReceiveDM: false},
		{UserID: "sender", Target: "en"},
	}
	// CanReceiveDM defaults to false on the zero value in Go, so set it
	// explicitly true for the recipients meant to succeed.
	for i := range recipients {
		if recipients[i].UserID != "r5" {
			recipients[i].CanReceiveDM = true
		}
	}

	report := b.Broadcast(context.Background(), Input{
		SourceText: "Fire! Evacuate now.",
		SourceHint: "en",
		Recipients: recipients,
		SenderID:   "sender",
	})

	if report.Sent != 3 {
		t.Fatalf("Sent = %d, want 3", report.Sent)
	}
	if report.DMFailed != 1 {
		t.Fatalf("DMFailed = %d, want 1", report.DMFailed)
	}
	if report.TranslationFallback != 0 {
		t.Fatalf("TranslationFallback = %d, want 0", report.TranslationFallback)
	}
	if sender.sent["r1"] != "Fire! Evacuate now." {
		t.Fatalf("r1 (same language) should receive source text unchanged, got %q", sender.sent["r1"])
	}
	if sender.sent["r2"] == "" || sender.sent["r2"] == "Fire! Evacuate now." {
		t.Fatalf("r2 should receive a Spanish translation, got %q", sender.sent["r2"])
	}
	if sender.sent["r3"] == "" || sender.sent["r3"] == "Fire! Evacuate now." {
		t.Fatalf("r3 should receive a French translation, got %q", sender.sent["r3"])
	}
	if _, gotBot := sender.sent["r4"]; gotBot {
		t.Fatal("bot recipient should never receive a DM")
	}
	if _, gotSender := sender.sent["sender"]; gotSender {
		t.Fatal("sender should be excluded from its own broadcast")
	}
}

func TestBroadcast_TranslationFailureFallsBackToSource(t *testing.T) {
	orch := newTestOrchestrator() // has no "de" script, so Translate will fail
	sender := newRecordingSender(nil)
	b := New(orch, sender.Send, 10, 5, testLogger())

	report := b.Broadcast(context.Background(), Input{
		SourceText: "hello",
		SourceHint: "en",
		Recipients: []Recipient{{UserID: "r1", Target: "de", CanReceiveDM: true}},
	})

	if report.Sent != 1 || report.TranslationFallback != 1 {
		t.Fatalf("got %+v", report)
	}
	if sender.sent["r1"] != "hello" {
		t.Fatalf("expected source-text fallback, got %q", sender.sent["r1"])
	}
}

func TestBroadcast_EmptyRecipientsIsNotAnError(t *testing.T) {
	orch := newTestOrchestrator()
	sender := newRecordingSender(nil)
	b := New(orch, sender.Send, 10, 5, testLogger())

	report := b.Broadcast(context.Background(), Input{SourceText: "hi", Recipients: nil})
	if report.Sent != 0 || report.DMFailed != 0 {
		t.Fatalf("got %+v", report)
	}
}

func TestBroadcast_UnresolvedTargetRecipientsAreSkipped(t *testing.T) {
	orch := newTestOrchestrator()
	sender := newRecordingSender(nil)
	b := New(orch, sender.Send, 10, 5, testLogger())

	report := b.Broadcast(context.Background(), Input{
		SourceText: "hi",
		Recipients: []Recipient{{UserID: "r1", Target: "auto", CanReceiveDM: true}},
	})
	if report.Sent != 0 || report.DMFailed != 0 {
		t.Fatalf("recipient with unresolved target should be silently skipped, got %+v", report)
	}
}
