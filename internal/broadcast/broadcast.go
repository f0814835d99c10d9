// Package broadcast implements the Broadcaster (spec.md 4.7): one source
// message fanned out to N recipients, each receiving a personalized
// translation, grouped by target language so the orchestrator is called once
// per distinct target rather than once per recipient. Bounded concurrency is
// grounded in the teacher's TranslateBatch semaphore pattern
// (internal/clients/libretranslate.go, internal/clients/huggingface.go),
// nested one level deeper to bound both groups and per-group DM fan-out.
package broadcast

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/polyglot-relay/internal/normalize"
	"github.com/tesseract-hub/polyglot-relay/internal/orchestrator"
)

// Recipient is one potential destination for a broadcast.
type Recipient struct {
	UserID       string
	IsBot        bool
	CanReceiveDM bool
	Target       string // resolved LanguageCode, or normalize.Auto if unresolved
}

// Sender delivers a chosen text to a single recipient. Its error is recorded
// per-recipient and never aborts the rest of the broadcast (spec.md 4.7
// "Partial failure policy").
type Sender func(ctx context.Context, recipientID, text string) error

// Input collects everything one broadcast needs.
type Input struct {
	SourceText   string
	SourceHint   string // "" if source language is not declared/detected
	Recipients   []Recipient
	SenderID     string // excluded from delivery
	OriginLabel  string // for audit logging only
}

// Outcome is the per-recipient result, one of sent / delivery_failed /
// translation_fallback-with-sent (fallback is recorded at the group level and
// reflected per-recipient via Fallback).
type Outcome struct {
	RecipientID string
	Sent        bool
	Fallback    bool
	Err         error
}

// Report is the public return value of Broadcast: aggregate counts plus
// per-recipient outcomes (spec.md 4.7 step 5). Outcomes holds every outcome
// when there are at most maxSampledErrors of them; otherwise it holds only
// failed outcomes, at most maxSampledErrors. RunID
// correlates this report with the "broadcast complete" log line it was
// built from.
type Report struct {
	RunID               string
	Sent                int
	DMFailed            int
	TranslationFallback int
	Outcomes            []Outcome
}

const maxSampledErrors = 20

// Broadcaster fans a source message out to recipients, translating once per
// distinct target language.
type Broadcaster struct {
	orch            *orchestrator.Orchestrator
	send            Sender
	groupConcurrency int
	dmConcurrency    int
	logger           *logrus.Entry
}

// New constructs a Broadcaster. groupConcurrency and dmConcurrency come from
// BROADCAST_GROUP_CONCURRENCY / BROADCAST_DM_CONCURRENCY (spec.md section 6).
func New(orch *orchestrator.Orchestrator, send Sender, groupConcurrency, dmConcurrency int, logger *logrus.Entry) *Broadcaster {
	if groupConcurrency <= 0 {
		groupConcurrency = 10
	}
	if dmConcurrency <= 0 {
		dmConcurrency = 5
	}
	return &Broadcaster{
		orch:             orch,
		send:             send,
		groupConcurrency: groupConcurrency,
		dmConcurrency:    dmConcurrency,
		logger:           logger,
	}
}

type group struct {
	target     string
	recipients []Recipient
}

// Broadcast implements spec.md 4.7's algorithm. The caller is responsible for
// emitting the channel-level alert before calling Broadcast (spec.md 4.7
// "Ordering guarantee" / section 5's concurrency model) — this function only
// handles the per-recipient fan-out.
func (b *Broadcaster) Broadcast(ctx context.Context, in Input) Report {
	runID := uuid.NewString()
	deliverable, excluded := filterRecipients(in.Recipients, in.SenderID)
	groups := groupByTarget(deliverable)

	var (
		mu       sync.Mutex
		outcomes []Outcome
		sent     int
		dmFailed int
		fallback int
	)

	// Recipients already known to be undeliverable (DM-disabled) are recorded
	// as delivery failures without ever entering a translation group — no
	// sense spending a provider call to personalize a message that cannot be
	// sent (spec.md 4.7 step 1 vs. step 5's per-recipient delivery_failed).
	for _, r := range excluded {
		dmFailed++
		outcomes = append(outcomes, Outcome{RecipientID: r.UserID, Err: errDeliveryDisabled})
	}

	var wg sync.WaitGroup
	groupSem := make(chan struct{}, b.groupConcurrency)

	for _, g := range groups {
		g := g
		wg.Add(1)
		groupSem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-groupSem }()

			text, isFallback := b.resolveText(ctx, in.SourceText, in.SourceHint, g.target)

			dmSem := make(chan struct{}, b.dmConcurrency)
			var dmWG sync.WaitGroup

			for _, r := range g.recipients {
				r := r
				dmWG.Add(1)
				dmSem <- struct{}{}
				go func() {
					defer dmWG.Done()
					defer func() { <-dmSem }()

					err := b.send(ctx, r.UserID, text)

					mu.Lock()
					defer mu.Unlock()
					if err != nil {
						dmFailed++
						outcomes = append(outcomes, Outcome{RecipientID: r.UserID, Err: err})
						return
					}
					sent++
					if isFallback {
						fallback++
					}
					outcomes = append(outcomes, Outcome{RecipientID: r.UserID, Sent: true, Fallback: isFallback})
				}()
			}
			dmWG.Wait()
		}()
	}

	wg.Wait()

	if len(outcomes) > maxSampledErrors {
		sampled := make([]Outcome, 0, maxSampledErrors)
		for _, o := range outcomes {
			if o.Err != nil {
				sampled = append(sampled, o)
			}
			if len(sampled) >= maxSampledErrors {
				break
			}
		}
		outcomes = sampled
	}

	b.logger.WithFields(logrus.Fields{
		"run_id":               runID,
		"origin":               in.OriginLabel,
		"groups":               len(groups),
		"sent":                 sent,
		"dm_failed":            dmFailed,
		"translation_fallback": fallback,
	}).Info("broadcast complete")

	return Report{RunID: runID, Sent: sent, DMFailed: dmFailed, TranslationFallback: fallback, Outcomes: outcomes}
}

// resolveText implements spec.md 4.7 step 3: use source text directly when
// the group's target matches the source language, otherwise call the
// orchestrator once for the whole group and fall back to source text on
// failure.
func (b *Broadcaster) resolveText(ctx context.Context, sourceText, sourceHint, tgt string) (text string, isFallback bool) {
	if sourceHint != "" && sourceHint == tgt {
		return sourceText, false
	}

	result := b.orch.Translate(ctx, sourceText, sourceHint, tgt)
	if result.Reason == orchestrator.ReasonTranslated || result.Reason == orchestrator.ReasonCacheHit {
		return result.Text, false
	}
	return sourceText, true
}

var errDeliveryDisabled = errors.New("recipient has direct messages disabled")

// filterRecipients drops bots and the sender outright (spec.md 4.7 step 1),
// separates out known DM-disabled recipients as deliverable=false (they
// still surface as delivery_failed outcomes, just without a wasted
// translation), and drops anyone whose resolved target is still auto (no
// preference means no personalization is possible, so there is nothing to
// report for them).
func filterRecipients(recipients []Recipient, senderID string) (deliverable, excluded []Recipient) {
	for _, r := range recipients {
		if r.IsBot || r.UserID == senderID {
			continue
		}
		if r.Target == "" || r.Target == normalize.Auto {
			continue
		}
		if !r.CanReceiveDM {
			excluded = append(excluded, r)
			continue
		}
		deliverable = append(deliverable, r)
	}
	return deliverable, excluded
}

// groupByTarget groups recipients by resolved target, preserving first-seen
// order for deterministic test assertions (delivery order itself is
// unspecified per spec.md 4.7 "Ordering guarantee").
func groupByTarget(recipients []Recipient) []group {
	index := make(map[string]int)
	var groups []group
	for _, r := range recipients {
		if i, ok := index[r.Target]; ok {
			groups[i].recipients = append(groups[i].recipients, r)
			continue
		}
		index[r.Target] = len(groups)
		groups = append(groups, group{target: r.Target, recipients: []Recipient{r}})
	}
	return groups
}
