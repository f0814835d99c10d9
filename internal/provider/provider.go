// Package provider implements the three ProviderAdapter variants (Premium, Free,
// Broad) that the orchestrator dispatches across, plus the shared HTTP scaffolding
// and error taxonomy they all speak.
package provider

import (
	"context"
	"time"
)

// ID tags which backend produced a result. Closed set: premium, free, broad.
type ID string

const (
	Premium ID = "premium"
	Free    ID = "free"
	Broad   ID = "broad"
)

// Adapter is the uniform interface the orchestrator depends on. All three
// variants implement it; they share no inheritance.
type Adapter interface {
	// ID returns the provider's identifier.
	ID() ID

	// IsConfigured reports whether the adapter has the credentials/endpoint it
	// needs to be attempted at all.
	IsConfigured() bool

	// SupportedTargets returns the set of LanguageCodes this adapter can
	// translate to.
	SupportedTargets() map[string]bool

	// DetectsSource reports whether the adapter can accept src == "" and infer
	// the source language itself.
	DetectsSource() bool

	// Translate performs one translation. text is guaranteed non-empty and tgt
	// is guaranteed to be in SupportedTargets() by the caller's pre-check, but
	// the adapter must still guard per spec (a defensive re-check is cheap and
	// required by the contract, not a style preference).
	Translate(ctx context.Context, text, src, tgt string) (*Result, error)
}

// Result is the successful output of an adapter call.
type Result struct {
	TranslatedText string
	DetectedSource string
	Confidence     float64 // 0 when the adapter does not report one
}

// ErrorKind is the closed taxonomy an Adapter reports failures with.
type ErrorKind int

const (
	// Unsupported means tgt is outside the adapter's declared capability set.
	Unsupported ErrorKind = iota
	// Transient means the error may clear on retry (timeout, rate limit, 5xx).
	Transient
	// Permanent means retrying this tier this request will not help (4xx,
	// malformed response, quota exhausted).
	Permanent
	// Cancelled means the request's context was cancelled or deadline-exceeded.
	Cancelled
)

func (k ErrorKind) String() string {
	switch k {
	case Unsupported:
		return "unsupported"
	case Transient:
		return "transient"
	case Permanent:
		return "permanent"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is the sum-type failure an Adapter returns instead of raising an
// exception-shaped flow-control error. Reason carries a short machine-readable
// tag such as "budget_exhausted" for Permanent failures so callers can tell
// failures apart without string-matching the Err field.
type Error struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Reason + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

// IsBudgetExhausted reports whether err is a Permanent budget_exhausted failure.
// The orchestrator does not distinguish it: like every other non-transient,
// non-cancelled failure it falls through to the next tier.
func IsBudgetExhausted(err error) bool {
	pe, ok := err.(*Error)
	return ok && pe.Kind == Permanent && pe.Reason == "budget_exhausted"
}

// Health mirrors the teacher's ProviderHealth shape, tracked per adapter by the
// orchestrator (not by the adapter itself, to keep health/metrics bookkeeping in
// one place as spec.md's concurrency model describes).
type Health struct {
	Provider     ID
	Healthy      bool
	LastChecked  time.Time
	FailureCount int
	LastError    string
}

// Metrics mirrors the teacher's ProviderMetrics shape.
type Metrics struct {
	Provider        ID
	TotalRequests   int64
	SuccessfulCount int64
	FailedCount     int64
	TotalLatencyMs  int64
	CharactersCount int64
}
