// Package target implements the TargetResolver (spec.md 4.6): the single
// point that turns the messy world of "did the user say what they want?"
// into a clean LanguageCode or a clear needs-target/unknown signal. It never
// calls a provider and never raises — grounded in the teacher's
// UserLanguagePreference/TenantLanguagePreference precedence idea
// (internal/models/translation.go) and the preference read/write handlers
// (internal/handlers/translation_handler.go, GetPreference/UpdatePreference),
// restructured around the host-owned role-lookup callback the spec requires
// instead of a DB-only lookup.
package target

import "github.com/tesseract-hub/polyglot-relay/internal/normalize"

// RoleLookup returns the LanguageCodes implied by a user's language roles in
// a guild, in the host's preferred precedence order. It must not block
// indefinitely; the caller is expected to have bound it to a context-scoped
// deadline already (spec.md 4.6, "Synchronous or minimally asynchronous").
type RoleLookup func(userID, guildID string) []string

// Input collects everything one resolution needs.
type Input struct {
	UserID        string
	GuildID       string
	ExplicitInput string // raw, unnormalized; "" means not provided
	UserPref      string // already-normalized explicit assignment, "" if none
	GuildDefault  string // already-normalized guild default, "" if unconfigured
	RoleLookup    RoleLookup
}

// Resolver resolves a target LanguageCode for a (recipient, guild,
// explicit-request) triple, per the five-step priority chain of spec.md 4.6.
type Resolver struct {
	normalizer *normalize.Normalizer
}

// New constructs a Resolver backed by the same Normalizer the host uses for
// free-form input elsewhere, so an explicit target argument is parsed with
// identical rules to everything else a user types.
func New(n *normalize.Normalizer) *Resolver {
	return &Resolver{normalizer: n}
}

// Resolve implements the priority order of spec.md 4.6: explicit argument →
// user-set preference → language role → guild default → auto. The first
// matching step wins; later steps are never consulted once one matches.
func (r *Resolver) Resolve(in Input) string {
	if in.ExplicitInput != "" {
		code := r.normalizer.Normalize(in.ExplicitInput)
		// ExplicitInput is non-empty here, so Normalize yields a code,
		// Unknown, or Auto only for a literal "auto" — surfaced verbatim so
		// the caller can present "I don't recognize that" or "please specify".
		return code
	}

	if in.UserPref != "" {
		return in.UserPref
	}

	if in.RoleLookup != nil {
		if codes := in.RoleLookup(in.UserID, in.GuildID); len(codes) > 0 {
			return codes[0]
		}
	}

	if in.GuildDefault != "" {
		return in.GuildDefault
	}

	return normalize.Auto
}
