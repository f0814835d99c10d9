// Package normalize turns arbitrary user input into a canonical language code
// or a recognizable "unknown" sentinel (spec.md 4.2). It is deterministic,
// total, and side-effect-free — grounded in the teacher's
// normalizeLanguageCode regional-variant folding
// (internal/handlers/translation_handler.go), generalized into the full
// alias/flag/dialect algorithm the spec calls for.
package normalize

import (
	"regexp"
	"strings"

	"github.com/tesseract-hub/polyglot-relay/internal/directory"
)

// Auto is the sentinel meaning "no preference determined". It is never sent
// to a provider.
const Auto = "auto"

// Unknown is returned when the input cannot be resolved against the
// directory. Normalize never guesses.
const Unknown = "unknown"

var regionalVariant = regexp.MustCompile(`^[a-zA-Z]{2,3}-[a-zA-Z]{2,4}$`)

// Normalizer resolves free-form input against a Directory.
type Normalizer struct {
	dir *directory.Directory
}

// New constructs a Normalizer backed by dir.
func New(dir *directory.Directory) *Normalizer {
	return &Normalizer{dir: dir}
}

// Normalize implements the six-step algorithm of spec.md 4.2.
func (n *Normalizer) Normalize(input string) string {
	trimmed := strings.Trim(strings.TrimSpace(input), `"'`)
	if trimmed == "" || strings.EqualFold(trimmed, Auto) {
		return Auto
	}

	if regionalVariant.MatchString(trimmed) {
		if e, ok := n.dir.LookupByAlias(strings.ToLower(trimmed)); ok {
			return e.Code
		}
	}

	if isFlagSequence(trimmed) {
		if e, ok := n.dir.LookupByAlias(trimmed); ok {
			return e.Code
		}
	}

	if e, ok := n.dir.LookupByAlias(trimmed); ok {
		return e.Code
	}

	return Unknown
}

// isFlagSequence reports whether s is made up entirely of regional-indicator
// codepoints (the building blocks of flag emoji), per spec.md 4.2 step 4.
func isFlagSequence(s string) bool {
	hasOne := false
	for _, r := range s {
		if r < 0x1F1E6 || r > 0x1F1FF { // Unicode Regional Indicator Symbol range
			return false
		}
		hasOne = true
	}
	return hasOne
}
