// Package directory is the ground truth for language identity: canonical
// codes, their aliases and flag emojis, and per-provider capability sets
// (spec.md 4.1). The table is immutable after Load, so reads need no locking
// (spec.md section 5, "Shared resource policy").
package directory

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Entry is one row of the directory.
type Entry struct {
	Code        string
	DisplayName string
	Aliases     []string
	FlagEmojis  []string
}

// Directory is the loaded, queryable language table.
type Directory struct {
	entries      []Entry
	byCode       map[string]*Entry
	byAlias      map[string]*Entry
	byFlag       map[string]*Entry
	capabilities map[string]map[string]bool // providerID -> code -> supported
}

// Load builds a Directory from the embedded defaults, optionally merged with
// a JSON overlay file at path (spec.md section 6, LANGUAGE_DIRECTORY_PATH).
// The overlay's entries are appended/override-by-code; an absent overlay file
// is not an error — the embedded defaults alone are a valid directory — but
// an unreadable or malformed one is.
func Load(path string) (*Directory, error) {
	entries := make([]Entry, len(defaultEntries))
	copy(entries, defaultEntries)

	if path != "" {
		overlay, err := loadOverlay(path)
		if err != nil {
			return nil, fmt.Errorf("loading language directory overlay: %w", err)
		}
		entries = mergeOverlay(entries, overlay)
	}

	return build(entries)
}

func loadOverlay(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var overlay []Entry
	if err := json.Unmarshal(data, &overlay); err != nil {
		return nil, err
	}
	return overlay, nil
}

func mergeOverlay(base, overlay []Entry) []Entry {
	byCode := make(map[string]int, len(base))
	for i, e := range base {
		byCode[e.Code] = i
	}
	for _, e := range overlay {
		if idx, ok := byCode[e.Code]; ok {
			base[idx] = e
		} else {
			base = append(base, e)
		}
	}
	return base
}

func build(entries []Entry) (*Directory, error) {
	d := &Directory{
		entries:      entries,
		byCode:       make(map[string]*Entry, len(entries)),
		byAlias:      make(map[string]*Entry, len(entries)*3),
		byFlag:       make(map[string]*Entry, len(entries)),
		capabilities: make(map[string]map[string]bool),
	}

	for i := range d.entries {
		e := &d.entries[i]
		code := strings.ToLower(e.Code)
		e.Code = code

		if _, exists := d.byCode[code]; exists {
			return nil, fmt.Errorf("duplicate canonical code %q in language directory", code)
		}
		d.byCode[code] = e
		d.byAlias[code] = e

		for _, alias := range e.Aliases {
			key := strings.ToLower(alias)
			if existing, exists := d.byAlias[key]; exists && existing != e {
				return nil, fmt.Errorf("alias %q claimed by both %q and %q", key, existing.Code, code)
			}
			d.byAlias[key] = e
		}
		for _, flag := range e.FlagEmojis {
			if existing, exists := d.byFlag[flag]; exists && existing != e {
				return nil, fmt.Errorf("flag %q claimed by both %q and %q", flag, existing.Code, code)
			}
			d.byFlag[flag] = e
		}
	}

	return d, nil
}

// LookupByAlias case-folds input, strips whitespace, and tries an exact alias
// match, falling back to a flag-emoji match. Regional variants like "zh-cn"
// are expected to already be present as an alias on the root entry (see
// languages.go). Returns a zero Entry and false on miss — "unrecognized input" is not an
// error (spec.md 4.1 "Failure modes").
func (d *Directory) LookupByAlias(input string) (Entry, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Entry{}, false
	}
	folded := strings.ToLower(trimmed)
	if e, ok := d.byAlias[folded]; ok {
		return *e, true
	}
	if e, ok := d.byFlag[trimmed]; ok {
		return *e, true
	}
	return Entry{}, false
}

// DisplayName returns the canonical display name for code, or "" if code is
// not a known canonical code.
func (d *Directory) DisplayName(code string) string {
	if e, ok := d.byCode[strings.ToLower(code)]; ok {
		return e.DisplayName
	}
	return ""
}

// Entries returns the full loaded table, for composition-root wiring that
// needs to populate adapter capability sets back into the directory.
func (d *Directory) Entries() []Entry {
	return d.entries
}

// SetCapabilities records, for providerID, the set of canonical codes it can
// translate to. Called once per adapter at composition-root wiring time.
func (d *Directory) SetCapabilities(providerID string, targets map[string]bool) {
	d.capabilities[providerID] = targets
}

// Supports reports whether providerID can translate to code.
func (d *Directory) Supports(providerID, code string) bool {
	targets, ok := d.capabilities[providerID]
	if !ok {
		return false
	}
	return targets[strings.ToLower(code)]
}
