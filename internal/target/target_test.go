package target

import (
	"testing"

	"github.com/tesseract-hub/polyglot-relay/internal/directory"
	"github.com/tesseract-hub/polyglot-relay/internal/normalize"
)

func newResolver(t *testing.T) *Resolver {
	t.Helper()
	dir, err := directory.Load("")
	if err != nil {
		t.Fatalf("directory.Load: %v", err)
	}
	return New(normalize.New(dir))
}

func TestResolve_ExplicitInputWins(t *testing.T) {
	r := newResolver(t)
	got := r.Resolve(Input{
		ExplicitInput: "Spanish",
		UserPref:      "fr",
		GuildDefault:  "de",
		RoleLookup:    func(string, string) []string { return []string{"it"} },
	})
	if got != "es" {
		t.Fatalf("Resolve() = %q, want es", got)
	}
}

func TestResolve_ExplicitInputUnknown(t *testing.T) {
	r := newResolver(t)
	got := r.Resolve(Input{ExplicitInput: "not-a-language", UserPref: "fr"})
	if got != normalize.Unknown {
		t.Fatalf("Resolve() = %q, want %q", got, normalize.Unknown)
	}
}

func TestResolve_UserPrefBeatsRoleAndDefault(t *testing.T) {
	r := newResolver(t)
	got := r.Resolve(Input{
		UserPref:     "fr",
		GuildDefault: "de",
		RoleLookup:   func(string, string) []string { return []string{"it"} },
	})
	if got != "fr" {
		t.Fatalf("Resolve() = %q, want fr", got)
	}
}

func TestResolve_RoleBeatsGuildDefault(t *testing.T) {
	r := newResolver(t)
	got := r.Resolve(Input{
		GuildDefault: "de",
		RoleLookup:   func(string, string) []string { return []string{"it", "ja"} },
	})
	if got != "it" {
		t.Fatalf("Resolve() = %q, want it (first role)", got)
	}
}

func TestResolve_GuildDefaultWhenNoRole(t *testing.T) {
	r := newResolver(t)
	got := r.Resolve(Input{
		GuildDefault: "de",
		RoleLookup:   func(string, string) []string { return nil },
	})
	if got != "de" {
		t.Fatalf("Resolve() = %q, want de", got)
	}
}

func TestResolve_AutoWhenNothingResolves(t *testing.T) {
	r := newResolver(t)
	got := r.Resolve(Input{})
	if got != normalize.Auto {
		t.Fatalf("Resolve() = %q, want %q", got, normalize.Auto)
	}
}

func TestResolve_NilRoleLookupDoesNotPanic(t *testing.T) {
	r := newResolver(t)
	got := r.Resolve(Input{GuildDefault: "de"})
	if got != "de" {
		t.Fatalf("Resolve() = %q, want de", got)
	}
}
