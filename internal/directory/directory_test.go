package directory

import "testing"

func TestLoad_Defaults(t *testing.T) {
	d, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if len(d.Entries()) < 40 {
		t.Fatalf("expected a sizeable default table, got %d entries", len(d.Entries()))
	}
}

func TestLookupByAlias_CaseInsensitive(t *testing.T) {
	d, _ := Load("")
	variants := []string{"ES", "es", "Es", "Spanish", "spanish", " spanish "}
	for _, v := range variants {
		e, ok := d.LookupByAlias(v)
		if !ok {
			t.Fatalf("LookupByAlias(%q) missed", v)
		}
		if e.Code != "es" {
			t.Fatalf("LookupByAlias(%q) = %q, want es", v, e.Code)
		}
	}
}

func TestLookupByAlias_RegionalVariant(t *testing.T) {
	d, _ := Load("")
	e, ok := d.LookupByAlias("zh-CN")
	if !ok || e.Code != "zh" {
		t.Fatalf("zh-CN should resolve to zh, got %+v ok=%v", e, ok)
	}
}

func TestLookupByAlias_Flag(t *testing.T) {
	d, _ := Load("")
	e, ok := d.LookupByAlias("🇪🇸")
	if !ok || e.Code != "es" {
		t.Fatalf("🇪🇸 should resolve to es, got %+v ok=%v", e, ok)
	}
}

func TestLookupByAlias_Unknown(t *testing.T) {
	d, _ := Load("")
	if _, ok := d.LookupByAlias("not-a-language"); ok {
		t.Fatal("expected miss for unrecognized input")
	}
}

func TestEveryAliasResolvesToNonEmptyDisplayName(t *testing.T) {
	d, _ := Load("")
	for _, e := range d.Entries() {
		for _, alias := range e.Aliases {
			got, ok := d.LookupByAlias(alias)
			if !ok {
				t.Fatalf("alias %q on %q did not resolve", alias, e.Code)
			}
			if d.DisplayName(got.Code) == "" {
				t.Fatalf("display name for %q is empty", got.Code)
			}
		}
	}
}

func TestAliasesAndFlagsGloballyUnique(t *testing.T) {
	seenAlias := map[string]string{}
	for _, e := range defaultEntries {
		for _, a := range e.Aliases {
			key := a
			if prev, ok := seenAlias[key]; ok && prev != e.Code {
				t.Fatalf("alias %q claimed by both %q and %q", a, prev, e.Code)
			}
			seenAlias[key] = e.Code
		}
	}
	seenFlag := map[string]string{}
	for _, e := range defaultEntries {
		for _, f := range e.FlagEmojis {
			if prev, ok := seenFlag[f]; ok && prev != e.Code {
				t.Fatalf("flag %q claimed by both %q and %q", f, prev, e.Code)
			}
			seenFlag[f] = e.Code
		}
	}
}
