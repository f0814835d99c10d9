package normalize

import (
	"testing"

	"github.com/tesseract-hub/polyglot-relay/internal/directory"
)

func newNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	dir, err := directory.Load("")
	if err != nil {
		t.Fatalf("directory.Load: %v", err)
	}
	return New(dir)
}

func TestNormalize_Empty(t *testing.T) {
	n := newNormalizer(t)
	if got := n.Normalize(""); got != Auto {
		t.Fatalf("Normalize(\"\") = %q, want %q", got, Auto)
	}
}

func TestNormalize_CaseInvariance(t *testing.T) {
	n := newNormalizer(t)
	variants := []string{"ES", "es", "Es", "Spanish", "spanish"}
	want := n.Normalize(variants[0])
	for _, v := range variants[1:] {
		if got := n.Normalize(v); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", v, got, want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := newNormalizer(t)
	for _, input := range []string{"es", "Spanish", "zh-CN", "unknown-token", ""} {
		first := n.Normalize(input)
		second := n.Normalize(first)
		if first != second {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", input, first, second)
		}
	}
}

func TestNormalize_CanonicalCodeIsFixedPoint(t *testing.T) {
	n := newNormalizer(t)
	dir, _ := directory.Load("")
	for _, e := range dir.Entries() {
		if got := n.Normalize(e.Code); got != e.Code {
			t.Fatalf("Normalize(%q) = %q, want %q", e.Code, got, e.Code)
		}
	}
}

func TestNormalize_Unknown(t *testing.T) {
	n := newNormalizer(t)
	if got := n.Normalize("not-a-real-language"); got != Unknown {
		t.Fatalf("Normalize(unrecognized) = %q, want %q", got, Unknown)
	}
}

func TestNormalize_RegionalVariant(t *testing.T) {
	n := newNormalizer(t)
	if got := n.Normalize("pt-BR"); got != "pt" {
		t.Fatalf("Normalize(pt-BR) = %q, want pt", got)
	}
}
