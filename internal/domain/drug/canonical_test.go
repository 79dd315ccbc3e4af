package drug

import (
	"testing"

	"github.com/medassist/medassist/pkg/fault"
)

func newTestAliases() *AliasTable {
	return NewAliasTable(CatalogVersion, Catalog())
}

func TestCanonicalize_BrandNames(t *testing.T) {
	aliases := newTestAliases()
	tests := []struct {
		in   string
		want string
	}{
		{"Lipitor", "atorvastatin"},
		{"Coumadin", "warfarin"},
		{"Advil", "ibuprofen"},
		{"Plavix", "clopidogrel"},
		{"PRILOSEC", "omeprazole"},
	}
	for _, tt := range tests {
		got, err := aliases.Canonicalize(tt.in)
		if err != nil {
			t.Fatalf("Canonicalize(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalize_GenericAliases(t *testing.T) {
	aliases := newTestAliases()
	got, err := aliases.Canonicalize("warfarin sodium")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "warfarin" {
		t.Errorf("expected salt-qualified generic to resolve, got %q", got)
	}
}

func TestCanonicalize_StripsDoseAndForm(t *testing.T) {
	aliases := newTestAliases()
	tests := []struct {
		in   string
		want string
	}{
		{"Metformin 500mg", "metformin"},
		{"aspirin 81 mg tablets", "aspirin"},
		{"Metoprolol ER 25mg", "metoprolol"},
		{"Omeprazole 20mg capsules, oral", "omeprazole"},
		{"Lisinopril 2.5mg tab", "lisinopril"},
		{"sertraline oral solution", "sertraline"},
	}
	for _, tt := range tests {
		got, err := aliases.Canonicalize(tt.in)
		if err != nil {
			t.Fatalf("Canonicalize(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalize_UnknownPassesThrough(t *testing.T) {
	aliases := newTestAliases()
	got, err := aliases.Canonicalize("Examplinib 50mg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "examplinib" {
		t.Errorf("expected pass-through, got %q", got)
	}
}

func TestCanonicalize_EmptyAfterNormalization(t *testing.T) {
	aliases := newTestAliases()
	for _, in := range []string{"", "   ", "500mg tablets", "10 mg"} {
		_, err := aliases.Canonicalize(in)
		if !fault.IsKind(err, fault.UnresolvedDrugName) {
			t.Errorf("Canonicalize(%q): expected UnresolvedDrugName, got %v", in, err)
		}
	}
}

func TestPairKey(t *testing.T) {
	a, b := PairKey("warfarin", "ibuprofen")
	if a != "ibuprofen" || b != "warfarin" {
		t.Errorf("expected lexical order, got (%q, %q)", a, b)
	}
	a2, b2 := PairKey("ibuprofen", "warfarin")
	if a2 != a || b2 != b {
		t.Error("expected both argument orders to produce the same key")
	}
}
