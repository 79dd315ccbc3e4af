package drug

import (
	"regexp"
	"strings"

	"github.com/medassist/medassist/pkg/fault"
)

// dosePattern matches dosage tokens like "10mg", "2.5mg", "500mcg", "5ml".
var dosePattern = regexp.MustCompile(`^\d+(\.\d+)?(mg|mcg|g|ml|iu)?$`)

// formTokens are packaging and formulation words stripped during
// canonicalization. Bare unit tokens cover split dosages like "500 mg".
var formTokens = map[string]bool{
	"mg": true, "mcg": true, "g": true, "ml": true, "iu": true,
	"tablet": true, "tablets": true, "tab": true, "tabs": true,
	"capsule": true, "capsules": true, "cap": true, "caps": true,
	"er": true, "xr": true, "sr": true,
	"oral": true, "solution": true, "suspension": true,
}

// AliasTable resolves brand names to canonical generic identifiers. It is
// built once at startup from the drug catalog and immutable afterwards.
type AliasTable struct {
	Version string
	aliases map[string]string
}

// NewAliasTable builds the brand-to-generic alias table from a catalog.
func NewAliasTable(version string, catalog []Drug) *AliasTable {
	aliases := make(map[string]string)
	for _, d := range catalog {
		canonical := strings.ToLower(d.Name)
		for _, brand := range d.BrandNames {
			aliases[strings.ToLower(brand)] = canonical
		}
		// Salt-qualified generic names resolve to the plain name,
		// e.g. "warfarin sodium" -> "warfarin".
		if generic := strings.ToLower(d.GenericName); generic != "" && generic != canonical {
			aliases[generic] = canonical
		}
	}
	return &AliasTable{Version: version, aliases: aliases}
}

// Canonicalize normalizes a raw drug name to its canonical identifier:
// lowercase, whitespace collapsed, dosage and formulation suffixes stripped,
// brand names resolved to generics. Unknown but well-formed names pass
// through as their own canonical identifier. Returns UnresolvedDrugName only
// when nothing remains after normalization. Pure, no I/O.
func (t *AliasTable) Canonicalize(raw string) (string, error) {
	normalized := normalize(raw)
	if normalized == "" {
		return "", fault.Newf(fault.UnresolvedDrugName, "drug name %q is empty after normalization", raw)
	}
	if generic, ok := t.aliases[normalized]; ok {
		return generic, nil
	}
	return normalized, nil
}

func normalize(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.Map(func(r rune) rune {
		switch r {
		case ',', '.', '(', ')', ';':
			return ' '
		}
		return r
	}, lowered)

	var kept []string
	for _, tok := range strings.Fields(lowered) {
		if formTokens[tok] || dosePattern.MatchString(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// PairKey orders two canonical identifiers so that the pair (a, b) and
// (b, a) map to the same stored record.
func PairKey(a, b string) (string, string) {
	if a <= b {
		return a, b
	}
	return b, a
}
