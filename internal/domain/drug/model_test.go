package drug

import "testing"

func TestSeverity_Rank(t *testing.T) {
	ordered := []Severity{SeverityNone, SeverityMild, SeverityModerate, SeveritySevere, SeverityContraindicated}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Rank() <= ordered[i-1].Rank() {
			t.Errorf("expected %s to rank above %s", ordered[i], ordered[i-1])
		}
	}
	if Severity("bogus").Rank() != -1 {
		t.Error("expected unknown severity to rank below none")
	}
}

func TestSeverity_AtLeast(t *testing.T) {
	if !SeverityContraindicated.AtLeast(SeveritySevere) {
		t.Error("contraindicated should be at least severe")
	}
	if !SeveritySevere.AtLeast(SeveritySevere) {
		t.Error("severe should be at least severe")
	}
	if SeverityModerate.AtLeast(SeveritySevere) {
		t.Error("moderate should not be at least severe")
	}
}

func TestSeverity_Valid(t *testing.T) {
	for _, s := range []Severity{SeverityNone, SeverityMild, SeverityModerate, SeveritySevere, SeverityContraindicated} {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if Severity("critical").Valid() {
		t.Error("expected unknown severity to be invalid")
	}
}

func TestCatalogAndFacts_Consistency(t *testing.T) {
	byName := make(map[string]Drug)
	for _, d := range Catalog() {
		if d.Name == "" || d.DrugClass == "" {
			t.Errorf("catalog entry %q missing name or class", d.Name)
		}
		byName[d.Name] = d
	}
	for _, f := range Facts() {
		if !f.Severity.Valid() {
			t.Errorf("fact %s/%s has invalid severity %q", f.DrugA, f.DrugB, f.Severity)
		}
		a, b := PairKey(f.DrugA, f.DrugB)
		if a != f.DrugA || b != f.DrugB {
			t.Errorf("fact %s/%s pair not canonically ordered", f.DrugA, f.DrugB)
		}
	}
}
