package chat

import "testing"

func assembled(n int) []Citation {
	out := make([]Citation, n)
	for i := range out {
		out[i] = Citation{ID: i + 1, Title: "doc"}
	}
	return out
}

func TestCitedSources_SubsetOfAssembled(t *testing.T) {
	answer := "Warfarin interacts with NSAIDs [2]. Monitor INR closely [1][2]. See also [7]."
	got := citedSources(answer, assembled(3))
	if len(got) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("expected ids [1 2], got %+v", got)
	}
}

func TestCitedSources_AscendingAndDeduplicated(t *testing.T) {
	answer := "[3] then [1] then [3] again"
	got := citedSources(answer, assembled(3))
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("expected ids [1 3], got %+v", got)
	}
}

func TestCitedSources_NoMarkers(t *testing.T) {
	got := citedSources("no citations here", assembled(3))
	if len(got) != 0 {
		t.Errorf("expected no sources, got %+v", got)
	}
}

func TestCitedSources_IgnoresUnassignedMarkers(t *testing.T) {
	got := citedSources("only [9] cited", assembled(2))
	if len(got) != 0 {
		t.Errorf("expected unassigned marker to be dropped, got %+v", got)
	}
}
