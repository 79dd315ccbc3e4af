package chat

import (
	"testing"

	"github.com/medassist/medassist/internal/platform/vector"
)

func TestDedupeByDocument(t *testing.T) {
	hits := []vector.Hit{
		{DocumentID: "d1", Score: 0.9},
		{DocumentID: "d2", Score: 0.8},
		{DocumentID: "d1", Score: 0.7},
		{DocumentID: "d3", Score: 0.6},
	}
	got := dedupeByDocument(hits, 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 unique documents, got %d", len(got))
	}
	if got[0].DocumentID != "d1" || got[0].Score != 0.9 {
		t.Errorf("expected the highest scoring chunk per document, got %+v", got[0])
	}
}

func TestDedupeByDocument_TruncatesToK(t *testing.T) {
	hits := []vector.Hit{
		{DocumentID: "d1", Score: 0.9},
		{DocumentID: "d2", Score: 0.8},
		{DocumentID: "d3", Score: 0.7},
	}
	got := dedupeByDocument(hits, 2)
	if len(got) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(got))
	}
	if got[1].DocumentID != "d2" {
		t.Errorf("expected relevance order preserved, got %+v", got)
	}
}
