package chat

import (
	"strings"
	"testing"

	"github.com/medassist/medassist/internal/platform/vector"
)

func TestAssembler_DropsBelowRelevanceFloor(t *testing.T) {
	a := NewAssembler(3000, 0.35, 10)
	asm := a.Assemble([]vector.Hit{
		{DocumentID: "d1", Title: "Warfarin dosing", Content: "content one", Score: 0.9},
		{DocumentID: "d2", Title: "Unrelated", Content: "content two", Score: 0.1},
	})
	if len(asm.Citations) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(asm.Citations))
	}
	if asm.Citations[0].DocumentID != "d1" {
		t.Errorf("expected d1 to survive, got %q", asm.Citations[0].DocumentID)
	}
}

func TestAssembler_NumbersCitationsInInclusionOrder(t *testing.T) {
	a := NewAssembler(3000, 0, 10)
	asm := a.Assemble([]vector.Hit{
		{DocumentID: "d1", Title: "First", Content: "aaa", Score: 0.9},
		{DocumentID: "d2", Title: "Second", Content: "bbb", Score: 0.8},
		{DocumentID: "d3", Title: "Third", Content: "ccc", Score: 0.7},
	})
	for i, c := range asm.Citations {
		if c.ID != i+1 {
			t.Errorf("citation %d has id %d", i, c.ID)
		}
	}
	if !strings.Contains(asm.Text, "[1] First") || !strings.Contains(asm.Text, "[3] Third") {
		t.Errorf("expected numbered blocks in context, got %q", asm.Text)
	}
}

func TestAssembler_RespectsTokenBudget(t *testing.T) {
	big := strings.Repeat("x", 4000)
	a := NewAssembler(100, 0, 10)
	asm := a.Assemble([]vector.Hit{
		{DocumentID: "d1", Title: "Huge", Content: big, Score: 0.9},
		{DocumentID: "d2", Title: "Small", Content: "fits in the budget", Score: 0.8},
	})
	if len(asm.Citations) != 1 {
		t.Fatalf("expected only the small passage to fit, got %d citations", len(asm.Citations))
	}
	if asm.Citations[0].DocumentID != "d2" {
		t.Errorf("expected d2, got %q", asm.Citations[0].DocumentID)
	}
}

func TestAssembler_EmptyHits(t *testing.T) {
	a := NewAssembler(3000, 0.35, 10)
	asm := a.Assemble(nil)
	if len(asm.Citations) != 0 || asm.Text != "" {
		t.Errorf("expected empty context, got %+v", asm)
	}
}

func TestAssembler_HistoryWindow(t *testing.T) {
	a := NewAssembler(3000, 0.35, 2)
	turns := []*Turn{
		{Content: "first"}, {Content: "second"}, {Content: "third"},
	}
	got := a.History(turns)
	if len(got) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(got))
	}
	if got[0].Content != "second" || got[1].Content != "third" {
		t.Errorf("expected the most recent turns, got %+v", got)
	}
}

func TestSnippet_Truncates(t *testing.T) {
	long := strings.Repeat("a", 300)
	got := snippet(long)
	if len(got) > snippetLen+3 {
		t.Errorf("snippet too long: %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("expected ellipsis suffix")
	}
	if snippet("short") != "short" {
		t.Error("expected short content unchanged")
	}
}
