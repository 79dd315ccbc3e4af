package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/medassist/medassist/internal/domain/chat"
	"github.com/medassist/medassist/internal/domain/drug"
)

func TestSummarizeCheck_NoInteractions(t *testing.T) {
	got := summarizeCheck(&drug.CheckResult{})
	if got != "No known interactions found." {
		t.Errorf("unexpected summary: %q", got)
	}
}

func TestSummarizeCheck_ListsPairs(t *testing.T) {
	result := &drug.CheckResult{
		Interactions: []drug.Interaction{
			{DrugA: "aspirin", DrugB: "warfarin", Severity: drug.SeveritySevere},
			{DrugA: "aspirin", DrugB: "ibuprofen", Severity: drug.SeverityModerate},
		},
	}
	got := summarizeCheck(result)
	if !strings.HasPrefix(got, "2 interaction(s):") {
		t.Errorf("summary should lead with the count, got %q", got)
	}
	if !strings.Contains(got, "aspirin + warfarin (severe)") {
		t.Errorf("summary missing pair detail: %q", got)
	}
}

type captureLogRepo struct {
	entries []*chat.QueryLog
}

func (r *captureLogRepo) Insert(ctx context.Context, entry *chat.QueryLog) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *captureLogRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*chat.QueryLog, int, error) {
	return nil, 0, nil
}

func TestDrugCheckRecorder_WritesQueryLog(t *testing.T) {
	repo := &captureLogRepo{}
	recorder := &drugCheckRecorder{logs: repo, logger: zerolog.Nop()}

	result := &drug.CheckResult{
		Interactions: []drug.Interaction{
			{DrugA: "lisinopril", DrugB: "spironolactone", Severity: drug.SeveritySevere},
		},
	}
	recorder.RecordCheck(context.Background(), "user-1", []string{"Lisinopril", "Aldactone"}, result, 42*time.Millisecond)

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(repo.entries))
	}
	entry := repo.entries[0]
	if entry.QueryType != chat.QueryTypeDrugCheck {
		t.Errorf("query type = %q, want %q", entry.QueryType, chat.QueryTypeDrugCheck)
	}
	if entry.Query != "Lisinopril, Aldactone" {
		t.Errorf("query = %q", entry.Query)
	}
	if entry.SourceCount != 1 {
		t.Errorf("source count = %d, want 1", entry.SourceCount)
	}
	if entry.ProcessingTimeMs != 42 {
		t.Errorf("processing time = %d, want 42", entry.ProcessingTimeMs)
	}
}
