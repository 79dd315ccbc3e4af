package chat

import (
	"context"
	"fmt"

	"github.com/medassist/medassist/internal/platform/llm"
	"github.com/medassist/medassist/internal/platform/vector"
)

// Ingestor embeds documents and loads them into the vector index.
type Ingestor struct {
	llm   *llm.Client
	store *vector.Store
}

func NewIngestor(client *llm.Client, store *vector.Store) *Ingestor {
	return &Ingestor{llm: client, store: store}
}

// Ingest embeds each document and upserts the batch. The collection is
// created on first use with the embedding dimension of the model.
func (i *Ingestor) Ingest(ctx context.Context, docs []vector.Document) error {
	if len(docs) == 0 {
		return nil
	}
	vectors := make([][]float64, len(docs))
	for idx, doc := range docs {
		embedding, err := i.llm.Embed(ctx, doc.Content)
		if err != nil {
			return fmt.Errorf("embed document %q: %w", doc.ID, err)
		}
		vectors[idx] = embedding
	}
	if err := i.store.EnsureCollection(ctx, len(vectors[0])); err != nil {
		return fmt.Errorf("ensure collection: %w", err)
	}
	if err := i.store.Upsert(ctx, docs, vectors); err != nil {
		return fmt.Errorf("upsert documents: %w", err)
	}
	return nil
}

// SeedDocuments is a small starter corpus of guidelines and papers for
// development and demo environments.
func SeedDocuments() []vector.Document {
	return []vector.Document{
		{
			ID:         "d2f1a6de-8f5a-4f59-9c45-0f0a1c2d3e01",
			Title:      "ACC/AHA Hypertension Guidelines 2024",
			Source:     "guidelines",
			SourceType: "guideline",
			Content: "Hypertension Management Guidelines (2024): First-line treatments include " +
				"thiazide diuretics, ACE inhibitors, ARBs, and calcium channel blockers. Target BP " +
				"for most adults is <130/80 mmHg. Lifestyle modifications including DASH diet, " +
				"sodium restriction (<2.3g/day), regular aerobic exercise, and weight management " +
				"should be recommended for all patients.",
			Meta: vector.Meta{
				Authors: "American College of Cardiology; American Heart Association",
				Journal: "Journal of the American College of Cardiology",
				Year:    2024,
				DOI:     "10.1016/j.jacc.2024.01.001",
			},
		},
		{
			ID:         "d2f1a6de-8f5a-4f59-9c45-0f0a1c2d3e02",
			Title:      "Antihypertensive Drug Interactions: A Comprehensive Review",
			Source:     "pubmed",
			SourceType: "paper",
			Content: "Drug interactions with antihypertensive medications: NSAIDs can reduce " +
				"the effectiveness of ACE inhibitors, ARBs, and diuretics. Potassium-sparing " +
				"diuretics combined with ACE inhibitors increase hyperkalemia risk. Monitor " +
				"potassium levels when combining these medications. Grapefruit juice affects " +
				"calcium channel blocker metabolism.",
			Meta: vector.Meta{
				Authors: "Smith J; Johnson M; Williams R",
				Journal: "Clinical Pharmacology & Therapeutics",
				Year:    2023,
				PMID:    "34567890",
			},
		},
		{
			ID:         "d2f1a6de-8f5a-4f59-9c45-0f0a1c2d3e03",
			Title:      "Standards of Medical Care in Diabetes - 2024",
			Source:     "guidelines",
			SourceType: "guideline",
			Content: "Diabetes mellitus type 2 treatment algorithm: Metformin remains " +
				"first-line therapy unless contraindicated. For patients with ASCVD, heart failure, " +
				"or CKD, consider SGLT2 inhibitors or GLP-1 receptor agonists regardless of A1C. " +
				"Target A1C <7% for most adults, individualize based on patient factors.",
			Meta: vector.Meta{
				Authors: "American Diabetes Association",
				Journal: "Diabetes Care",
				Year:    2024,
				DOI:     "10.2337/dc24-S001",
			},
		},
		{
			ID:         "d2f1a6de-8f5a-4f59-9c45-0f0a1c2d3e04",
			Title:      "Acute Coronary Syndromes: Recognition and Management",
			Source:     "pubmed",
			SourceType: "paper",
			Content: "Clinical presentation of acute myocardial infarction: Classic symptoms " +
				"include chest pain/pressure, dyspnea, diaphoresis, and nausea. Atypical " +
				"presentations more common in women, elderly, and diabetic patients - may present " +
				"with fatigue, weakness, or epigastric discomfort. ECG changes and troponin " +
				"elevation confirm diagnosis.",
			Meta: vector.Meta{
				Authors: "Chen L; Anderson K",
				Journal: "New England Journal of Medicine",
				Year:    2023,
				PMID:    "36789012",
			},
		},
		{
			ID:         "d2f1a6de-8f5a-4f59-9c45-0f0a1c2d3e05",
			Title:      "IDSA/ATS CAP Guidelines 2023",
			Source:     "guidelines",
			SourceType: "guideline",
			Content: "Antibiotic selection for community-acquired pneumonia: For outpatients " +
				"without comorbidities, amoxicillin or doxycycline recommended. For outpatients " +
				"with comorbidities, combination therapy with beta-lactam plus macrolide or " +
				"respiratory fluoroquinolone monotherapy. Duration typically 5-7 days for " +
				"uncomplicated cases.",
			Meta: vector.Meta{
				Authors: "Infectious Diseases Society of America",
				Journal: "Clinical Infectious Diseases",
				Year:    2023,
				DOI:     "10.1093/cid/ciad123",
			},
		},
	}
}
