package chat

import (
	"context"
	"fmt"

	"github.com/medassist/medassist/internal/platform/llm"
	"github.com/medassist/medassist/internal/platform/vector"
	"github.com/medassist/medassist/pkg/fault"
)

// PassageRetriever finds knowledge passages relevant to a query, highest
// relevance first and deduplicated by source document.
type PassageRetriever interface {
	Retrieve(ctx context.Context, query, sourceType string) ([]vector.Hit, error)
}

// Retriever embeds the query and searches the vector index. Two chunks of the
// same source document never survive deduplication; duplicates inflate
// context length without adding evidence diversity.
type Retriever struct {
	llm   *llm.Client
	store *vector.Store
	k     int
}

func NewRetriever(client *llm.Client, store *vector.Store, k int) *Retriever {
	if k <= 0 {
		k = 10
	}
	return &Retriever{llm: client, store: store, k: k}
}

func (r *Retriever) Retrieve(ctx context.Context, query, sourceType string) ([]vector.Hit, error) {
	embedding, err := r.llm.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	// Over-fetch so deduplication can still fill k results.
	hits, err := r.store.Search(ctx, embedding, r.k*2, sourceType)
	if err != nil {
		return nil, fault.Wrap(err, fault.GenerationUnavailable, "search index")
	}
	return dedupeByDocument(hits, r.k), nil
}

// dedupeByDocument keeps the first (highest scoring) hit per document.
func dedupeByDocument(hits []vector.Hit, k int) []vector.Hit {
	seen := make(map[string]bool, len(hits))
	out := make([]vector.Hit, 0, k)
	for _, h := range hits {
		if seen[h.DocumentID] {
			continue
		}
		seen[h.DocumentID] = true
		out = append(out, h)
		if len(out) == k {
			break
		}
	}
	return out
}
