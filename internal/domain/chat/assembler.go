package chat

import (
	"fmt"
	"strings"

	"github.com/medassist/medassist/internal/platform/vector"
)

// AssembledContext is the numbered evidence block handed to the language
// model together with the citations it was built from.
type AssembledContext struct {
	Text      string
	Citations []Citation
}

// Assembler packs retrieved passages into a token-budgeted context block.
// Passages below the relevance floor are dropped; the rest are packed
// greedily in relevance order until the budget is spent. Citation numbers are
// assigned in inclusion order starting at 1.
type Assembler struct {
	tokenBudget   int
	minRelevance  float64
	historyWindow int
}

func NewAssembler(tokenBudget int, minRelevance float64, historyWindow int) *Assembler {
	if tokenBudget <= 0 {
		tokenBudget = 3000
	}
	if historyWindow < 0 {
		historyWindow = 0
	}
	return &Assembler{tokenBudget: tokenBudget, minRelevance: minRelevance, historyWindow: historyWindow}
}

func (a *Assembler) Assemble(hits []vector.Hit) AssembledContext {
	var (
		blocks    []string
		citations []Citation
		used      int
	)
	for _, h := range hits {
		if h.Score < a.minRelevance {
			continue
		}
		block := fmt.Sprintf("[%d] %s\n%s", len(citations)+1, h.Title, h.Content)
		cost := estimateTokens(block)
		if used+cost > a.tokenBudget {
			continue
		}
		used += cost
		blocks = append(blocks, block)
		citations = append(citations, Citation{
			ID:             len(citations) + 1,
			DocumentID:     h.DocumentID,
			Title:          h.Title,
			Source:         h.Source,
			Authors:        h.Meta.Authors,
			Journal:        h.Meta.Journal,
			Year:           h.Meta.Year,
			DOI:            h.Meta.DOI,
			PMID:           h.Meta.PMID,
			URL:            h.Meta.URL,
			Snippet:        snippet(h.Content),
			RelevanceScore: h.Score,
		})
	}
	return AssembledContext{Text: strings.Join(blocks, "\n\n"), Citations: citations}
}

// History truncates prior turns to the configured window, keeping the most
// recent ones.
func (a *Assembler) History(turns []*Turn) []*Turn {
	if len(turns) <= a.historyWindow {
		return turns
	}
	return turns[len(turns)-a.historyWindow:]
}

// estimateTokens approximates the tokenizer at four characters per token,
// rounded up.
func estimateTokens(s string) int {
	return (len(s) + 3) / 4
}

const snippetLen = 200

func snippet(content string) string {
	if len(content) <= snippetLen {
		return content
	}
	return strings.TrimSpace(content[:snippetLen]) + "..."
}
