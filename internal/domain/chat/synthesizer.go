package chat

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/medassist/medassist/internal/platform/llm"
)

const systemPromptTemplate = `You are MedAssist, a clinical decision support AI assistant.
You help healthcare professionals by providing accurate, evidence-based medical information.

## Guidelines:
1. Always cite sources for medical claims using [1], [2], etc. format
2. Clearly distinguish between established facts and emerging research
3. Include relevant warnings, contraindications, and precautions
4. If information is uncertain or conflicting, acknowledge this explicitly
5. Never provide definitive diagnoses - support clinical decision-making only
6. For drug-related queries, always mention checking for interactions
7. Respond in the same language as the query (Japanese or English)
8. Use clinical terminology but explain complex concepts when helpful
9. Prioritize patient safety in all recommendations
10. When in doubt, recommend consulting with specialists

## Important Disclaimers:
- This is a clinical decision support tool only
- Final medical decisions should always be made by qualified healthcare professionals
- Always verify critical information through authoritative sources
- Consider individual patient factors not captured in general guidelines

## Context from Medical Literature:
{context}

Based on the above context, provide a comprehensive and accurate response to the healthcare professional's query.`

// AnswerSynthesizer turns an assembled context, conversation history and a
// query into a grounded answer and the subset of citations it references.
type AnswerSynthesizer interface {
	Synthesize(ctx context.Context, query string, asm AssembledContext,
		history []*Turn, language string) (string, []Citation, error)
}

// Synthesizer prompts the language model with the numbered context block and
// extracts the bracketed citation markers the answer actually used.
type Synthesizer struct {
	llm *llm.Client
}

func NewSynthesizer(client *llm.Client) *Synthesizer {
	return &Synthesizer{llm: client}
}

func (s *Synthesizer) Synthesize(ctx context.Context, query string, asm AssembledContext,
	history []*Turn, language string) (string, []Citation, error) {

	system := strings.Replace(systemPromptTemplate, "{context}", asm.Text, 1)
	if language == "ja" {
		system += "\n\nPlease respond in Japanese."
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: system})
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: query})

	answer, err := s.llm.Chat(ctx, messages)
	if err != nil {
		return "", nil, err
	}
	return answer, citedSources(answer, asm.Citations), nil
}

var citationMarker = regexp.MustCompile(`\[(\d+)\]`)

// citedSources returns the assembled citations whose numbers appear in the
// answer, in ascending number order. Markers that were never assigned during
// assembly are ignored.
func citedSources(answer string, assembled []Citation) []Citation {
	byID := make(map[int]Citation, len(assembled))
	for _, c := range assembled {
		byID[c.ID] = c
	}
	seen := make(map[int]bool)
	var ids []int
	for _, m := range citationMarker.FindAllStringSubmatch(answer, -1) {
		id, err := strconv.Atoi(m[1])
		if err != nil || seen[id] {
			continue
		}
		if _, ok := byID[id]; !ok {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Ints(ids)

	sources := make([]Citation, 0, len(ids))
	for _, id := range ids {
		sources = append(sources, byID[id])
	}
	return sources
}
