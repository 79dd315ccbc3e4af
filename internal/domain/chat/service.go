package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medassist/medassist/internal/platform/vector"
	"github.com/medassist/medassist/pkg/fault"
)

const fallbackNoSources = "I couldn't find specific medical literature matching your query. " +
	"This could be because:\n\n" +
	"1. The query is too specific or uses terminology not in the database\n" +
	"2. The topic may require more specialized sources\n\n" +
	"**Recommendations:**\n" +
	"- Try rephrasing your question with different medical terms\n" +
	"- Consult authoritative sources like PubMed, UpToDate, or clinical guidelines directly\n" +
	"- For drug-related queries, check official prescribing information\n\n" +
	"*This response is generated without source documents. " +
	"Please verify all medical information through authoritative sources.*"

const fallbackGenerationDown = "The answer generation service is temporarily unavailable. " +
	"Your query was received but no answer could be produced. Please try again shortly, " +
	"and verify any urgent clinical questions through authoritative sources directly."

const generationRetryBackoff = 200 * time.Millisecond

// Service orchestrates the query pipeline: retrieve, assemble, synthesize,
// then persist the exchange.
type Service struct {
	retriever   PassageRetriever
	assembler   *Assembler
	synthesizer AnswerSynthesizer
	turns       ConversationRepository
	logs        QueryLogRepository
	model       string
	logger      zerolog.Logger
}

func NewService(retriever PassageRetriever, assembler *Assembler, synthesizer AnswerSynthesizer,
	turns ConversationRepository, logs QueryLogRepository, model string, logger zerolog.Logger) *Service {
	return &Service{
		retriever:   retriever,
		assembler:   assembler,
		synthesizer: synthesizer,
		turns:       turns,
		logs:        logs,
		model:       model,
		logger:      logger,
	}
}

// Ask answers a clinical query. A request without a conversation id starts a
// new conversation; a follow-up sees the prior turns in its context. Failed
// retrieval or generation degrades to a fallback answer instead of an error;
// only caller cancellation aborts the exchange.
func (s *Service) Ask(ctx context.Context, userID string, req ChatRequest) (*ChatResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	start := time.Now()
	queryID := uuid.New()

	conversationID := uuid.New()
	var history []*Turn
	if req.ConversationID != nil {
		conversationID = *req.ConversationID
		prior, err := s.turns.ListTurns(ctx, conversationID)
		if err != nil {
			return nil, fmt.Errorf("load conversation: %w", err)
		}
		history = s.assembler.History(prior)
	}

	hits, err := s.retrieve(ctx, query, req.SourceType)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn().Err(err).Str("query_id", queryID.String()).
			Msg("retrieval failed, answering without sources")
		hits = nil
	}
	asm := s.assembler.Assemble(hits)

	answer, sources, modelUsed := s.synthesize(ctx, query, asm, history, req.Language)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err := s.turns.AppendTurn(ctx, &Turn{
		ConversationID: conversationID, Role: RoleUser, Content: query,
	}); err != nil {
		return nil, fmt.Errorf("append user turn: %w", err)
	}
	if err := s.turns.AppendTurn(ctx, &Turn{
		ConversationID: conversationID, Role: RoleAssistant, Content: answer,
	}); err != nil {
		return nil, fmt.Errorf("append assistant turn: %w", err)
	}

	elapsed := time.Since(start).Milliseconds()
	language := req.Language
	if language == "" {
		language = "en"
	}
	if err := s.logs.Insert(ctx, &QueryLog{
		ID:               queryID,
		ConversationID:   conversationID,
		UserID:           userID,
		QueryType:        QueryTypeChat,
		Query:            query,
		Answer:           answer,
		Language:         language,
		Sources:          sources,
		SourceCount:      len(sources),
		ProcessingTimeMs: elapsed,
		ModelUsed:        modelUsed,
	}); err != nil {
		s.logger.Warn().Err(err).Str("query_id", queryID.String()).Msg("query log insert failed")
	}

	resp := &ChatResponse{
		Answer:           answer,
		Sources:          sources,
		ConversationID:   conversationID,
		QueryID:          queryID,
		ProcessingTimeMs: elapsed,
		ModelUsed:        modelUsed,
	}
	if !req.IncludeSources {
		resp.Sources = []Citation{}
	}
	return resp, nil
}

// retrieve runs the retrieval call, retrying once after a short backoff when
// the embedding or vector service reports a transient failure.
func (s *Service) retrieve(ctx context.Context, query, sourceType string) ([]vector.Hit, error) {
	hits, err := s.retriever.Retrieve(ctx, query, sourceType)
	if err == nil {
		return hits, nil
	}
	if !fault.IsKind(err, fault.GenerationUnavailable) || ctx.Err() != nil {
		return nil, err
	}
	select {
	case <-time.After(generationRetryBackoff):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.retriever.Retrieve(ctx, query, sourceType)
}

// synthesize produces the answer, degrading to fallback text when no context
// was assembled or the model stays unavailable after one retry.
func (s *Service) synthesize(ctx context.Context, query string, asm AssembledContext,
	history []*Turn, language string) (string, []Citation, string) {

	if len(asm.Citations) == 0 {
		return fallbackNoSources, []Citation{}, "fallback"
	}

	answer, sources, err := s.synthesizer.Synthesize(ctx, query, asm, history, language)
	if err == nil {
		return answer, sources, s.model
	}
	if fault.IsKind(err, fault.GenerationUnavailable) && ctx.Err() == nil {
		select {
		case <-time.After(generationRetryBackoff):
		case <-ctx.Done():
			return "", nil, s.model
		}
		answer, sources, err = s.synthesizer.Synthesize(ctx, query, asm, history, language)
		if err == nil {
			return answer, sources, s.model
		}
	}
	if ctx.Err() != nil {
		return "", nil, s.model
	}
	s.logger.Error().Err(err).Msg("answer generation failed")
	return fallbackGenerationDown, []Citation{}, "fallback"
}

// History returns a user's answered queries, newest first.
func (s *Service) History(ctx context.Context, userID string, limit, offset int) ([]*QueryLog, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.logs.ListByUser(ctx, userID, limit, offset)
}

// Conversation returns the full turn sequence of a conversation.
func (s *Service) Conversation(ctx context.Context, id uuid.UUID) ([]*Turn, error) {
	turns, err := s.turns.ListTurns(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(turns) == 0 {
		return nil, fault.Newf(fault.NotFound, "conversation %s not found", id)
	}
	return turns, nil
}
