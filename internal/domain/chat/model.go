package chat

import (
	"time"

	"github.com/google/uuid"
)

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatRequest is the wire shape of POST /chat. A nil ConversationID starts a
// new conversation.
type ChatRequest struct {
	Query          string     `json:"query"`
	ConversationID *uuid.UUID `json:"conversation_id,omitempty"`
	Language       string     `json:"language,omitempty"`
	SourceType     string     `json:"source_type,omitempty"`
	IncludeSources bool       `json:"include_sources"`
}

// Citation is a numbered source passage backing an answer. Numbers are
// assigned during context assembly and referenced from the answer text as
// bracketed markers.
type Citation struct {
	ID             int     `json:"id"`
	DocumentID     string  `json:"document_id"`
	Title          string  `json:"title"`
	Source         string  `json:"source,omitempty"`
	Authors        string  `json:"authors,omitempty"`
	Journal        string  `json:"journal,omitempty"`
	Year           int     `json:"year,omitempty"`
	DOI            string  `json:"doi,omitempty"`
	PMID           string  `json:"pmid,omitempty"`
	URL            string  `json:"url,omitempty"`
	Snippet        string  `json:"snippet"`
	RelevanceScore float64 `json:"relevance_score"`
}

// ChatResponse is the wire shape of a chat answer.
type ChatResponse struct {
	Answer           string     `json:"answer"`
	Sources          []Citation `json:"sources"`
	ConversationID   uuid.UUID  `json:"conversation_id"`
	QueryID          uuid.UUID  `json:"query_id"`
	ProcessingTimeMs int64      `json:"processing_time_ms"`
	ModelUsed        string     `json:"model_used"`
}

// Turn maps to the conversation_turn table. Seq is assigned by the store and
// orders turns within a conversation.
type Turn struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ConversationID uuid.UUID `db:"conversation_id" json:"conversation_id"`
	Seq            int64     `db:"seq" json:"seq"`
	Role           string    `db:"role" json:"role"`
	Content        string    `db:"content" json:"content"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Query log entry types.
const (
	QueryTypeChat      = "chat"
	QueryTypeDrugCheck = "drug_check"
)

// QueryLog maps to the query_log table, one row per answered query.
type QueryLog struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	ConversationID   uuid.UUID  `db:"conversation_id" json:"conversation_id"`
	UserID           string     `db:"user_id" json:"user_id"`
	QueryType        string     `db:"query_type" json:"query_type"`
	Query            string     `db:"query" json:"query"`
	Answer           string     `db:"answer" json:"answer"`
	Language         string     `db:"language" json:"language"`
	Sources          []Citation `db:"sources" json:"sources,omitempty"`
	SourceCount      int        `db:"source_count" json:"source_count"`
	ProcessingTimeMs int64      `db:"processing_time_ms" json:"processing_time_ms"`
	ModelUsed        string     `db:"model_used" json:"model_used"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}
