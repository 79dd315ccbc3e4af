package chat

import (
	"context"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	// AppendTurn stores the turn and fills in its ID, Seq and CreatedAt.
	AppendTurn(ctx context.Context, turn *Turn) error
	// ListTurns returns the turns of a conversation in seq order.
	ListTurns(ctx context.Context, conversationID uuid.UUID) ([]*Turn, error)
}

type QueryLogRepository interface {
	Insert(ctx context.Context, entry *QueryLog) error
	// ListByUser returns a user's query history, newest first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*QueryLog, int, error)
}
