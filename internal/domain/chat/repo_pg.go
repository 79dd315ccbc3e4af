package chat

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medassist/medassist/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Conversation Repository ===========

type conversationRepoPG struct{ pool *pgxpool.Pool }

func NewConversationRepoPG(pool *pgxpool.Pool) ConversationRepository {
	return &conversationRepoPG{pool: pool}
}

func (r *conversationRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const turnCols = `id, conversation_id, seq, role, content, created_at`

func scanTurn(row pgx.Row) (*Turn, error) {
	var t Turn
	err := row.Scan(&t.ID, &t.ConversationID, &t.Seq, &t.Role, &t.Content, &t.CreatedAt)
	return &t, err
}

func (r *conversationRepoPG) AppendTurn(ctx context.Context, turn *Turn) error {
	if turn.ID == uuid.Nil {
		turn.ID = uuid.New()
	}
	// seq is a table-wide sequence; it orders turns within a conversation
	// without a per-conversation counter.
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO conversation_turn (id, conversation_id, role, content)
		VALUES ($1,$2,$3,$4)
		RETURNING seq, created_at`,
		turn.ID, turn.ConversationID, turn.Role, turn.Content).
		Scan(&turn.Seq, &turn.CreatedAt)
}

func (r *conversationRepoPG) ListTurns(ctx context.Context, conversationID uuid.UUID) ([]*Turn, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+turnCols+` FROM conversation_turn WHERE conversation_id = $1 ORDER BY seq`,
		conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Turn
	for rows.Next() {
		t, err := scanTurn(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// =========== Query Log Repository ===========

type queryLogRepoPG struct{ pool *pgxpool.Pool }

func NewQueryLogRepoPG(pool *pgxpool.Pool) QueryLogRepository {
	return &queryLogRepoPG{pool: pool}
}

func (r *queryLogRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const queryLogCols = `id, conversation_id, user_id, query_type, query, answer, language, sources,
	source_count, processing_time_ms, model_used, created_at`

func scanQueryLog(row pgx.Row) (*QueryLog, error) {
	var q QueryLog
	err := row.Scan(&q.ID, &q.ConversationID, &q.UserID, &q.QueryType, &q.Query, &q.Answer,
		&q.Language, &q.Sources, &q.SourceCount, &q.ProcessingTimeMs, &q.ModelUsed, &q.CreatedAt)
	return &q, err
}

func (r *queryLogRepoPG) Insert(ctx context.Context, entry *QueryLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Sources == nil {
		entry.Sources = []Citation{}
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO query_log (id, conversation_id, user_id, query_type, query, answer, language, sources, source_count, processing_time_ms, model_used)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING created_at`,
		entry.ID, entry.ConversationID, entry.UserID, entry.QueryType, entry.Query, entry.Answer,
		entry.Language, entry.Sources, entry.SourceCount, entry.ProcessingTimeMs, entry.ModelUsed).
		Scan(&entry.CreatedAt)
}

func (r *queryLogRepoPG) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*QueryLog, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM query_log WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+queryLogCols+` FROM query_log
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*QueryLog
	for rows.Next() {
		q, err := scanQueryLog(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, q)
	}
	return items, total, rows.Err()
}
