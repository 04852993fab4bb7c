package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/conversation"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

// ConversationPostgres implements conversation.Store on PostgreSQL, for
// deployments where histories must survive restarts.
type ConversationPostgres struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

var _ conversation.Store = &ConversationPostgres{}

func NewConversationPostgres(db *pgxpool.Pool, logger *zap.Logger) *ConversationPostgres {
	return &ConversationPostgres{
		db:     db,
		logger: logger,
	}
}

func (r *ConversationPostgres) CreateSession(ctx context.Context) (string, error) {
	sessionID := uuid.New().String()

	_, err := r.db.Exec(ctx,
		`INSERT INTO conversation_session (id, created_at, last_activity, message_count)
		 VALUES ($1, NOW(), NOW(), 0)`,
		sessionID,
	)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	return sessionID, nil
}

func (r *ConversationPostgres) AddMessage(ctx context.Context, sessionID string, role entity.MessageRole, content string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Implicit session creation for unknown identifiers, same leniency as
	// the memory store.
	tag, err := tx.Exec(ctx,
		`INSERT INTO conversation_session (id, created_at, last_activity, message_count)
		 VALUES ($1, NOW(), NOW(), 0)
		 ON CONFLICT (id) DO NOTHING`,
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("ensure session: %w", err)
	}
	if tag.RowsAffected() > 0 {
		r.logger.Warn("session not found, creating implicitly", zap.String("session_id", sessionID))
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO conversation_message (session_id, role, content, created_at)
		 VALUES ($1, $2, $3, NOW())`,
		sessionID, string(role), content,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE conversation_session
		 SET last_activity = NOW(), message_count = message_count + 1
		 WHERE id = $1`,
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("update session activity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func (r *ConversationPostgres) GetHistory(ctx context.Context, sessionID string, maxMessages int) ([]entity.Message, error) {
	// Most recent N, returned in chronological order.
	rows, err := r.db.Query(ctx,
		`SELECT role, content, created_at FROM (
		     SELECT role, content, created_at, id
		     FROM conversation_message
		     WHERE session_id = $1
		     ORDER BY id DESC
		     LIMIT $2
		 ) recent
		 ORDER BY id ASC`,
		sessionID, maxMessages,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var messages []entity.Message
	for rows.Next() {
		var (
			role    string
			content string
			created time.Time
		)
		if err := rows.Scan(&role, &content, &created); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, entity.Message{
			Role:      entity.MessageRole(role),
			Content:   content,
			Timestamp: created,
		})
	}

	return messages, rows.Err()
}

func (r *ConversationPostgres) GetContextString(ctx context.Context, sessionID string, maxMessages int) (string, error) {
	history, err := r.GetHistory(ctx, sessionID, maxMessages)
	if err != nil {
		return "", err
	}
	return conversation.ContextString(history), nil
}

func (r *ConversationPostgres) ClearSession(ctx context.Context, sessionID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM conversation_message WHERE session_id = $1`, sessionID,
	); err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE conversation_session
		 SET message_count = 0, last_activity = NOW()
		 WHERE id = $1`,
		sessionID,
	); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *ConversationPostgres) DeleteSession(ctx context.Context, sessionID string) error {
	// Messages go with the session via ON DELETE CASCADE.
	_, err := r.db.Exec(ctx,
		`DELETE FROM conversation_session WHERE id = $1`, sessionID,
	)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *ConversationPostgres) GetSessionInfo(ctx context.Context, sessionID string) (*entity.SessionInfo, error) {
	var info entity.SessionInfo
	err := r.db.QueryRow(ctx,
		`SELECT id, created_at, last_activity, message_count
		 FROM conversation_session
		 WHERE id = $1`,
		sessionID,
	).Scan(&info.SessionID, &info.CreatedAt, &info.LastActivity, &info.MessageCount)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session info: %w", err)
	}

	return &info, nil
}

func (r *ConversationPostgres) CleanupOldSessions(ctx context.Context, maxAge time.Duration) (int, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM conversation_session
		 WHERE last_activity < NOW() - $1::interval`,
		fmt.Sprintf("%d seconds", int(maxAge.Seconds())),
	)
	if err != nil {
		return 0, fmt.Errorf("cleanup old sessions: %w", err)
	}

	deleted := int(tag.RowsAffected())
	if deleted > 0 {
		r.logger.Info("cleaned up old sessions", zap.Int("deleted", deleted))
	}

	return deleted, nil
}
