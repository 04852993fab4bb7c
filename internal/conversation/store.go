// Package conversation holds per-session message history and activity
// metadata for the query pipeline.
package conversation

import (
	"context"
	"strings"
	"time"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

// Store is the conversation history contract. Unknown session identifiers
// are not errors: reads return empty results and AddMessage creates the
// session implicitly. The leniency lets stateless callers resume after a
// restart without a creation round-trip; implementations log when it happens
// so typoed identifiers remain visible.
type Store interface {
	// CreateSession generates a fresh session and returns its identifier.
	CreateSession(ctx context.Context) (string, error)

	// AddMessage appends a message, creating the session if needed.
	AddMessage(ctx context.Context, sessionID string, role entity.MessageRole, content string) error

	// GetHistory returns up to maxMessages most recent messages in
	// chronological order. Empty for unknown sessions.
	GetHistory(ctx context.Context, sessionID string, maxMessages int) ([]entity.Message, error)

	// GetContextString formats recent history as "User: ..." / "Assistant: ..."
	// lines. Empty for unknown sessions.
	GetContextString(ctx context.Context, sessionID string, maxMessages int) (string, error)

	// ClearSession empties the message list but keeps the session alive.
	// No-op for unknown sessions.
	ClearSession(ctx context.Context, sessionID string) error

	// DeleteSession removes the session entirely. No-op for unknown sessions.
	DeleteSession(ctx context.Context, sessionID string) error

	// GetSessionInfo returns session metadata, or nil when the session is
	// unknown.
	GetSessionInfo(ctx context.Context, sessionID string) (*entity.SessionInfo, error)

	// CleanupOldSessions deletes sessions whose last activity is older than
	// maxAge and returns the number deleted. Designed for periodic
	// invocation.
	CleanupOldSessions(ctx context.Context, maxAge time.Duration) (int, error)
}

// ContextString formats messages the way the generation prompt expects.
func ContextString(messages []entity.Message) string {
	if len(messages) == 0 {
		return ""
	}

	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		label := "Assistant"
		if msg.Role == entity.RoleUser {
			label = "User"
		}
		parts = append(parts, label+": "+msg.Content)
	}

	return strings.Join(parts, "\n")
}
