package session

import (
	"context"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

type ConversationStore interface {
	CreateSession(ctx context.Context) (string, error)
	GetHistory(ctx context.Context, sessionID string, maxMessages int) ([]entity.Message, error)
	ClearSession(ctx context.Context, sessionID string) error
	DeleteSession(ctx context.Context, sessionID string) error
	GetSessionInfo(ctx context.Context, sessionID string) (*entity.SessionInfo, error)
}
