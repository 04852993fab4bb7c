package handlers

import (
	"context"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

type QueryUsecase interface {
	Answer(ctx context.Context, req entity.QueryRequest, history []entity.Message) *entity.StructuredAnswer
}

type ConversationStore interface {
	CreateSession(ctx context.Context) (string, error)
	AddMessage(ctx context.Context, sessionID string, role entity.MessageRole, content string) error
	GetHistory(ctx context.Context, sessionID string, maxMessages int) ([]entity.Message, error)
	ClearSession(ctx context.Context, sessionID string) error
}
