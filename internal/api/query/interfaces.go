package query

import (
	"context"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

type QueryUsecase interface {
	Answer(ctx context.Context, req entity.QueryRequest, history []entity.Message) *entity.StructuredAnswer
}

type DocumentUsecase interface {
	Summarize(ctx context.Context, text string) (string, error)
	Compare(ctx context.Context, textA, textB string) (string, error)
}

type ConversationStore interface {
	AddMessage(ctx context.Context, sessionID string, role entity.MessageRole, content string) error
	GetHistory(ctx context.Context, sessionID string, maxMessages int) ([]entity.Message, error)
}
