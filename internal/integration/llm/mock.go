package llm

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

// MockConnector is a canned-response generation service for local runs and
// tests.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Complete(ctx context.Context, req *entity.LLMCompletionRequest) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating completion", zap.Int("max_tokens", req.MaxTokens))

	var lastUser string
	for _, msg := range req.Messages {
		if msg.Role == entity.ChatRoleUser {
			lastUser = msg.Content
		}
	}

	// Translation and routing prompts get terse fixed replies so the
	// pipeline behaves sensibly end to end without a real model.
	switch {
	case strings.Contains(lastUser, "Translate the following"):
		return lastUser[strings.LastIndex(lastUser, "\n")+1:], nil
	case strings.Contains(lastUser, "reply SEARCH"):
		return "SEARCH", nil
	}

	answer := "Under the Bhartiya Nyaya Sanhita, 2023, the cited provisions govern this matter. " +
		"BNS Section 103 prescribes punishment for murder: death or imprisonment for life, and fine. (MOCK)"

	ctxzap.Info(ctx, "[MOCK] completion generated", zap.Int("result_length", len(answer)))
	return answer, nil
}
