// Package llm talks to an OpenRouter-compatible chat-completions service.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/config"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/integration/common"
	pkghttp "github.com/WillyEverGreen/TSEC-LEGAL-AI/pkg/http"
)

// Wire types of the chat-completions API.
type chatCompletionRequest struct {
	Model       string               `json:"model"`
	Messages    []entity.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	headers := map[string]string{
		"HTTP-Referer": cfg.Referer,
		"X-Title":      cfg.AppTitle,
	}

	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, headers, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Complete performs a single blocking generation call. The returned text is
// trimmed; an empty completion is an error. Without a configured token the
// call fails fast with entity.ErrLLMNotConfigured so callers can degrade.
func (c *Connector) Complete(ctx context.Context, req *entity.LLMCompletionRequest) (string, error) {
	if c.config.Token == "" {
		return "", entity.ErrLLMNotConfigured
	}

	model := req.Model
	if model == "" {
		model = c.config.Model
	}

	ctxzap.Debug(ctx, "calling generation service",
		zap.String("model", model),
		zap.Int("max_tokens", req.MaxTokens),
		zap.Int("message_count", len(req.Messages)),
	)

	wireReq := chatCompletionRequest{
		Model:       model,
		Messages:    req.Messages,
		Temperature: c.config.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	var wireResp chatCompletionResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.CompletionsEndpoint, wireReq, &wireResp)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(wireResp.Choices) == 0 {
		return "", fmt.Errorf("unexpected completion response: no choices")
	}

	content := strings.TrimSpace(wireResp.Choices[0].Message.Content)
	if content == "" {
		return "", entity.ErrEmptyCompletion
	}

	ctxzap.Debug(ctx, "generation finished", zap.Int("content_length", len(content)))

	return content, nil
}
