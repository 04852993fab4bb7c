// Package telegram wires the legal assistant into a Telegram bot.
package telegram

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/config"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/telegram/bot"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/telegram/handlers"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	queries handlers.QueryUsecase,
	store handlers.ConversationStore,
	logger *zap.Logger,
) (Bot, error) {
	b, err := bot.New(cfg, queries, store, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	logger.Info("telegram bot initialized successfully")

	return b, nil
}
