// Package builder assembles the application from configuration.
package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/api"
	queryapi "github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/api/query"
	sessionapi "github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/api/session"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/cache"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/config"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/conversation"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/integration/llm"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/integration/vectorstore"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/pkg/validator"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/repository"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/retrieval"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/telegram"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/usecase/document"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/usecase/query"
)

// components are the shared pieces of both entry points.
type components struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *pgxpool.Pool
	store  conversation.Store
	llm    query.LLMConnector
	query  *query.Usecase
}

func Build() (*App, error) {
	c, err := buildComponents()
	if err != nil {
		return nil, err
	}

	documentUC := document.NewUsecase(c.llm, c.cfg.QueryCfg)

	v := validator.NewValidator()
	queryHandler := queryapi.NewHandler(c.query, documentUC, c.store, v, c.cfg.SessionCfg.HistoryWindow)
	sessionHandler := sessionapi.NewHandler(c.store)
	c.logger.Info("API handlers initialized")

	router := api.SetupRouter(queryHandler, sessionHandler, c.logger)
	c.logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:        c.cfg.ServerAddr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// Write timeout sits above the generation budget.
		WriteTimeout: 4 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	c.logger.Info("Application built successfully",
		zap.String("environment", c.cfg.Environment),
	)

	return &App{
		server:     server,
		db:         c.db,
		store:      c.store,
		sessionCfg: c.cfg.SessionCfg,
		logger:     c.logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	c, err := buildComponents()
	if err != nil {
		return nil, nil, err
	}

	bot, err := telegram.NewBot(&c.cfg.TelegramCfg, c.query, c.store, c.logger)
	if err != nil {
		if c.db != nil {
			c.db.Close()
		}
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	c.logger.Info("Telegram bot built successfully",
		zap.String("environment", c.cfg.Environment),
	)

	return bot, c.logger, nil
}

func buildComponents() (*components, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	var (
		db    *pgxpool.Pool
		store conversation.Store
	)
	if cfg.DatabaseURL != "" {
		db, err = setupDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("setup database: %w", err)
		}

		logger.Info("Running database migrations")
		if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
			db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("Database migrations completed successfully")

		store = repository.NewConversationPostgres(db, logger)
	} else {
		logger.Info("No database configured, conversation store runs in memory")
		store = conversation.NewMemoryStore(logger)
	}

	llmConnector := buildLLM(cfg, logger)

	var searcher retrieval.Searcher
	if cfg.EnableMocks {
		searcher = vectorstore.NewMockSearcher()
	} else {
		vs, err := vectorstore.New(cfg.VectorStoreCfg, logger)
		if err != nil {
			// Retrieval degrades to context-free answers; the server
			// still starts.
			logger.Warn("vector store unavailable", zap.Error(err))
		} else {
			searcher = vs
		}
	}

	retriever := retrieval.NewRetriever(searcher, cfg.QueryCfg, logger)
	responseCache := cache.New(cfg.CacheCfg)
	queryUC := query.NewUsecase(llmConnector, retriever, responseCache, cfg.QueryCfg)
	logger.Info("Use cases initialized")

	return &components{
		cfg:    cfg,
		logger: logger,
		db:     db,
		store:  store,
		llm:    llmConnector,
		query:  queryUC,
	}, nil
}

func buildLLM(cfg *config.Config, logger *zap.Logger) query.LLMConnector {
	if cfg.EnableMocks {
		logger.Info("Using mock connector for the language model")
		return llm.NewMockConnector(logger)
	}
	return llm.NewConnector(cfg.LLMConnectorCfg, logger)
}
