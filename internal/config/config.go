package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	pkgRetry "github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8000"`

	// Database configuration. When DATABASE_URL is empty the conversation
	// store runs in memory and no pool is created.
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// External service configurations
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`
	VectorStoreCfg  VectorStoreConfig  `envPrefix:"VECTOR_"`

	// Pipeline configuration
	QueryCfg   QueryConfig   `envPrefix:"QUERY_"`
	CacheCfg   CacheConfig   `envPrefix:"CACHE_"`
	SessionCfg SessionConfig `envPrefix:"SESSION_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (optional surface)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// LLMConnectorConfig configures the OpenRouter-compatible generation service.
// An empty Token is not an error: generation-dependent operations degrade to
// explanatory placeholder answers.
type LLMConnectorConfig struct {
	HTTPClientConfig
	CompletionsEndpoint string  `env:"COMPLETIONS_ENDPOINT" envDefault:"/chat/completions"`
	Model               string  `env:"MODEL" envDefault:"mistralai/mistral-7b-instruct-v0.1"`
	Temperature         float64 `env:"TEMPERATURE" envDefault:"0.3"`
	Referer             string  `env:"REFERER" envDefault:"http://localhost:3000"`
	AppTitle            string  `env:"APP_TITLE" envDefault:"Legal Compass AI"`
}

// VectorStoreConfig configures the embedded chromem vector store.
type VectorStoreConfig struct {
	DataDir          string `env:"DATA_DIR" envDefault:"data/chroma"`
	Collection       string `env:"COLLECTION" envDefault:"legal_knowledge"`
	EmbeddingBaseURL string `env:"EMBEDDING_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	EmbeddingAPIKey  string `env:"EMBEDDING_API_KEY"`
	EmbeddingModel   string `env:"EMBEDDING_MODEL" envDefault:"openai/text-embedding-3-small"`
}

// QueryConfig holds the query pipeline tunables.
type QueryConfig struct {
	TopK              int           `env:"TOP_K" envDefault:"5"`
	DistanceCutoff    float64       `env:"DISTANCE_CUTOFF" envDefault:"0.45"`
	MaxContextHits    int           `env:"MAX_CONTEXT_HITS" envDefault:"4"`
	MaxCitations      int           `env:"MAX_CITATIONS" envDefault:"3"`
	DefaultMaxTokens  int           `env:"DEFAULT_MAX_TOKENS" envDefault:"1500"`
	LongFormMaxTokens int           `env:"LONG_FORM_MAX_TOKENS" envDefault:"2500"`
	SimpleMaxTokens   int           `env:"SIMPLE_MAX_TOKENS" envDefault:"150"`
	GenerateTimeout   time.Duration `env:"GENERATE_TIMEOUT" envDefault:"120s"`
	TranslateTimeout  time.Duration `env:"TRANSLATE_TIMEOUT" envDefault:"30s"`
	TranslateTokens   int           `env:"TRANSLATE_MAX_TOKENS" envDefault:"200"`

	// Optional second routing stage: ask the model itself whether a query
	// needs legal lookup. Disabled by default; the rule classifier always
	// runs first.
	RouterLLMEnabled bool          `env:"ROUTER_LLM_ENABLED" envDefault:"false"`
	RouterMaxTokens  int           `env:"ROUTER_MAX_TOKENS" envDefault:"100"`
	RouterTimeout    time.Duration `env:"ROUTER_TIMEOUT" envDefault:"20s"`
}

// CacheConfig bounds the response cache. Entries always expire; the
// never-evicted cache of earlier revisions grew without limit in long-running
// deployments.
type CacheConfig struct {
	SearchTTL       time.Duration `env:"SEARCH_TTL" envDefault:"15m"`
	AnswerTTL       time.Duration `env:"ANSWER_TTL" envDefault:"1h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// SessionConfig controls conversation retention.
type SessionConfig struct {
	MaxAge          time.Duration `env:"MAX_AGE" envDefault:"24h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"1h"` // 0 disables the janitor
	HistoryWindow   int           `env:"HISTORY_WINDOW" envDefault:"10"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"30"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"10"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"3"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"` // seconds
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration        `env:"TIMEOUT" envDefault:"120s"`
	ConnTimeout           time.Duration        `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration        `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration        `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration        `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"120s"`
	Token                 string               `env:"TOKEN"`
	Url                   string               `env:"SERVICE_URL" envDefault:"https://openrouter.ai/api/v1"`
	Retry                 pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	return loadConfigForEnv(*envFlag)
}

func loadConfigForEnv(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errs []string

	if cfg.QueryCfg.TopK < 1 || cfg.QueryCfg.TopK > 50 {
		errs = append(errs, fmt.Sprintf("QUERY_TOP_K must be between 1 and 50, got %d", cfg.QueryCfg.TopK))
	}

	if cfg.QueryCfg.DistanceCutoff <= 0 || cfg.QueryCfg.DistanceCutoff > 2 {
		errs = append(errs, fmt.Sprintf("QUERY_DISTANCE_CUTOFF must be in (0, 2], got %g", cfg.QueryCfg.DistanceCutoff))
	}

	if cfg.QueryCfg.MaxContextHits < 1 || cfg.QueryCfg.MaxContextHits > cfg.QueryCfg.TopK {
		errs = append(errs, fmt.Sprintf("QUERY_MAX_CONTEXT_HITS must be between 1 and QUERY_TOP_K(%d), got %d",
			cfg.QueryCfg.TopK, cfg.QueryCfg.MaxContextHits))
	}

	if cfg.SessionCfg.MaxAge < time.Minute {
		errs = append(errs, fmt.Sprintf("SESSION_MAX_AGE must be at least 1m, got %s", cfg.SessionCfg.MaxAge))
	}

	if cfg.DatabaseURL != "" {
		if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
			errs = append(errs, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
		}
		if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
			errs = append(errs, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d",
				cfg.DBMaxConns, cfg.DBMinConns))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
