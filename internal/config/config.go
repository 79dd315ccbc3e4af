package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"ENV"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`

	// Generation and embedding collaborator (OpenAI-compatible API).
	OpenAIBaseURL        string        `mapstructure:"OPENAI_BASE_URL"`
	OpenAIAPIKey         string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel          string        `mapstructure:"OPENAI_MODEL"`
	OpenAIEmbeddingModel string        `mapstructure:"OPENAI_EMBEDDING_MODEL"`
	GenerationTimeout    time.Duration `mapstructure:"GENERATION_TIMEOUT"`

	// Vector index.
	QdrantURL        string `mapstructure:"QDRANT_URL"`
	QdrantAPIKey     string `mapstructure:"QDRANT_API_KEY"`
	QdrantCollection string `mapstructure:"QDRANT_COLLECTION"`

	// Retrieval and context assembly.
	RetrieveK          int     `mapstructure:"RETRIEVE_K"`
	ContextTokenBudget int     `mapstructure:"CONTEXT_TOKEN_BUDGET"`
	MinRelevance       float64 `mapstructure:"MIN_RELEVANCE"`
	ChatHistoryWindow  int     `mapstructure:"CHAT_HISTORY_WINDOW"`

	// Drug interaction engine.
	DrugCacheTTL  time.Duration `mapstructure:"DRUG_CACHE_TTL"`
	LookupTimeout time.Duration `mapstructure:"LOOKUP_TIMEOUT"`

	AuthSecret     string   `mapstructure:"AUTH_SECRET"`
	CORSOrigins    []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS   float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int      `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small")
	v.SetDefault("GENERATION_TIMEOUT", "60s")
	v.SetDefault("QDRANT_URL", "http://localhost:6333")
	v.SetDefault("QDRANT_COLLECTION", "medical_knowledge")
	v.SetDefault("RETRIEVE_K", 10)
	v.SetDefault("CONTEXT_TOKEN_BUDGET", 3000)
	v.SetDefault("MIN_RELEVANCE", 0.35)
	v.SetDefault("CHAT_HISTORY_WINDOW", 10)
	v.SetDefault("DRUG_CACHE_TTL", "720h")
	v.SetDefault("LOOKUP_TIMEOUT", "5s")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("OPENAI_BASE_URL")
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("OPENAI_MODEL")
	v.BindEnv("OPENAI_EMBEDDING_MODEL")
	v.BindEnv("GENERATION_TIMEOUT")
	v.BindEnv("QDRANT_URL")
	v.BindEnv("QDRANT_API_KEY")
	v.BindEnv("QDRANT_COLLECTION")
	v.BindEnv("RETRIEVE_K")
	v.BindEnv("CONTEXT_TOKEN_BUDGET")
	v.BindEnv("MIN_RELEVANCE")
	v.BindEnv("CHAT_HISTORY_WINDOW")
	v.BindEnv("DRUG_CACHE_TTL")
	v.BindEnv("LOOKUP_TIMEOUT")
	v.BindEnv("AUTH_SECRET")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: ============================================================")
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: DevAuthMiddleware is active; all requests are authenticated.")
		log.Println("WARNING: Do NOT use this configuration in production.")
		log.Println("WARNING: Set ENV=production and configure AUTH_SECRET for production.")
		log.Println("WARNING: ============================================================")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Production refuses
// to start without an auth secret and a generation API key; development
// tolerates both being absent (requests are authenticated by the dev
// middleware and generation failures degrade to fallback answers).
func (c *Config) Validate() error {
	if c.IsProduction() {
		if c.AuthSecret == "" {
			return fmt.Errorf("AUTH_SECRET is required in production")
		}
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required in production")
		}
	}
	if c.RetrieveK <= 0 {
		return fmt.Errorf("RETRIEVE_K must be positive, got %d", c.RetrieveK)
	}
	if c.ContextTokenBudget <= 0 {
		return fmt.Errorf("CONTEXT_TOKEN_BUDGET must be positive, got %d", c.ContextTokenBudget)
	}
	if c.MinRelevance < 0 || c.MinRelevance > 1 {
		return fmt.Errorf("MIN_RELEVANCE must be between 0 and 1, got %g", c.MinRelevance)
	}
	if c.ChatHistoryWindow < 0 {
		return fmt.Errorf("CHAT_HISTORY_WINDOW must not be negative, got %d", c.ChatHistoryWindow)
	}
	return nil
}
