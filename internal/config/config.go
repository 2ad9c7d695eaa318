package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Config holds runtime configuration. The completion endpoint supports
// two credential modes: a static key (LLM_API_KEY) or, when the key is
// absent, bearer tokens acquired from TOKEN_URL for TOKEN_AUDIENCE.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Claim store
	StoreProvider string `env:"STORE_PROVIDER" envDefault:"file"` // "file" (shipped datasets) or "postgres"
	ClaimsPath    string `env:"CLAIMS_PATH" envDefault:"data/claims.json"`
	NotesPath     string `env:"NOTES_PATH" envDefault:"data/notes.json"`
	DBURL         string `env:"DB_URL"`

	// Chat completion endpoint
	LLMEndpoint   string `env:"LLM_ENDPOINT" validate:"required,url"`
	LLMDeployment string `env:"LLM_DEPLOYMENT" validate:"required"`
	LLMAPIVersion string `env:"LLM_API_VERSION" envDefault:"2024-06-01"`
	LLMAPIKey     string `env:"LLM_API_KEY"`

	// Token provider, used only when LLM_API_KEY is empty
	TokenURL          string `env:"TOKEN_URL" validate:"required_without=LLMAPIKey"`
	TokenClientID     string `env:"TOKEN_CLIENT_ID"`
	TokenClientSecret string `env:"TOKEN_CLIENT_SECRET"`
	TokenAudience     string `env:"TOKEN_AUDIENCE" validate:"required_without=LLMAPIKey"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

var validate = validator.New()

// Validate checks required settings, including that one of the two
// credential modes is fully configured.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.StoreProvider == "postgres" && c.DBURL == "" {
		return fmt.Errorf("invalid configuration: DB_URL is required when STORE_PROVIDER=postgres")
	}
	return nil
}
