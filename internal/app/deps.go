package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/shd1007/ClaimLocal/internal/claims"
	"github.com/shd1007/ClaimLocal/internal/config"
	"github.com/shd1007/ClaimLocal/internal/llm"
	"github.com/shd1007/ClaimLocal/internal/logger"
	"github.com/shd1007/ClaimLocal/internal/summarize"
)

// Deps bundles the runtime dependencies of the API service.
type Deps struct {
	Config     config.Config
	Log        *slog.Logger
	Store      claims.Store
	LLM        llm.Client
	Summarizer *summarize.Service
}

// Build loads env, config, and shared components.
func Build(ctx context.Context) (Deps, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return Deps{}, err
	}
	log := logger.New(cfg.LogLevel)

	st, err := buildStore(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize claim store: %w", err)
	}
	llmClient, err := buildLLM(ctx, cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize completion client: %w", err)
	}
	return Deps{
		Config:     cfg,
		Log:        log,
		Store:      st,
		LLM:        llmClient,
		Summarizer: summarize.NewService(st, llmClient, log),
	}, nil
}

func buildStore(cfg config.Config, log *slog.Logger) (claims.Store, error) {
	switch cfg.StoreProvider {
	case "file":
		log.Info("using file claim store", "claims", cfg.ClaimsPath, "notes", cfg.NotesPath)
		return claims.NewFileStore(cfg.ClaimsPath, cfg.NotesPath), nil
	case "postgres":
		db, err := claims.NewPostgres(cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
		}
		log.Info("using Postgres claim store")
		return db, nil
	default:
		return nil, fmt.Errorf("invalid STORE_PROVIDER: %s (valid options: file, postgres)", cfg.StoreProvider)
	}
}

func buildLLM(ctx context.Context, cfg config.Config, log *slog.Logger) (llm.Client, error) {
	cred, err := buildCredential(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	client, err := llm.NewOpenAIClient(cfg.LLMEndpoint, cfg.LLMDeployment, cfg.LLMAPIVersion, cred)
	if err != nil {
		return nil, err
	}
	log.Info("using chat completion client", "deployment", cfg.LLMDeployment, "api_version", cfg.LLMAPIVersion)
	return client, nil
}

func buildCredential(ctx context.Context, cfg config.Config, log *slog.Logger) (llm.Credential, error) {
	if cfg.LLMAPIKey != "" {
		log.Info("completion auth mode: static api key")
		return llm.NewAPIKeyCredential(cfg.LLMAPIKey)
	}
	log.Info("completion auth mode: bearer token", "audience", cfg.TokenAudience)
	return llm.NewBearerTokenCredential(ctx, cfg.TokenURL, cfg.TokenClientID, cfg.TokenClientSecret, cfg.TokenAudience)
}
