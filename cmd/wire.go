package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/spigell/job-match/internal/embedding"
	"github.com/spigell/job-match/internal/embedding/gemini"
	"github.com/spigell/job-match/internal/embedding/openai"
	"github.com/spigell/job-match/internal/jsearch"
	"github.com/spigell/job-match/internal/logger"
	"github.com/spigell/job-match/internal/matching"
	"github.com/spigell/job-match/internal/secrets"
)

// Inline API keys fall back to these variables when neither the config file
// nor a key file provides one.
const (
	rapidAPIKeyEnv  = "RAPID_API_KEY"
	geminiAPIKeyEnv = "GEMINI_API_KEY"
	openAIAPIKeyEnv = "OPENAI_API_KEY"
)

// newService builds the match service and its collaborators. The embedder is
// created once here and shared by every request.
func newService(ctx context.Context, config *Config, log *zap.Logger) (*matching.Service, error) {
	client, err := newJSearchClient(config.JSearch, logger.WithComponent(log, "jsearch"))
	if err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(ctx, config.Embedding, log)
	if err != nil {
		return nil, fmt.Errorf("building embedder: %w", err)
	}

	return matching.New(client, embedder, logger.WithComponent(log, "matching"), matching.Options{
		Limit:        config.Matching.Limit,
		BatchSize:    config.Embedding.BatchSize,
		MaxLogLength: config.Matching.MaxLogLength,
	}), nil
}

func newJSearchClient(cfg *JSearchConfig, log *zap.Logger) (*jsearch.Client, error) {
	apiKey, err := secrets.Load(secrets.Source{
		Name:  "rapidapi key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   rapidAPIKeyEnv,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (or jsearch.api-key-file)", err)
	}

	client := jsearch.New(log, apiKey)

	if host := strings.TrimSpace(cfg.Host); host != "" {
		client.Host = host
		client.APIURL = "https://" + host
	}

	if cfg.Timeout > 0 {
		client.HTTPClient.Timeout = cfg.Timeout
	}

	if cfg.Search != nil {
		client.Defaults = *cfg.Search
	}

	return client, nil
}

func newEmbedder(ctx context.Context, cfg *EmbeddingConfig, log *zap.Logger) (embedding.Embedder, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	var embedder embedding.Embedder
	switch provider {
	case "", gemini.ProviderName:
		auth := orEmpty(cfg.Gemini)
		apiKey, err := secrets.Load(secrets.Source{Name: "gemini api key", Value: auth.APIKey, File: auth.APIKeyFile, Env: geminiAPIKeyEnv})
		if err != nil {
			return nil, fmt.Errorf("%w (or embedding.gemini.api-key-file)", err)
		}

		e, err := gemini.New(ctx, apiKey, auth.Model, cfg.Dimension, logger.WithComponent(log, "embedding"))
		if err != nil {
			return nil, err
		}
		embedder = e
	case openai.ProviderName:
		auth := orEmpty(cfg.OpenAI)
		apiKey, err := secrets.Load(secrets.Source{Name: "openai api key", Value: auth.APIKey, File: auth.APIKeyFile, Env: openAIAPIKeyEnv})
		if err != nil {
			return nil, fmt.Errorf("%w (or embedding.openai.api-key-file)", err)
		}

		var opts []option.RequestOption
		if auth.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(auth.BaseURL))
		}

		e, err := openai.New(apiKey, auth.Model, cfg.Dimension, logger.WithComponent(log, "embedding"), opts...)
		if err != nil {
			return nil, err
		}
		embedder = e
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}

	if d, ok := embedder.(embedding.Describer); ok {
		log.Info("embedding provider ready", logger.EmbeddingFields(d.Provider(), d.Model())...)
	}

	return embedder, nil
}

func orEmpty(auth *ProviderAuth) *ProviderAuth {
	if auth == nil {
		return &ProviderAuth{}
	}
	return auth
}
