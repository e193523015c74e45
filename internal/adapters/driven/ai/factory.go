// Package ai builds model provider adapters from settings.
package ai

import (
	"context"
	"fmt"
	"os"
	"time"

	ollamaembed "github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/adapters/driven/embedding/openai"
	ollamagen "github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/adapters/driven/generation/ollama"
	openaigen "github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/adapters/driven/generation/openai"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/adapters/driven/ratelimit"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/adapters/driven/storage/memory"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/adapters/driven/storage/sqlite"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for connectivity validation.
const pingTimeout = 5 * time.Second

// ApplyEnvOverrides fills secrets and hosts from the environment.
// The environment wins over the settings file so API keys can stay in
// a local .env instead of on disk in config.toml.
func ApplyEnvOverrides(settings domain.Settings) domain.Settings {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		settings.OpenAI.APIKey = key
	}
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		settings.Ollama.Host = host
	}
	return settings
}

// NewLimiter builds the shared request limiter from settings.
// Local Ollama runs unlimited: the model itself is the bottleneck,
// and there is no quota to protect.
func NewLimiter(settings domain.Settings) *ratelimit.Limiter {
	if settings.Provider.IsLocal() {
		return ratelimit.Unlimited()
	}
	return ratelimit.New(settings.Limits.RequestsPerSecond, settings.Limits.Burst)
}

// CreateEmbeddingService creates the embedding service for the
// configured provider.
func CreateEmbeddingService(settings domain.Settings, limiter *ratelimit.Limiter) (driven.EmbeddingService, error) {
	switch settings.Provider {
	case domain.ProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.Ollama.Host,
			Model:   settings.Ollama.EmbedModel,
			Limiter: limiter,
		}), nil

	case domain.ProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.OpenAI.APIKey,
			Model:   settings.OpenAI.EmbedModel,
			Limiter: limiter,
		})

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateGenerationService creates the generation service for the
// configured provider.
func CreateGenerationService(settings domain.Settings, limiter *ratelimit.Limiter) (driven.GenerationService, error) {
	switch settings.Provider {
	case domain.ProviderOllama:
		return ollamagen.NewGenerationService(ollamagen.Config{
			BaseURL: settings.Ollama.Host,
			Model:   settings.Ollama.GenerateModel,
			Limiter: limiter,
		}), nil

	case domain.ProviderOpenAI:
		return openaigen.NewGenerationService(openaigen.Config{
			APIKey:  settings.OpenAI.APIKey,
			Model:   settings.OpenAI.GenerateModel,
			Limiter: limiter,
		})

	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", settings.Provider)
	}
}

// CreateEmbeddingCache selects the persistent SQLite cache, or an
// in-process cache when persistence is disabled so repeated texts
// within a session still embed only once.
func CreateEmbeddingCache(settings domain.Settings) (driven.EmbeddingCache, error) {
	if !settings.Cache.Enabled {
		return memory.NewCache(), nil
	}

	store, err := sqlite.NewStore(settings.Cache.Path)
	if err != nil {
		return nil, fmt.Errorf("opening embedding cache: %w", err)
	}
	return store, nil
}

// ValidateEmbedding builds the configured embedding service and pings
// it, releasing the service afterwards. Used by connectivity checks
// before a chat session starts.
func ValidateEmbedding(settings domain.Settings, limiter *ratelimit.Limiter) error {
	svc, err := CreateEmbeddingService(settings, limiter)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// ValidateGeneration builds the configured generation service and
// pings it, releasing the service afterwards.
func ValidateGeneration(settings domain.Settings, limiter *ratelimit.Limiter) error {
	svc, err := CreateGenerationService(settings, limiter)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}
