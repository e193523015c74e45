package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/adapters/driven/ai"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/adapters/driven/config/file"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/adapters/driven/docs"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/adapters/driven/embedding/cached"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/adapters/driving/cli"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/services"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/loaders"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/logger"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	// API keys may live in a local .env instead of config.toml.
	_ = godotenv.Load()

	cli.SetVersion(version)
	cli.SetSettingsOpener(openSettings)
	cli.SetStackBuilder(buildStack)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// openSettings creates the settings store. Installed as a deferred
// hook so the settings and version commands work even when the model
// stack cannot start.
func openSettings(configDir string) error {
	store, err := file.NewSettingsStore(configDir)
	if err != nil {
		return fmt.Errorf("opening settings: %w", err)
	}
	cli.SetSettingsStore(store)
	return nil
}

// buildStack wires the full answering stack: settings, routing rules,
// model providers, the Q&A corpus, the knowledge store and the
// cascade router. Runs once, on the first command that needs it.
func buildStack(configDir string) error {
	ctx := context.Background()

	dir, err := resolveConfigDir(configDir)
	if err != nil {
		return err
	}

	store, err := file.NewSettingsStore(configDir)
	if err != nil {
		return fmt.Errorf("opening settings: %w", err)
	}
	cli.SetSettingsStore(store)

	settings, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	settings = ai.ApplyEnvOverrides(settings)
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	rulesetStore, err := file.NewRulesetStore(filepath.Join(dir, "rules"))
	if err != nil {
		return fmt.Errorf("opening ruleset: %w", err)
	}
	rules, err := rulesetStore.Load()
	if err != nil {
		return fmt.Errorf("loading ruleset: %w", err)
	}

	limiter := ai.NewLimiter(settings)

	embedder, err := ai.CreateEmbeddingService(settings, limiter)
	if err != nil {
		return fmt.Errorf("creating embedding service: %w", err)
	}

	if settings.Cache.Path == "" {
		settings.Cache.Path = dir
	}
	embedCache, err := ai.CreateEmbeddingCache(settings)
	if err != nil {
		return fmt.Errorf("opening embedding cache: %w", err)
	}
	embedder = cached.New(embedder, embedCache)

	generator, err := ai.CreateGenerationService(settings, limiter)
	if err != nil {
		return fmt.Errorf("creating generation service: %w", err)
	}

	corpus := services.NewCorpusMatcher(settings.CorpusPath, embedder)

	// An unreachable provider is not fatal: the dataset and retrieval
	// tiers stand down and the templates still answer.
	if err := ai.ValidateEmbedding(settings, limiter); err != nil {
		logger.Warn("Embedding provider unreachable: %v", err)
	} else if err := corpus.Load(ctx); err != nil {
		logger.Warn("Corpus disabled: %v", err)
	}
	if err := ai.ValidateGeneration(settings, limiter); err != nil {
		logger.Warn("Generation provider unreachable: %v", err)
	}

	registry := loaders.NewRegistry()
	loaders.RegisterDefaults(registry)
	source := docs.New(settings.DataDir, registry)

	storePath := settings.StorePath
	if storePath == "" {
		storePath = filepath.Join(dir, "knowledge.gob")
	}
	knowledge := services.NewKnowledgeStore(services.KnowledgeConfig{
		ArtifactPath:   storePath,
		ChunkSize:      settings.Router.ChunkSize,
		ChunkOverlap:   settings.Router.ChunkOverlap,
		RetrievalFloor: settings.Router.RetrievalFloor,
	}, embedder, source)

	if err := knowledge.WatchInvalidations(ctx); err != nil {
		logger.Warn("Knowledge watch disabled: %v", err)
	}

	assistant := services.NewAssistant(services.AssistantConfig{
		DatasetThreshold: settings.Router.DatasetThreshold,
		RetrievalK:       settings.Router.RetrievalK,
		ModelTimeout:     settings.ModelTimeout(),
	}, rules, services.NewGuardrail(rules), corpus, knowledge, services.NewTemplateRouter(rules), generator)

	cli.SetAssistant(assistant)
	cli.SetKnowledge(knowledge)
	cli.SetCorpus(corpus)

	return nil
}

// resolveConfigDir applies the same default as the settings store so
// sibling artifacts (rules, cache, knowledge store) land next to
// config.toml.
func resolveConfigDir(configDir string) (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".bfsi-assistant"), nil
}
