// Package openai provides a generation service adapter using the OpenAI API.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/adapters/driven/ratelimit"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driven"
)

// Ensure GenerationService implements the interface.
var _ driven.GenerationService = (*GenerationService)(nil)

// Default configuration values.
const (
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 120 * time.Second
)

// systemPrompt keeps answers grounded in the supplied context.
const systemPrompt = "You are a banking and insurance call-centre assistant. " +
	"Answer only from the provided context. If the context does not cover " +
	"the question, say you do not have that information."

// Config holds configuration for the OpenAI generation service.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL overrides the API base URL, for Azure OpenAI or
	// compatible gateways. Empty uses the public API.
	BaseURL string

	// Model is the chat model to use (default: gpt-4o-mini).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// Limiter paces requests against the provider quota.
	Limiter *ratelimit.Limiter
}

// GenerationService produces grounded answer text using the OpenAI
// chat completions API.
type GenerationService struct {
	client  *openai.Client
	model   string
	limiter *ratelimit.Limiter
}

// NewGenerationService creates a new OpenAI generation service.
func NewGenerationService(cfg Config) (*GenerationService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai generation: %w", domain.ErrNotConfigured)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Limiter == nil {
		cfg.Limiter = ratelimit.Unlimited()
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &GenerationService{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Model,
		limiter: cfg.Limiter,
	}, nil
}

// Generate produces text completion from a prompt.
func (s *GenerationService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}
	if opts.Temperature > 0 {
		req.Temperature = float32(opts.Temperature)
	}
	if len(opts.StopWords) > 0 {
		req.Stop = opts.StopWords
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		s.limiter.RecordFailure()
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		s.limiter.RecordFailure()
		return "", fmt.Errorf("openai chat completion: no choices returned")
	}

	s.limiter.RecordSuccess()
	return resp.Choices[0].Message.Content, nil
}

// ModelName returns the name of the chat model being used.
func (s *GenerationService) ModelName() string {
	return s.model
}

// Ping validates the API key by listing models.
func (s *GenerationService) Ping(ctx context.Context) error {
	if _, err := s.client.ListModels(ctx); err != nil {
		return fmt.Errorf("openai: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *GenerationService) Close() error {
	return nil
}
