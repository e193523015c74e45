package driven

import "context"

// GenerationService produces free text from a prompt. The router uses it
// for the retrieval-augmented tier only; when a call fails the router
// falls through to the template tier.
//
// Implementations may include:
//   - Ollama (llama3.2, mistral)
//   - OpenAI (gpt-4o-mini, gpt-4o)
type GenerationService interface {
	// Generate produces a completion for the prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the generation model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
