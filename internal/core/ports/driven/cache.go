package driven

import "context"

// EmbeddingCache stores computed embeddings keyed by model and text.
// Corpus questions and frequent queries hit the same vectors across
// runs; the cache keeps those off the provider's bill.
//
// Cache failures must never fail an embed: callers log and go upstream.
type EmbeddingCache interface {
	// Get returns the cached vector for the model/text pair.
	// Returns domain.ErrCacheMiss when no entry exists.
	Get(ctx context.Context, model, text string) ([]float32, error)

	// Put stores a vector for the model/text pair, replacing any
	// previous entry.
	Put(ctx context.Context, model, text string, vector []float32) error

	// Close releases resources.
	Close() error
}
