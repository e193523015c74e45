// Package memory provides an in-memory embedding cache.
//
// It is used when the persistent SQLite cache is disabled, so repeated
// texts within a session still embed only once, and as a lightweight
// cache in tests.
package memory

import (
	"context"
	"sync"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.EmbeddingCache = (*Cache)(nil)

// Cache is an in-memory implementation of driven.EmbeddingCache.
// Entries live for the lifetime of the process.
type Cache struct {
	mu      sync.RWMutex
	vectors map[cacheKey][]float32
}

type cacheKey struct {
	model string
	text  string
}

// NewCache creates a new in-memory embedding cache.
func NewCache() *Cache {
	return &Cache{
		vectors: make(map[cacheKey][]float32),
	}
}

// Get returns the cached vector for the model/text pair.
// Returns domain.ErrCacheMiss when no entry exists.
func (c *Cache) Get(_ context.Context, model, text string) ([]float32, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	vector, ok := c.vectors[cacheKey{model: model, text: text}]
	if !ok {
		return nil, domain.ErrCacheMiss
	}

	// Copy so callers cannot mutate the cached entry.
	out := make([]float32, len(vector))
	copy(out, vector)
	return out, nil
}

// Put stores a vector for the model/text pair, replacing any previous entry.
func (c *Cache) Put(_ context.Context, model, text string, vector []float32) error {
	stored := make([]float32, len(vector))
	copy(stored, vector)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.vectors[cacheKey{model: model, text: text}] = stored
	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vectors)
}

// Close releases resources. It is a no-op for the in-memory cache.
func (c *Cache) Close() error {
	return nil
}
