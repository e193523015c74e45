// Package cached decorates an embedding service with a persistent cache.
package cached

import (
	"context"
	"errors"
	"fmt"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driven"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/logger"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// EmbeddingService wraps an inner embedding service and consults the
// cache before every upstream call. Cache failures are logged and
// bypassed; the inner service stays the source of truth.
//
// Close closes the inner service only. The cache is owned by whoever
// created it.
type EmbeddingService struct {
	inner driven.EmbeddingService
	cache driven.EmbeddingCache
}

// New wraps inner with the cache.
func New(inner driven.EmbeddingService, cache driven.EmbeddingCache) *EmbeddingService {
	return &EmbeddingService{inner: inner, cache: cache}
}

// Embed returns the cached vector or embeds upstream and stores it.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	model := s.inner.ModelName()

	vector, err := s.cache.Get(ctx, model, text)
	if err == nil {
		return vector, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logger.Warn("Embedding cache: get failed: %v", err)
	}

	vector, err = s.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Put(ctx, model, text, vector); err != nil {
		logger.Warn("Embedding cache: put failed: %v", err)
	}
	return vector, nil
}

// EmbedBatch serves what it can from the cache and embeds the misses
// in a single upstream batch.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	model := s.inner.ModelName()
	result := make([][]float32, len(texts))

	var missIdx []int
	var missTexts []string
	for i, text := range texts {
		vector, err := s.cache.Get(ctx, model, text)
		if err == nil {
			result[i] = vector
			continue
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Warn("Embedding cache: get failed: %v", err)
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}

	logger.Debug("Embedding cache: %d hits, %d misses", len(texts)-len(missTexts), len(missTexts))

	if len(missTexts) == 0 {
		return result, nil
	}

	vectors, err := s.inner.EmbedBatch(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(missTexts) {
		return nil, fmt.Errorf("embed batch: got %d vectors for %d texts", len(vectors), len(missTexts))
	}

	for j, idx := range missIdx {
		result[idx] = vectors[j]
		if err := s.cache.Put(ctx, model, missTexts[j], vectors[j]); err != nil {
			logger.Warn("Embedding cache: put failed: %v", err)
		}
	}
	return result, nil
}

// Dimensions returns the inner service's vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the inner service's model name.
func (s *EmbeddingService) ModelName() string {
	return s.inner.ModelName()
}

// Ping delegates to the inner service.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close closes the inner service.
func (s *EmbeddingService) Close() error {
	return s.inner.Close()
}
