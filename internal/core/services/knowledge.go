package services

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driven"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driving"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/logger"
)

// Ensure KnowledgeStore implements the interface.
var _ driving.KnowledgeAdmin = (*KnowledgeStore)(nil)

// knowledgeArtifact is the persisted form of the store. Model and
// Dimension version the artifact: vectors from a different embedding
// model are useless, so a mismatch on load forces a rebuild.
type knowledgeArtifact struct {
	Model     string
	Dimension int
	Chunks    []domain.Chunk
}

// KnowledgeConfig configures the chunk store.
type KnowledgeConfig struct {
	// ArtifactPath is the persisted store location.
	ArtifactPath string

	// ChunkSize is the chunk length in runes.
	ChunkSize int

	// ChunkOverlap is how many runes consecutive chunks share.
	ChunkOverlap int

	// RetrievalFloor drops results scoring at or below it.
	RetrievalFloor float64
}

// KnowledgeStore holds chunks of the knowledge documents with their
// embeddings and serves top-k similarity retrieval.
//
// The store is lazy: the first Search triggers a load-from-artifact,
// falling back to a fresh build from the document source. Concurrent
// searchers block until the store is ready. A directory change marks
// the store stale; the next Search rebuilds before answering.
type KnowledgeStore struct {
	cfg      KnowledgeConfig
	embedder driven.EmbeddingService
	source   driven.DocumentSource

	// loadMu serialises load/build work so only one caller pays for it.
	loadMu sync.Mutex

	// mu guards the fields below.
	mu     sync.RWMutex
	state  domain.StoreState
	stale  bool
	chunks []domain.Chunk
}

// NewKnowledgeStore creates a chunk store. Nothing is loaded until the
// first Search or an explicit Rebuild.
func NewKnowledgeStore(
	cfg KnowledgeConfig,
	embedder driven.EmbeddingService,
	source driven.DocumentSource,
) *KnowledgeStore {
	return &KnowledgeStore{
		cfg:      cfg,
		embedder: embedder,
		source:   source,
	}
}

// Search embeds the query and returns the k closest chunks scoring
// strictly above the retrieval floor, best first. Ties keep the
// earlier chunk. An empty store returns no results and no error.
func (s *KnowledgeStore) Search(ctx context.Context, query string, k int) ([]domain.ScoredChunk, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	chunks := s.chunks
	s.mu.RUnlock()

	if len(chunks) == 0 {
		logger.Debug("Knowledge store: empty, nothing to retrieve")
		return []domain.ScoredChunk{}, nil
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored := make([]domain.ScoredChunk, 0, len(chunks))
	for i := range chunks {
		score := cosine(vector, chunks[i].Embedding)
		if score > s.cfg.RetrievalFloor {
			scored = append(scored, domain.ScoredChunk{Chunk: chunks[i], Score: score})
		}
	}

	// Stable: equal scores keep document order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}

	logger.Debug("Knowledge store: %d chunks above floor %.2f", len(scored), s.cfg.RetrievalFloor)
	return scored, nil
}

// Rebuild discards the current chunks, rebuilds from the document
// source and persists the result. The fresh store is built aside and
// swapped in whole, so concurrent searchers keep working against the
// old chunks until the swap.
func (s *KnowledgeStore) Rebuild(ctx context.Context) (int, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	logger.Section("Knowledge Rebuild")

	s.mu.RLock()
	first := s.state == domain.StoreUninitialised
	s.mu.RUnlock()
	if first {
		s.setState(domain.StoreLoading)
	}

	chunks, err := s.build(ctx)
	if err != nil {
		if first {
			s.setState(domain.StoreUninitialised)
		}
		return 0, fmt.Errorf("rebuild knowledge store: %w", err)
	}

	s.install(chunks)
	s.persist(chunks)
	return len(chunks), nil
}

// Status reports the store's lifecycle state and contents.
func (s *KnowledgeStore) Status() domain.KnowledgeStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.KnowledgeStatus{
		State:        s.state,
		Stale:        s.stale,
		Chunks:       len(s.chunks),
		Model:        s.embedder.ModelName(),
		Dimensions:   s.embedder.Dimensions(),
		ArtifactPath: s.cfg.ArtifactPath,
	}
}

// MarkStale flags the store for a rebuild on the next Search.
func (s *KnowledgeStore) MarkStale() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
	logger.Info("Knowledge store: marked stale, next retrieval rebuilds")
}

// WatchInvalidations subscribes to document source changes and marks
// the store stale on every signal. Returns an error when the source
// cannot watch; the store then relies on manual rebuilds.
func (s *KnowledgeStore) WatchInvalidations(ctx context.Context) error {
	ch, err := s.source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch knowledge directory: %w", err)
	}

	go func() {
		for range ch {
			s.MarkStale()
		}
	}()

	return nil
}

// ensure moves the store to ready, loading the artifact or building
// from documents as needed. Only one caller does the work; the rest
// block on loadMu and see the ready store on re-check.
func (s *KnowledgeStore) ensure(ctx context.Context) error {
	if s.usable() {
		return nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	// Another caller may have finished while we waited.
	if s.usable() {
		return nil
	}

	s.mu.RLock()
	first := s.state == domain.StoreUninitialised
	wasStale := s.stale
	s.mu.RUnlock()

	if first {
		s.setState(domain.StoreLoading)
	}

	// A stale store skips the artifact: it describes the old documents.
	if !wasStale {
		chunks, err := s.loadArtifact()
		if err == nil {
			s.install(chunks)
			logger.Info("Knowledge store: loaded %d chunks from %s", len(chunks), s.cfg.ArtifactPath)
			return nil
		}
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("Knowledge store: no artifact at %s, building", s.cfg.ArtifactPath)
		} else {
			logger.Warn("Knowledge store: discarding artifact: %v", err)
		}
	} else {
		logger.Info("Knowledge store: stale, rebuilding from documents")
	}

	chunks, err := s.build(ctx)
	if err != nil {
		if first {
			// Back to uninitialised so a later call can retry.
			s.setState(domain.StoreUninitialised)
		}
		return fmt.Errorf("build knowledge store: %w", err)
	}

	s.install(chunks)
	s.persist(chunks)
	return nil
}

// usable reports whether searches can proceed without load work.
func (s *KnowledgeStore) usable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == domain.StoreReady && !s.stale
}

// setState transitions the lifecycle state.
func (s *KnowledgeStore) setState(state domain.StoreState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// install swaps in a freshly built or loaded chunk set.
func (s *KnowledgeStore) install(chunks []domain.Chunk) {
	s.mu.Lock()
	s.chunks = chunks
	s.stale = false
	s.state = domain.StoreReady
	s.mu.Unlock()
}

// build chunks every source document and embeds all chunks in one batch.
func (s *KnowledgeStore) build(ctx context.Context) ([]domain.Chunk, error) {
	docs, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	logger.Debug("Knowledge store: %d documents", len(docs))

	var chunks []domain.Chunk
	var texts []string
	for _, doc := range docs {
		pieces := splitText(doc.Text, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
		logger.Debug("Knowledge store: %s -> %d chunks", doc.Path, len(pieces))
		for _, piece := range pieces {
			chunks = append(chunks, domain.Chunk{
				ID:     uuid.New().String(),
				Source: doc.Path,
				Text:   piece,
			})
			texts = append(texts, piece)
		}
	}

	if len(texts) == 0 {
		logger.Warn("Knowledge store: no chunks from %d documents, retrieval tier is empty", len(docs))
		return []domain.Chunk{}, nil
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embed chunks: got %d vectors for %d chunks", len(vectors), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}

	logger.Info("Knowledge store: built %d chunks from %d documents", len(chunks), len(docs))
	return chunks, nil
}

// loadArtifact reads and validates the persisted store.
// Any defect maps to domain.ErrStoreCorrupt so callers rebuild.
func (s *KnowledgeStore) loadArtifact() ([]domain.Chunk, error) {
	f, err := os.Open(s.cfg.ArtifactPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var art knowledgeArtifact
	if err := gob.NewDecoder(f).Decode(&art); err != nil {
		logger.Debug("Knowledge store: gob decode failed: %v", err)
		return nil, fmt.Errorf("decode artifact: %w", domain.ErrStoreCorrupt)
	}

	if art.Model != s.embedder.ModelName() {
		return nil, fmt.Errorf("artifact built with model %q, live model is %q: %w",
			art.Model, s.embedder.ModelName(), domain.ErrStoreCorrupt)
	}
	if art.Dimension != s.embedder.Dimensions() {
		return nil, fmt.Errorf("artifact dimension %d, live dimension %d: %w",
			art.Dimension, s.embedder.Dimensions(), domain.ErrStoreCorrupt)
	}
	for i := range art.Chunks {
		if len(art.Chunks[i].Embedding) != art.Dimension {
			return nil, fmt.Errorf("chunk %d has %d-dimensional embedding, want %d: %w",
				i, len(art.Chunks[i].Embedding), art.Dimension, domain.ErrStoreCorrupt)
		}
	}

	if art.Chunks == nil {
		art.Chunks = []domain.Chunk{}
	}
	return art.Chunks, nil
}

// persist writes the artifact atomically: encode to a temp file in the
// same directory, then rename over the target. Persist failures are
// logged, not returned - the in-memory store still works.
func (s *KnowledgeStore) persist(chunks []domain.Chunk) {
	art := knowledgeArtifact{
		Model:     s.embedder.ModelName(),
		Dimension: s.embedder.Dimensions(),
		Chunks:    chunks,
	}

	dir := filepath.Dir(s.cfg.ArtifactPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		logger.Warn("Knowledge store: create artifact directory: %v", err)
		return
	}

	tmp, err := os.CreateTemp(dir, ".knowledge-*.gob")
	if err != nil {
		logger.Warn("Knowledge store: create temp artifact: %v", err)
		return
	}

	if err := gob.NewEncoder(tmp).Encode(art); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		logger.Warn("Knowledge store: encode artifact: %v", err)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		logger.Warn("Knowledge store: close temp artifact: %v", err)
		return
	}

	if err := os.Rename(tmp.Name(), s.cfg.ArtifactPath); err != nil {
		os.Remove(tmp.Name())
		logger.Warn("Knowledge store: replace artifact: %v", err)
		return
	}

	logger.Info("Knowledge store: persisted %d chunks to %s", len(chunks), s.cfg.ArtifactPath)
}
