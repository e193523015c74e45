package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
)

func testKnowledgeConfig(t *testing.T) KnowledgeConfig {
	t.Helper()
	return KnowledgeConfig{
		ArtifactPath:   filepath.Join(t.TempDir(), "knowledge.gob"),
		ChunkSize:      400,
		ChunkOverlap:   80,
		RetrievalFloor: 0.2,
	}
}

func TestKnowledgeStore_Search_BuildsOnFirstUse(t *testing.T) {
	cfg := testKnowledgeConfig(t)
	src := &mockDocumentSource{docs: []domain.SourceDocument{
		{Path: "loans.txt", Text: "Prepayment of a floating rate loan carries no penalty."},
	}}
	store := NewKnowledgeStore(cfg, &mockEmbedder{}, src)

	assert.Equal(t, domain.StoreUninitialised, store.Status().State)

	results, err := store.Search(context.Background(), "prepayment", 2)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "loans.txt", results[0].Source)
	assert.Equal(t, domain.StoreReady, store.Status().State)
	assert.FileExists(t, cfg.ArtifactPath)

	// Second search serves from memory.
	_, err = store.Search(context.Background(), "prepayment", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, src.listCalls)
}

func TestKnowledgeStore_Search_LoadsPersistedArtifact(t *testing.T) {
	cfg := testKnowledgeConfig(t)
	docs := []domain.SourceDocument{{Path: "a.txt", Text: "Account closure needs a written request."}}

	first := NewKnowledgeStore(cfg, &mockEmbedder{}, &mockDocumentSource{docs: docs})
	_, err := first.Search(context.Background(), "closure", 2)
	require.NoError(t, err)

	// A fresh store on the same artifact never touches the documents.
	brokenSrc := &mockDocumentSource{listErr: errors.New("directory gone")}
	second := NewKnowledgeStore(cfg, &mockEmbedder{}, brokenSrc)

	results, err := second.Search(context.Background(), "closure", 2)

	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 0, brokenSrc.listCalls)
	assert.Equal(t, 1, second.Status().Chunks)
}

func TestKnowledgeStore_Search_CorruptArtifactRebuilds(t *testing.T) {
	cfg := testKnowledgeConfig(t)
	require.NoError(t, os.WriteFile(cfg.ArtifactPath, []byte("not a gob stream"), 0600))

	src := &mockDocumentSource{docs: []domain.SourceDocument{
		{Path: "b.txt", Text: "Cheque books arrive within seven working days."},
	}}
	store := NewKnowledgeStore(cfg, &mockEmbedder{}, src)

	results, err := store.Search(context.Background(), "cheque", 2)

	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 1, src.listCalls)
}

func TestKnowledgeStore_Search_ModelChangeRebuilds(t *testing.T) {
	cfg := testKnowledgeConfig(t)
	docs := []domain.SourceDocument{{Path: "c.txt", Text: "Fixed deposits renew automatically at maturity."}}

	first := NewKnowledgeStore(cfg, &mockEmbedder{model: "embed-v1"}, &mockDocumentSource{docs: docs})
	_, err := first.Search(context.Background(), "deposit", 2)
	require.NoError(t, err)

	// Same artifact, different live model: the store must rebuild.
	src := &mockDocumentSource{docs: docs}
	second := NewKnowledgeStore(cfg, &mockEmbedder{model: "embed-v2"}, src)

	_, err = second.Search(context.Background(), "deposit", 2)

	require.NoError(t, err)
	assert.Equal(t, 1, src.listCalls)
}

func TestKnowledgeStore_Search_DimensionChangeRebuilds(t *testing.T) {
	cfg := testKnowledgeConfig(t)
	docs := []domain.SourceDocument{{Path: "d.txt", Text: "Lockers are allotted on a first come first served basis."}}

	first := NewKnowledgeStore(cfg, &mockEmbedder{}, &mockDocumentSource{docs: docs})
	_, err := first.Search(context.Background(), "locker", 2)
	require.NoError(t, err)

	src := &mockDocumentSource{docs: docs}
	wide := &mockEmbedder{dims: 4, fallback: []float32{1, 0, 0, 0}}
	second := NewKnowledgeStore(cfg, wide, src)

	_, err = second.Search(context.Background(), "locker", 2)

	require.NoError(t, err)
	assert.Equal(t, 1, src.listCalls)
	assert.Equal(t, 4, second.Status().Dimensions)
}

func TestKnowledgeStore_Search_FloorAndK(t *testing.T) {
	cfg := testKnowledgeConfig(t)
	src := &mockDocumentSource{docs: []domain.SourceDocument{
		{Path: "high.txt", Text: "closely related text"},
		{Path: "mid.txt", Text: "somewhat related text"},
		{Path: "low.txt", Text: "barely related text"},
	}}
	emb := &mockEmbedder{
		vectors: map[string][]float32{
			"closely related text":  {1, 0, 0},
			"somewhat related text": {0.7, 0.714, 0},
			"barely related text":   {0.1, 0.995, 0},
			"the query":             {1, 0, 0},
		},
	}
	store := NewKnowledgeStore(cfg, emb, src)

	results, err := store.Search(context.Background(), "the query", 2)

	require.NoError(t, err)
	// low.txt scores ~0.1, under the 0.2 floor; k=2 keeps the rest.
	require.Len(t, results, 2)
	assert.Equal(t, "high.txt", results[0].Source)
	assert.Equal(t, "mid.txt", results[1].Source)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestKnowledgeStore_Search_KCapsResults(t *testing.T) {
	cfg := testKnowledgeConfig(t)
	src := &mockDocumentSource{docs: []domain.SourceDocument{
		{Path: "one.txt", Text: "first document text"},
		{Path: "two.txt", Text: "second document text"},
		{Path: "three.txt", Text: "third document text"},
	}}
	store := NewKnowledgeStore(cfg, &mockEmbedder{}, src)

	results, err := store.Search(context.Background(), "anything", 1)

	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestKnowledgeStore_Search_EmptyDirectory(t *testing.T) {
	cfg := testKnowledgeConfig(t)
	store := NewKnowledgeStore(cfg, &mockEmbedder{}, &mockDocumentSource{})

	results, err := store.Search(context.Background(), "anything", 2)

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, domain.StoreReady, store.Status().State)
	assert.Equal(t, 0, store.Status().Chunks)
}

func TestKnowledgeStore_Search_BuildFailureAllowsRetry(t *testing.T) {
	cfg := testKnowledgeConfig(t)
	src := &mockDocumentSource{listErr: errors.New("permission denied")}
	store := NewKnowledgeStore(cfg, &mockEmbedder{}, src)

	_, err := store.Search(context.Background(), "anything", 2)

	require.Error(t, err)
	assert.Equal(t, domain.StoreUninitialised, store.Status().State)

	// The failure is not latched: fixing the source fixes the store.
	src.listErr = nil
	src.docs = []domain.SourceDocument{{Path: "e.txt", Text: "UPI limits reset at midnight."}}

	results, err := store.Search(context.Background(), "upi", 2)

	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, domain.StoreReady, store.Status().State)
}

func TestKnowledgeStore_Rebuild(t *testing.T) {
	cfg := testKnowledgeConfig(t)
	src := &mockDocumentSource{docs: []domain.SourceDocument{
		{Path: "f.txt", Text: "Old content."},
	}}
	store := NewKnowledgeStore(cfg, &mockEmbedder{}, src)

	_, err := store.Search(context.Background(), "old", 2)
	require.NoError(t, err)
	require.Equal(t, 1, store.Status().Chunks)

	src.docs = []domain.SourceDocument{
		{Path: "f.txt", Text: "New content."},
		{Path: "g.txt", Text: "More content."},
	}

	count, err := store.Rebuild(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, store.Status().Chunks)

	// The artifact was rewritten: a fresh store sees the new chunks.
	fresh := NewKnowledgeStore(cfg, &mockEmbedder{}, &mockDocumentSource{listErr: errors.New("unused")})
	_, err = fresh.Search(context.Background(), "content", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Status().Chunks)
}

func TestKnowledgeStore_MarkStale_RebuildsOnNextSearch(t *testing.T) {
	cfg := testKnowledgeConfig(t)
	src := &mockDocumentSource{docs: []domain.SourceDocument{
		{Path: "h.txt", Text: "Original."},
	}}
	store := NewKnowledgeStore(cfg, &mockEmbedder{}, src)

	_, err := store.Search(context.Background(), "original", 2)
	require.NoError(t, err)
	require.Equal(t, 1, src.listCalls)

	store.MarkStale()
	assert.True(t, store.Status().Stale)

	_, err = store.Search(context.Background(), "original", 2)

	require.NoError(t, err)
	assert.Equal(t, 2, src.listCalls)
	assert.False(t, store.Status().Stale)
}

func TestKnowledgeStore_WatchInvalidations(t *testing.T) {
	cfg := testKnowledgeConfig(t)
	src := &mockDocumentSource{
		docs:    []domain.SourceDocument{{Path: "i.txt", Text: "Watched."}},
		watchCh: make(chan struct{}),
	}
	store := NewKnowledgeStore(cfg, &mockEmbedder{}, src)

	_, err := store.Search(context.Background(), "watched", 2)
	require.NoError(t, err)

	require.NoError(t, store.WatchInvalidations(context.Background()))
	src.watchCh <- struct{}{}

	require.Eventually(t, func() bool {
		return store.Status().Stale
	}, time.Second, 10*time.Millisecond)
}

func TestKnowledgeStore_WatchInvalidations_SourceCannotWatch(t *testing.T) {
	cfg := testKnowledgeConfig(t)
	src := &mockDocumentSource{watchErr: errors.New("watcher unavailable")}
	store := NewKnowledgeStore(cfg, &mockEmbedder{}, src)

	err := store.WatchInvalidations(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch knowledge directory")
}

func TestKnowledgeStore_ConcurrentSearch_SingleBuild(t *testing.T) {
	cfg := testKnowledgeConfig(t)
	src := &mockDocumentSource{docs: []domain.SourceDocument{
		{Path: "j.txt", Text: "Concurrent access."},
	}}
	store := NewKnowledgeStore(cfg, &mockEmbedder{}, src)

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.Search(context.Background(), "concurrent", 2)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 1, src.listCalls)
}
