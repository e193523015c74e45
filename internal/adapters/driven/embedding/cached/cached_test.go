package cached

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
)

// mockInner counts upstream calls.
type mockInner struct {
	vector   []float32
	embedErr error
	calls    int
}

func (m *mockInner) Embed(_ context.Context, _ string) ([]float32, error) {
	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vector, nil
}

func (m *mockInner) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i := range texts {
		v, err := m.Embed(ctx, texts[i])
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}

func (m *mockInner) Dimensions() int { return 3 }

func (m *mockInner) ModelName() string { return "mock-embed" }

func (m *mockInner) Ping(_ context.Context) error { return nil }

func (m *mockInner) Close() error { return nil }

// mapCache is an in-memory EmbeddingCache.
type mapCache struct {
	entries map[string][]float32
	getErr  error
	putErr  error
	puts    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]float32)}
}

func (c *mapCache) Get(_ context.Context, model, text string) ([]float32, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	v, ok := c.entries[model+"\x00"+text]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return v, nil
}

func (c *mapCache) Put(_ context.Context, model, text string, vector []float32) error {
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	c.entries[model+"\x00"+text] = vector
	return nil
}

func (c *mapCache) Close() error { return nil }

func TestEmbed_CachesSecondCall(t *testing.T) {
	inner := &mockInner{vector: []float32{1, 2, 3}}
	cache := newMapCache()
	svc := New(inner, cache)

	first, err := svc.Embed(context.Background(), "what is kyc")
	require.NoError(t, err)

	second, err := svc.Embed(context.Background(), "what is kyc")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
}

func TestEmbed_CacheGetFailureGoesUpstream(t *testing.T) {
	inner := &mockInner{vector: []float32{1, 2, 3}}
	cache := newMapCache()
	cache.getErr = errors.New("disk full")
	svc := New(inner, cache)

	vector, err := svc.Embed(context.Background(), "query")

	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, vector)
	assert.Equal(t, 1, inner.calls)
}

func TestEmbed_CachePutFailureIsAbsorbed(t *testing.T) {
	inner := &mockInner{vector: []float32{1, 2, 3}}
	cache := newMapCache()
	cache.putErr = errors.New("read-only database")
	svc := New(inner, cache)

	_, err := svc.Embed(context.Background(), "query")

	assert.NoError(t, err)
}

func TestEmbed_UpstreamErrorPropagates(t *testing.T) {
	inner := &mockInner{embedErr: errors.New("provider down")}
	svc := New(inner, newMapCache())

	_, err := svc.Embed(context.Background(), "query")

	assert.EqualError(t, err, "provider down")
}

func TestEmbedBatch_MixedHitsAndMisses(t *testing.T) {
	inner := &mockInner{vector: []float32{9, 9, 9}}
	cache := newMapCache()
	cache.entries["mock-embed\x00cached text"] = []float32{1, 1, 1}
	svc := New(inner, cache)

	vectors, err := svc.EmbedBatch(context.Background(), []string{"cached text", "new text", "cached text"})

	require.NoError(t, err)
	require.Len(t, vectors, 3)
	assert.Equal(t, []float32{1, 1, 1}, vectors[0])
	assert.Equal(t, []float32{9, 9, 9}, vectors[1])
	assert.Equal(t, []float32{1, 1, 1}, vectors[2])
	assert.Equal(t, 1, inner.calls)
}

func TestEmbedBatch_AllHitsSkipUpstream(t *testing.T) {
	inner := &mockInner{}
	cache := newMapCache()
	cache.entries["mock-embed\x00a"] = []float32{1}
	cache.entries["mock-embed\x00b"] = []float32{2}
	svc := New(inner, cache)

	vectors, err := svc.EmbedBatch(context.Background(), []string{"a", "b"})

	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1}, {2}}, vectors)
	assert.Equal(t, 0, inner.calls)
}

func TestDelegation(t *testing.T) {
	svc := New(&mockInner{}, newMapCache())

	assert.Equal(t, 3, svc.Dimensions())
	assert.Equal(t, "mock-embed", svc.ModelName())
	assert.NoError(t, svc.Ping(context.Background()))
	assert.NoError(t, svc.Close())
}
