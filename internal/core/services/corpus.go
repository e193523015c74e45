package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driven"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driving"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/logger"
)

// Ensure CorpusMatcher implements the interface.
var _ driving.CorpusInspector = (*CorpusMatcher)(nil)

// CorpusMatcher answers queries from the curated Q&A dataset.
// Questions are embedded once at load time; BestMatch embeds the live
// query and compares by cosine similarity. The matcher applies no
// threshold itself - the router owns the cutoff.
type CorpusMatcher struct {
	path     string
	embedder driven.EmbeddingService

	mu      sync.RWMutex
	entries []domain.QAEntry
}

// NewCorpusMatcher creates a matcher over the CSV corpus at path.
// Call Load before the first BestMatch.
func NewCorpusMatcher(path string, embedder driven.EmbeddingService) *CorpusMatcher {
	return &CorpusMatcher{path: path, embedder: embedder}
}

// Load reads the corpus file and embeds every question in one batch.
// Invalid rows are skipped with a warning. A missing or empty corpus
// is not fatal: the tier simply never matches.
func (m *CorpusMatcher) Load(ctx context.Context) error {
	logger.Section("Corpus Load")

	f, err := os.Open(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Corpus: %s does not exist, dataset tier disabled", m.path)
			m.swap(nil)
			return nil
		}
		return fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	entries, err := readCorpus(f)
	if err != nil {
		return fmt.Errorf("read corpus %s: %w", m.path, err)
	}
	if len(entries) == 0 {
		logger.Warn("Corpus: no usable rows in %s, dataset tier disabled", m.path)
		m.swap(nil)
		return nil
	}

	questions := make([]string, len(entries))
	for i := range entries {
		questions[i] = entries[i].Question
	}

	logger.Debug("Corpus: embedding %d questions", len(questions))
	vectors, err := m.embedder.EmbedBatch(ctx, questions)
	if err != nil {
		return fmt.Errorf("embed corpus questions: %w", err)
	}
	if len(vectors) != len(entries) {
		return fmt.Errorf("embed corpus questions: got %d vectors for %d questions", len(vectors), len(entries))
	}
	for i := range entries {
		entries[i].Embedding = vectors[i]
	}

	m.swap(entries)
	logger.Info("Corpus: loaded %d entries from %s", len(entries), m.path)
	return nil
}

// Size returns the number of loaded entries.
func (m *CorpusMatcher) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Path returns the corpus file location.
func (m *CorpusMatcher) Path() string {
	return m.path
}

// Model returns the embedding model behind the question vectors.
func (m *CorpusMatcher) Model() string {
	return m.embedder.ModelName()
}

// BestMatch embeds the query and returns the closest corpus entry with
// its similarity score. Scores below any threshold are still returned;
// ties keep the lowest index. Returns domain.ErrNoMatch when the
// corpus is empty.
func (m *CorpusMatcher) BestMatch(ctx context.Context, query string) (domain.QAEntry, float64, error) {
	m.mu.RLock()
	entries := m.entries
	m.mu.RUnlock()

	if len(entries) == 0 {
		return domain.QAEntry{}, 0, domain.ErrNoMatch
	}

	vector, err := m.embedder.Embed(ctx, query)
	if err != nil {
		return domain.QAEntry{}, 0, fmt.Errorf("embed query: %w", err)
	}

	bestIdx := -1
	bestScore := math.Inf(-1)
	for i := range entries {
		if score := cosine(vector, entries[i].Embedding); score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}

	logger.Debug("Corpus: best match %q scored %.3f", entries[bestIdx].Question, bestScore)
	return entries[bestIdx], bestScore, nil
}

// readCorpus parses CSV rows into corpus entries. The first record
// must be a "question,answer" header. Rows missing either field are
// skipped with a warning rather than failing the load.
func readCorpus(r io.Reader) ([]domain.QAEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 ||
		!strings.EqualFold(strings.TrimSpace(header[0]), "question") ||
		!strings.EqualFold(strings.TrimSpace(header[1]), "answer") {
		return nil, errors.New(`header must be "question,answer"`)
	}

	var entries []domain.QAEntry
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Warn("Corpus: skipping row %d: %v", line, err)
			continue
		}

		if len(record) < 2 {
			logger.Warn("Corpus: skipping row %d: want question and answer, got %d fields", line, len(record))
			continue
		}
		question := strings.TrimSpace(record[0])
		answer := strings.TrimSpace(record[1])
		if question == "" || answer == "" {
			logger.Warn("Corpus: skipping row %d: empty question or answer", line)
			continue
		}

		entries = append(entries, domain.QAEntry{
			ID:       uuid.New().String(),
			Question: question,
			Answer:   answer,
		})
	}

	return entries, nil
}

// swap replaces the loaded entries.
func (m *CorpusMatcher) swap(entries []domain.QAEntry) {
	m.mu.Lock()
	m.entries = entries
	m.mu.Unlock()
}
