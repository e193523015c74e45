package docs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driven"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/loaders"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/logger"
)

// Ensure DirSource implements the interface.
var _ driven.DocumentSource = (*DirSource)(nil)

// DirSource reads knowledge documents from a single directory.
// Listing is non-recursive: policy documents are expected flat, and
// skipping subdirectories keeps accidental clutter out of the store.
type DirSource struct {
	dir      string
	registry *loaders.Registry
}

// New creates a document source over the given directory.
func New(dir string, registry *loaders.Registry) *DirSource {
	return &DirSource{
		dir:      dir,
		registry: registry,
	}
}

// Dir returns the watched directory.
func (s *DirSource) Dir() string {
	return s.dir
}

// List returns every readable document with its extracted text.
// Files without a registered loader are skipped silently; files that
// fail to load are skipped with a warning. Only a missing or
// unreadable directory is an error.
func (s *DirSource) List(ctx context.Context) ([]domain.SourceDocument, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading knowledge directory %s: %w", s.dir, err)
	}

	// os.ReadDir sorts by filename, so build order is deterministic.
	var docs []domain.SourceDocument
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(s.dir, entry.Name())

		loader, err := s.registry.For(path)
		if err != nil {
			logger.Debug("Documents: skipping %s (no loader)", entry.Name())
			continue
		}

		text, err := loader.Load(ctx, path)
		if err != nil {
			if errors.Is(err, domain.ErrPDFToolNotFound) {
				logger.Warn("Documents: skipping %s: %v", entry.Name(), err)
			} else {
				logger.Warn("Documents: failed to load %s: %v", entry.Name(), err)
			}
			continue
		}

		if strings.TrimSpace(text) == "" {
			logger.Debug("Documents: skipping %s (empty)", entry.Name())
			continue
		}

		docs = append(docs, domain.SourceDocument{
			Path: path,
			Text: text,
		})
	}

	logger.Debug("Documents: listed %d of %d entries from %s", len(docs), len(entries), s.dir)
	return docs, nil
}
