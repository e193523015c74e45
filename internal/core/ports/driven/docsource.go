package driven

import (
	"context"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
)

// DocumentSource enumerates the knowledge documents that feed the chunk
// store. Text extraction happens behind this port; the core never sees
// file formats.
type DocumentSource interface {
	// List returns every readable document with its extracted text.
	// Unreadable or unsupported files are skipped, not fatal.
	List(ctx context.Context) ([]domain.SourceDocument, error)

	// Watch emits a signal whenever the underlying documents change.
	// The channel closes when ctx is cancelled. Implementations that
	// cannot watch return an error; callers degrade to manual rebuilds.
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// DocumentLoader extracts plain text from one file format.
type DocumentLoader interface {
	// Extensions returns the lowercase file extensions this loader
	// handles, dot included, e.g. [".txt"].
	Extensions() []string

	// Load extracts the text content of the file at path.
	Load(ctx context.Context, path string) (string, error)
}
