package driving

import (
	"context"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
)

// KnowledgeAdmin exposes chunk store maintenance to the CLI and MCP surfaces.
type KnowledgeAdmin interface {
	// Rebuild discards the current store, rebuilds from the knowledge
	// directory and persists the result. Returns the new chunk count.
	Rebuild(ctx context.Context) (int, error)

	// Status reports the store's current lifecycle state and contents.
	Status() domain.KnowledgeStatus

	// Search runs a raw retrieval against the store, bypassing the
	// answer cascade. Used for inspection.
	Search(ctx context.Context, query string, k int) ([]domain.ScoredChunk, error)
}
