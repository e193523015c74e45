package driving

import (
	"context"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
)

// Assistant answers customer queries through the tiered cascade.
// Safe for concurrent use: the TUI and the MCP server may share one
// instance.
type Assistant interface {
	// Answer routes the query and returns the terminal reply.
	// Returns domain.ErrEmptyQuery for blank input; every other
	// failure is absorbed by a lower tier.
	Answer(ctx context.Context, query string) (domain.Answer, error)
}
