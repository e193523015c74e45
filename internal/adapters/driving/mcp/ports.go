package mcp

import (
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Assistant answers queries through the tiered cascade.
	Assistant driving.Assistant

	// Knowledge exposes raw chunk retrieval and store status.
	Knowledge driving.KnowledgeAdmin

	// Corpus exposes the loaded Q&A corpus summary.
	Corpus driving.CorpusInspector
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Assistant == nil {
		return ErrMissingAssistant
	}
	// Knowledge and Corpus are optional; the dependent tool and resources
	// report accordingly.
	return nil
}
