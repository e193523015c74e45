// Package tui provides the interactive chat surface for bfsi-assistant.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the chat surface uses.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Assistant answers queries through the tiered cascade.
	Assistant driving.Assistant
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Assistant == nil {
		return ErrMissingAssistant
	}
	return nil
}
