package loaders

import (
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/loaders/pdf"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/loaders/plaintext"
)

// RegisterDefaults registers all built-in loaders with the registry.
// Call this during application initialisation.
func RegisterDefaults(r *Registry) {
	r.Register(plaintext.New())
	r.Register(pdf.New())
}
