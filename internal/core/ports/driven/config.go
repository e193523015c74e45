package driven

import (
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
)

// SettingsStore persists runtime configuration.
// Implementations handle the file format (e.g. TOML) and defaulting.
type SettingsStore interface {
	// Load returns the current settings. A missing file is not an
	// error: defaults are returned.
	Load() (domain.Settings, error)

	// Save persists the settings, creating the file if needed.
	Save(settings domain.Settings) error

	// Get retrieves one value by dotted key, e.g. "ollama.host".
	// Returns the rendered value and whether the key exists.
	Get(key string) (string, bool)

	// Set stores one value by dotted key and persists immediately.
	// The string is converted to the field's type.
	Set(key, value string) error

	// Keys returns every dotted key in sorted order.
	Keys() []string

	// Path returns the backing file location.
	Path() string
}

// RulesetStore provides the keyword tables and canned response texts.
// Implementations ship embedded defaults and may let users override
// them from disk.
type RulesetStore interface {
	// Load returns the active ruleset. A broken user override falls
	// back to the embedded defaults rather than failing.
	Load() (*domain.Ruleset, error)

	// Reload clears any cached ruleset, forcing a fresh load on next access.
	Reload()

	// Dir returns the directory holding user overrides.
	Dir() string
}
