package loaders

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driven"
)

// Registry maps file extensions to their loaders.
// It allows the document source to dispatch on extension without
// knowing any format.
type Registry struct {
	byExt map[string]driven.DocumentLoader
}

// NewRegistry creates an empty loader registry.
func NewRegistry() *Registry {
	return &Registry{
		byExt: make(map[string]driven.DocumentLoader),
	}
}

// Register adds a loader under every extension it reports.
// A later registration for the same extension wins.
func (r *Registry) Register(loader driven.DocumentLoader) {
	for _, ext := range loader.Extensions() {
		r.byExt[strings.ToLower(ext)] = loader
	}
}

// For returns the loader handling the file at path.
// Returns domain.ErrLoaderUnsupported when no loader claims the extension.
func (r *Registry) For(path string) (driven.DocumentLoader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrLoaderUnsupported)
	}
	return loader, nil
}

// Has returns true if a loader is registered for the extension.
func (r *Registry) Has(ext string) bool {
	_, ok := r.byExt[strings.ToLower(ext)]
	return ok
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
