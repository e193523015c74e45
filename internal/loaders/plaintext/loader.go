package plaintext

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Loader handles plain text and markdown documents.
type Loader struct{}

// New creates a new plain text loader.
func New() *Loader {
	return &Loader{}
}

// Extensions returns the file extensions this loader handles.
func (l *Loader) Extensions() []string {
	return []string{".txt", ".text", ".md", ".markdown"}
}

// Load reads the file, normalising line endings and replacing invalid
// UTF-8 so downstream rune-based chunking stays well defined. Markdown
// markup is left in place; the embedding model copes with it better
// than a lossy strip would.
func (l *Loader) Load(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	text := string(data)
	// Exported bank documents often carry a BOM and CRLF endings.
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ToValidUTF8(text, "�")

	return text, nil
}
