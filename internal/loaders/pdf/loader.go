package pdf

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// CommandRunner abstracts command execution for testing.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Loader extracts text from PDF documents by shelling out to the
// poppler pdftotext tool. Native Go PDF text extraction is unreliable
// for the scanned-ish layouts banks publish; poppler handles them.
type Loader struct {
	runner CommandRunner
}

// New creates a PDF loader using the system pdftotext.
func New() *Loader {
	return &Loader{runner: execRunner{}}
}

// NewWithRunner creates a PDF loader with a custom command runner.
func NewWithRunner(runner CommandRunner) *Loader {
	return &Loader{runner: runner}
}

// Extensions returns the file extensions this loader handles.
func (l *Loader) Extensions() []string {
	return []string{".pdf"}
}

// Load extracts the text of the PDF at path.
// Returns domain.ErrPDFToolNotFound when pdftotext is not installed;
// the document source skips the file and keeps going.
func (l *Loader) Load(ctx context.Context, path string) (string, error) {
	if err := CheckAvailable(); err != nil {
		return "", err
	}

	// "-" sends the extracted text to stdout.
	out, err := l.runner.Run(ctx, "pdftotext", "-layout", "-nopgbrk", path, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext failed on %s: %w", path, err)
	}

	return strings.TrimSpace(string(out)), nil
}

// CheckAvailable reports whether pdftotext is on the PATH.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return domain.ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns guidance for installing pdftotext.
func InstallInstructions() string {
	return `PDF support requires the pdftotext tool from poppler.

Install it with:
  macOS:          brew install poppler
  Debian/Ubuntu:  apt install poppler-utils
  Fedora:         dnf install poppler-utils`
}
