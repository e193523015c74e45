package loaders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
)

// stubLoader is a minimal DocumentLoader for registry tests.
type stubLoader struct {
	exts []string
	text string
}

func (s *stubLoader) Extensions() []string { return s.exts }

func (s *stubLoader) Load(_ context.Context, _ string) (string, error) { return s.text, nil }

func TestRegistry_For(t *testing.T) {
	r := NewRegistry()
	txt := &stubLoader{exts: []string{".txt"}, text: "plain"}
	r.Register(txt)

	loader, err := r.For("/knowledge/faq.txt")
	require.NoError(t, err)
	assert.Same(t, txt, loader.(*stubLoader))

	_, err = r.For("/knowledge/faq.docx")
	assert.ErrorIs(t, err, domain.ErrLoaderUnsupported)
}

func TestRegistry_For_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubLoader{exts: []string{".pdf"}})

	_, err := r.For("/knowledge/POLICY.PDF")
	assert.NoError(t, err)
}

func TestRegistry_Register_LaterWins(t *testing.T) {
	r := NewRegistry()
	first := &stubLoader{exts: []string{".txt"}, text: "first"}
	second := &stubLoader{exts: []string{".txt"}, text: "second"}
	r.Register(first)
	r.Register(second)

	loader, err := r.For("notes.txt")
	require.NoError(t, err)
	assert.Same(t, second, loader.(*stubLoader))
}

func TestRegistry_Extensions_Sorted(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubLoader{exts: []string{".txt", ".md"}})
	r.Register(&stubLoader{exts: []string{".pdf"}})

	assert.Equal(t, []string{".md", ".pdf", ".txt"}, r.Extensions())
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	for _, ext := range []string{".txt", ".md", ".pdf"} {
		assert.True(t, r.Has(ext), "extension %s", ext)
	}
	assert.False(t, r.Has(".docx"))
}
