package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorpusCmd_Use(t *testing.T) {
	assert.Equal(t, "corpus", corpusCmd.Use)
}

func TestCorpusInfoCmd_RendersInfo(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"corpus", "info"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "data/corpus.csv")
	assert.Contains(t, output, "12")
	assert.Contains(t, output, "nomic-embed-text")
	assert.NotContains(t, output, "corpus is empty")
}

func TestCorpusInfoCmd_EmptyCorpusNote(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	corpusService = &mockCorpus{size: 0, path: "data/corpus.csv", model: "nomic-embed-text"}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"corpus", "info"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "corpus is empty")
}

func TestCorpusInfoCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	corpusService = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"corpus", "info"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "corpus service not configured")
}
