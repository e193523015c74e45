package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCmd_Use(t *testing.T) {
	assert.Equal(t, "settings", settingsCmd.Use)
}

func TestSettingsListCmd_RendersAllKeys(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "/tmp/config.toml")
	assert.Contains(t, output, "provider")
	assert.Contains(t, output, "ollama")
	assert.Contains(t, output, "ollama.host")
	assert.Contains(t, output, "http://localhost:11434")
}

func TestSettingsListCmd_MasksSecretAndMarksEmpty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	store := newMockSettingsStore()
	store.values["openai.api_key"] = "sk-1234567890abcdef"
	store.values["store_path"] = ""
	settingsStore = store

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "sk-1...cdef")
	assert.NotContains(t, output, "sk-1234567890abcdef")
	assert.Contains(t, output, "(not set)")
}

func TestSettingsCmd_BareInvocationLists(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Current Settings")
}

func TestSettingsGetCmd_PrintsValue(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "get", "ollama.host"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "http://localhost:11434")
}

func TestSettingsGetCmd_MasksSecret(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	store := newMockSettingsStore()
	store.values["openai.api_key"] = "sk-1234567890abcdef"
	settingsStore = store

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "get", "openai.api_key"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "sk-1...cdef")
	assert.NotContains(t, buf.String(), "sk-1234567890abcdef")
}

func TestSettingsGetCmd_UnknownKey(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "get", "no.such.key"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown setting")
}

func TestSettingsSetCmd_SetsAndEchoes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	store := newMockSettingsStore()
	settingsStore = store

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "set", "ollama.host", "http://remote:11434"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "ollama.host = http://remote:11434")
	assert.Equal(t, "http://remote:11434", store.values["ollama.host"])
}

func TestSettingsSetCmd_MasksSecretEcho(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	store := newMockSettingsStore()
	settingsStore = store

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "set", "openai.api_key", "sk-1234567890abcdef"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "openai.api_key = sk-1...cdef")
	assert.NotContains(t, buf.String(), "= sk-1234567890abcdef")
	assert.Equal(t, "sk-1234567890abcdef", store.values["openai.api_key"])
}

func TestSettingsSetCmd_RejectsBadValue(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "set", "no.such.key", "value"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set no.such.key")
}

func TestSettingsSetCmd_MissingValueForPlainKey(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "set", "ollama.host"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing value argument")
}

func TestSettingsListCmd_StoreNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	settingsStore = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "settings store not configured")
}

// Test helper functions in settings.go

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskAPIKey(tt.input))
		})
	}
}

func TestIsSecretKey(t *testing.T) {
	assert.True(t, isSecretKey("openai.api_key"))
	assert.False(t, isSecretKey("ollama.host"))
	assert.False(t, isSecretKey("provider"))
}
