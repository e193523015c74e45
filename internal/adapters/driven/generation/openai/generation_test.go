package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driven"
)

// chatRequest mirrors the fields of the completion request the tests
// care about.
type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens   int      `json:"max_tokens"`
	Temperature float32  `json:"temperature"`
	Stop        []string `json:"stop"`
}

func completionJSON(content string) string {
	text, _ := json.Marshal(content)
	return `{"id":"chatcmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":` + string(text) + `},"finish_reason":"stop"}]}`
}

func newChatServer(t *testing.T, response string, capture *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, response)
	}))
}

func TestNewGenerationService_RequiresKey(t *testing.T) {
	_, err := NewGenerationService(Config{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestGenerate(t *testing.T) {
	var got chatRequest
	server := newChatServer(t, completionJSON("Processing fees range from 0.5% to 2% of the loan amount."), &got)
	defer server.Close()

	svc, err := NewGenerationService(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	text, err := svc.Generate(context.Background(), "Context: ...\n\nQuestion: what are the processing fees?", driven.GenerateOptions{})

	require.NoError(t, err)
	assert.Equal(t, "Processing fees range from 0.5% to 2% of the loan amount.", text)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "call-centre assistant")
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Contains(t, got.Messages[1].Content, "processing fees")
}

func TestGenerate_AppliesOptions(t *testing.T) {
	var got chatRequest
	server := newChatServer(t, completionJSON("ok"), &got)
	defer server.Close()

	svc, err := NewGenerationService(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	opts := driven.GenerateOptions{
		MaxTokens:   256,
		Temperature: 0.2,
		StopWords:   []string{"Question:"},
	}
	_, err = svc.Generate(context.Background(), "prompt", opts)

	require.NoError(t, err)
	assert.Equal(t, 256, got.MaxTokens)
	assert.InDelta(t, 0.2, got.Temperature, 0.001)
	assert.Equal(t, []string{"Question:"}, got.Stop)
}

func TestGenerate_NoChoices(t *testing.T) {
	server := newChatServer(t, `{"id":"chatcmpl-1","object":"chat.completion","choices":[]}`, nil)
	defer server.Close()

	svc, err := NewGenerationService(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "prompt", driven.GenerateOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestGenerate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"overloaded","type":"server_error"}}`)
	}))
	defer server.Close()

	svc, err := NewGenerationService(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "prompt", driven.GenerateOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai chat completion")
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"object":"list","data":[{"id":"gpt-4o-mini","object":"model"}]}`)
	}))
	defer server.Close()

	svc, err := NewGenerationService(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	assert.NoError(t, svc.Ping(context.Background()))
}

func TestDefaults(t *testing.T) {
	svc, err := NewGenerationService(Config{APIKey: "sk-test"})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", svc.ModelName())
	assert.NoError(t, svc.Close())
}
