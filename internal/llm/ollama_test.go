package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProvider_JSONModeCarriesSchema(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-local",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "llama3.1",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": `{"title":"Tides"}`},
					"finish_reason": "stop",
				},
			},
			"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 4, "total_tokens": 16},
		})
	}))
	t.Cleanup(server.Close)

	p, err := NewOllamaProvider(OllamaConfig{BaseURL: server.URL + "/v1"})
	require.NoError(t, err)
	assert.Equal(t, "llama3.1", p.ModelID())

	resp, err := p.Generate(context.Background(), Request{
		System:   "You write quizzes.",
		Messages: []Message{{Role: RoleUser, Content: "Article text"}},
		Schema: &Schema{
			Name: "title-only",
			Definition: map[string]any{
				"type":       "object",
				"properties": map[string]any{"title": map[string]any{"type": "string"}},
				"required":   []any{"title"},
			},
		},
		MaxTokens: 64,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Tides"}`, string(resp.Content))

	format, _ := captured["response_format"].(map[string]any)
	assert.Equal(t, "json_object", format["type"])

	msgs, _ := captured["messages"].([]any)
	require.NotEmpty(t, msgs)
	system, _ := msgs[0].(map[string]any)
	content, _ := system["content"].(string)
	assert.True(t, strings.HasPrefix(content, "You write quizzes."))
	assert.Contains(t, content, "JSON Schema")
	assert.Contains(t, content, `"title"`)
}

func TestOllamaProvider_RejectsNonConformingJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model": "llama3.1",
			"choices": []map[string]any{
				{"index": 0, "message": map[string]any{"role": "assistant", "content": `{"name":1}`}, "finish_reason": "stop"},
			},
		})
	}))
	t.Cleanup(server.Close)

	p, err := NewOllamaProvider(OllamaConfig{Model: "mistral", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
		Schema: &Schema{
			Name: "needs-title",
			Definition: map[string]any{
				"type":     "object",
				"required": []any{"title"},
			},
		},
	})
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestOllamaBaseURLFromHost(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"localhost:11434", "http://localhost:11434/v1"},
		{"http://gpu-box:11434/", "http://gpu-box:11434/v1"},
		{"https://ollama.internal/v1", "https://ollama.internal/v1"},
	}
	for _, tt := range tests {
		if got := ollamaBaseURLFromHost(tt.host); got != tt.want {
			t.Errorf("ollamaBaseURLFromHost(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}

func TestDiscoverConfig_OllamaHost(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OLLAMA_HOST", "127.0.0.1:11434")

	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, "http://127.0.0.1:11434/v1", cfg.Ollama.BaseURL)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnv_ReadsPrefixedVars(t *testing.T) {
	t.Setenv("READQUIZ_LLM_PROVIDER", "openai")
	t.Setenv("READQUIZ_OPENAI_API_KEY", "sk-test")
	t.Setenv("READQUIZ_OPENAI_MODEL", "gpt-4o")

	cfg := ConfigFromEnv()
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)

	resolved, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, resolved.Provider)
}

func TestResolve_ExplicitProviderMissingKey(t *testing.T) {
	t.Setenv("READQUIZ_LLM_PROVIDER", "anthropic")
	t.Setenv("READQUIZ_ANTHROPIC_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "sk-fallback")

	_, err := Resolve()
	assert.Error(t, err)
}
