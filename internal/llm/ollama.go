package llm

import (
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOllamaBaseURL = "http://localhost:11434/v1"
	defaultOllamaModel   = "llama3.1"

	// Ollama ignores the key but the OpenAI client sends one.
	ollamaAPIKey = "ollama"
)

// NewOllamaProvider creates a provider for a local Ollama server through its
// OpenAI-compatible endpoint. Ollama does not enforce strict JSON schemas, so
// the provider requests plain JSON mode and carries the schema in the system
// prompt; responses are still validated against the schema.
func NewOllamaProvider(cfg OllamaConfig) (*OpenAIProvider, error) {
	model := cfg.Model
	if model == "" {
		model = defaultOllamaModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}

	config := openai.DefaultConfig(ollamaAPIKey)
	config.BaseURL = baseURL

	return &OpenAIProvider{
		client:   openai.NewClientWithConfig(config),
		model:    model,
		jsonMode: true,
	}, nil
}

// ollamaBaseURLFromHost turns an OLLAMA_HOST value ("host:port" or a URL)
// into the OpenAI-compatible base URL.
func ollamaBaseURLFromHost(host string) string {
	host = strings.TrimRight(host, "/")
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	if strings.HasSuffix(host, "/v1") {
		return host
	}
	return fmt.Sprintf("%s/v1", host)
}
