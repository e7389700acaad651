package llm

import (
	"context"
	"encoding/json"
)

// Provider is a chat model that can answer with schema-checked JSON.
// Backends, RetryProvider and LoggingProvider all implement it so they can
// be stacked.
type Provider interface {
	// Generate sends req and returns the model's answer. When req.Schema is
	// set, Content has been checked against it before Generate returns.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model, used for logging and pricing.
	ModelID() string
}

// Request is one generation call. Quiz generation sends a system prompt
// and a single user message holding the article.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, switches the backend to its structured output mode.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Role is who sent a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Schema is a named JSON Schema document. Name must be kebab-case; OpenAI
// rejects anything else as a schema name.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason says why the model stopped writing.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is a successful generation.
type Response struct {
	// Content is the JSON answer, with any markdown fence removed.
	Content json.RawMessage

	Usage      Usage
	Model      string
	StopReason StopReason
}

// Usage is the token count of one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
