package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

const validDraft = `{"title":"Bees","questions":[{"question":"What do bees make?","options":["Honey","Milk"],"answer":"Honey"}]}`

func quizDraftSchema() *Schema {
	return &Schema{
		Name:        "quiz-draft-test",
		Description: "A multiple-choice quiz",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"questions": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question": map[string]any{"type": "string", "minLength": 1},
							"options": map[string]any{
								"type":     "array",
								"minItems": 2,
								"items":    map[string]any{"type": "string"},
							},
							"answer":      map[string]any{"type": "string"},
							"explanation": map[string]any{"type": "string"},
						},
						"required": []any{"question", "options", "answer"},
					},
				},
			},
			"required": []any{"title", "questions"},
		},
	}
}

func TestCheckResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid draft", validDraft, false},
		{"with explanation", `{"title":"T","questions":[{"question":"Q?","options":["a","b"],"answer":"a","explanation":"because"}]}`, false},
		{"extra fields allowed", `{"title":"T","source":"web","questions":[{"question":"Q?","options":["a","b"],"answer":"b"}]}`, false},
		{"missing title", `{"questions":[{"question":"Q?","options":["a","b"],"answer":"a"}]}`, true},
		{"no questions", `{"title":"T","questions":[]}`, true},
		{"one option", `{"title":"T","questions":[{"question":"Q?","options":["a"],"answer":"a"}]}`, true},
		{"missing answer", `{"title":"T","questions":[{"question":"Q?","options":["a","b"]}]}`, true},
		{"numeric options", `{"title":"T","questions":[{"question":"Q?","options":[1,2],"answer":"1"}]}`, true},
		{"empty question", `{"title":"T","questions":[{"question":"","options":["a","b"],"answer":"a"}]}`, true},
		{"malformed JSON", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := checkResponse(quizDraftSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("checkResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got: %T", err)
			}
			if string(inv.Content) != tt.raw {
				t.Errorf("Content = %s, want the raw response", inv.Content)
			}
		})
	}
}

func TestCheckResponse_NilSchema(t *testing.T) {
	got, err := checkResponse(nil, json.RawMessage(`plain text`))
	if err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
	if string(got) != `plain text` {
		t.Errorf("content = %s, want it unchanged", got)
	}
}

func TestCheckResponse_BadSchema(t *testing.T) {
	schema := &Schema{
		Name:       "broken-schema-test",
		Definition: map[string]any{"type": "no-such-type"},
	}
	_, err := checkResponse(schema, json.RawMessage(`{}`))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse for an uncompilable schema, got: %v", err)
	}
}

func TestCheckResponse_StripsFence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"json fence", "```json\n" + validDraft + "\n```"},
		{"bare fence", "```\n" + validDraft + "\n```"},
		{"inline fence", "```" + validDraft + "```"},
		{"surrounding space", "\n  " + validDraft + "  \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checkResponse(quizDraftSchema(), json.RawMessage(tt.raw))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != validDraft {
				t.Errorf("content = %s, want %s", got, validDraft)
			}
		})
	}
}

func TestGetCompiledSchema_Cached(t *testing.T) {
	first, err := getCompiledSchema(quizDraftSchema())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := getCompiledSchema(quizDraftSchema())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected the compiled schema to be reused")
	}
}
