package quizgen

import "github.com/abhisek/readquiz/internal/llm"

// QuizSchema defines the JSON schema for LLM question set responses.
var QuizSchema = &llm.Schema{
	Name:        "quiz-set",
	Description: "A multiple-choice reading comprehension quiz about an article",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "A short title for the quiz",
			},
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text, answerable from the article alone",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "The answer options, exactly one of which is correct",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The exact text of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One or two sentences citing the article to justify the answer",
						},
					},
					"required":             []any{"question", "options", "answer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "questions"},
		"additionalProperties": false,
	},
}
