package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated draft. They execute in order; the first failure
	// stops the pipeline.
	Validators []Validator

	// NumQuestions is how many questions to ask the LLM for.
	NumQuestions int

	// NumOptions is how many options each question should carry.
	NumOptions int

	// MaxArticleChars caps the article text sent when no summary exists.
	MaxArticleChars int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxAttempts bounds regeneration after a retryable validation failure.
	MaxAttempts int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerValidator{},
			&DuplicateValidator{},
		},
		NumQuestions:    5,
		NumOptions:      4,
		MaxArticleChars: 1200,
		MaxTokens:       2048,
		Temperature:     0.3,
		MaxAttempts:     2,
	}
}
