package quizgen

import (
	"fmt"

	"github.com/abhisek/readquiz/internal/quiz"
)

// AnswerValidator checks that every answer names one of its options.
type AnswerValidator struct{}

func (v *AnswerValidator) Name() string { return "answer" }

func (v *AnswerValidator) Validate(d *Draft, _ Config) *ValidationError {
	for i, q := range d.Questions {
		if _, ok := quiz.ResolveAnswer(q.Options, q.Answer); !ok {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d answer %q does not match any option", i+1, q.Answer),
				Retryable: true,
			}
		}
	}
	return nil
}
