package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/readquiz/internal/quiz"
)

const (
	maxQuestionLen    = 500
	maxOptionLen      = 200
	maxExplanationLen = 1000
	maxOptions        = 26
)

// StructuralValidator checks that required fields are present and within
// length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) fail(format string, args ...any) *ValidationError {
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf(format, args...),
		Retryable: true,
	}
}

func (v *StructuralValidator) Validate(d *Draft, _ Config) *ValidationError {
	if len(d.Questions) == 0 {
		return v.fail("no questions")
	}
	for i, q := range d.Questions {
		n := i + 1
		if strings.TrimSpace(q.Question) == "" {
			return v.fail("question %d is empty", n)
		}
		if len(q.Question) > maxQuestionLen {
			return v.fail("question %d exceeds %d characters", n, maxQuestionLen)
		}
		if len(q.Options) < quiz.MinOptions || len(q.Options) > maxOptions {
			return v.fail("question %d has %d options, want %d-%d", n, len(q.Options), quiz.MinOptions, maxOptions)
		}
		seen := make(map[string]bool, len(q.Options))
		for j, opt := range q.Options {
			key := strings.ToLower(strings.TrimSpace(opt))
			if key == "" {
				return v.fail("question %d option %d is empty", n, j+1)
			}
			if len(opt) > maxOptionLen {
				return v.fail("question %d option %d exceeds %d characters", n, j+1, maxOptionLen)
			}
			if seen[key] {
				return v.fail("question %d repeats option %q", n, opt)
			}
			seen[key] = true
		}
		if len(q.Explanation) > maxExplanationLen {
			return v.fail("question %d explanation exceeds %d characters", n, maxExplanationLen)
		}
	}
	return nil
}
