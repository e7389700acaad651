// Package loader resolves question sets for a session from a file, the
// local store, a remote quiz API or LLM generation.
package loader

import (
	"context"
	"errors"

	"github.com/abhisek/readquiz/internal/quiz"
)

// ErrNotFound is returned when the requested question set does not exist.
var ErrNotFound = errors.New("question set not found")

// Loader resolves a reference (id, path, ...) to a validated question set.
type Loader interface {
	Load(ctx context.Context, ref string) (*quiz.QuestionSet, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, ref string) (*quiz.QuestionSet, error)

func (f LoaderFunc) Load(ctx context.Context, ref string) (*quiz.QuestionSet, error) {
	return f(ctx, ref)
}
