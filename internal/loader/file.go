package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/abhisek/readquiz/internal/quiz"
)

// FileLoader loads question sets from YAML or JSON files; the ref is a path.
type FileLoader struct{}

func (FileLoader) Load(_ context.Context, path string) (*quiz.QuestionSet, error) {
	set, err := quiz.ReadSetFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return set, err
}
