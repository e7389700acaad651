package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/readquiz/internal/quiz"
	"github.com/abhisek/readquiz/internal/store"
)

// StoreLoader loads question sets saved in the local database by id.
type StoreLoader struct {
	Repo store.QuizSetRepo
}

func (l *StoreLoader) Load(ctx context.Context, id string) (*quiz.QuestionSet, error) {
	set, err := l.Repo.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return set, nil
}
