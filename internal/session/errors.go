package session

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownQuestion is returned when an answer names a question id
	// that is not part of the session's question set.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrInvalidOption is returned when an option index is out of range
	// for the question being answered.
	ErrInvalidOption = errors.New("invalid option")

	// ErrIncompleteAnswers is returned by Submit while some questions
	// have no recorded answer.
	ErrIncompleteAnswers = errors.New("incomplete answers")

	// ErrAlreadySubmitted is returned by Answer and Submit once the
	// round has been submitted.
	ErrAlreadySubmitted = errors.New("session already submitted")

	// ErrNotSubmitted is returned by score and results accessors while
	// the round is still being answered.
	ErrNotSubmitted = errors.New("session not submitted")
)

// IncompleteError lists the questions still missing an answer.
// It matches ErrIncompleteAnswers with errors.Is.
type IncompleteError struct {
	Missing []string
	Total   int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: %d of %d questions unanswered (%s)",
		ErrIncompleteAnswers, len(e.Missing), e.Total, strings.Join(e.Missing, ", "))
}

func (e *IncompleteError) Unwrap() error { return ErrIncompleteAnswers }
