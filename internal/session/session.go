// Package session implements the self-assessment session engine: a
// synchronous state machine over an immutable question set that records
// one answer per question, scores on submission and supports retries.
//
// A Session is owned by a single caller and is not safe for concurrent use.
package session

import (
	"fmt"

	"github.com/abhisek/readquiz/internal/quiz"
)

// Session is one user's attempt at a question set. Each Reset starts a new
// round over the same questions.
type Session struct {
	set      *quiz.QuestionSet
	position map[string]int

	current int
	answers quiz.AnswerRecord
	phase   Phase
	round   int

	observers    map[int]Observer
	nextObserver int
}

// New creates a session in PhaseAnswering at the first question. The set is
// validated and copied; later changes to set do not affect the session.
func New(set *quiz.QuestionSet) (*Session, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}

	owned := set.Clone()
	position := make(map[string]int, owned.Len())
	for i, q := range owned.Questions {
		position[q.ID] = i
	}

	return &Session{
		set:      owned,
		position: position,
		answers:  make(quiz.AnswerRecord),
		phase:    PhaseAnswering,
		round:    1,
	}, nil
}

// Answer records option as the answer to questionID, replacing any earlier
// answer. Rejected calls leave the session unchanged.
func (s *Session) Answer(questionID string, option int) error {
	if s.phase != PhaseAnswering {
		return fmt.Errorf("answer %q: %w", questionID, ErrAlreadySubmitted)
	}
	i, ok := s.position[questionID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
	}
	q := s.set.Questions[i]
	if !q.ValidOption(option) {
		return fmt.Errorf("%w: %d for question %q with %d options",
			ErrInvalidOption, option, questionID, len(q.Options))
	}

	s.answers[questionID] = option
	s.notify(Change{Op: OpAnswer, QuestionID: questionID, Option: option})
	return nil
}

// AnswerCurrent records option for the question at the current index.
func (s *Session) AnswerCurrent(option int) error {
	return s.Answer(s.Current().ID, option)
}

// GoTo moves to index, clamped to the question range.
func (s *Session) GoTo(index int) {
	last := s.set.Len() - 1
	switch {
	case index < 0:
		index = 0
	case index > last:
		index = last
	}
	if index == s.current {
		return
	}
	s.current = index
	s.notify(Change{Op: OpNavigate})
}

// Next moves forward one question; no-op at the last question.
func (s *Session) Next() {
	s.GoTo(s.current + 1)
}

// Previous moves back one question; no-op at the first question.
func (s *Session) Previous() {
	s.GoTo(s.current - 1)
}

// Submit scores the round and moves to PhaseSubmitted. Every question must
// have an answer; otherwise an *IncompleteError is returned and the phase
// stays PhaseAnswering.
func (s *Session) Submit() error {
	if s.phase != PhaseAnswering {
		return fmt.Errorf("submit: %w", ErrAlreadySubmitted)
	}
	if missing := s.Missing(); len(missing) > 0 {
		return &IncompleteError{Missing: missing, Total: s.set.Len()}
	}

	s.phase = PhaseSubmitted
	s.notify(Change{
		Op:    OpSubmit,
		Score: Score(s.set, s.answers),
		Total: s.set.Len(),
	})
	return nil
}

// Reset clears all answers and starts a new round at the first question.
// Valid in either phase; the question set is kept.
func (s *Session) Reset() {
	s.answers = make(quiz.AnswerRecord)
	s.current = 0
	s.phase = PhaseAnswering
	s.round++
	s.notify(Change{Op: OpReset})
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Round returns the 1-based round number, incremented by every Reset.
func (s *Session) Round() int {
	return s.round
}

// Title returns the question set title.
func (s *Session) Title() string {
	return s.set.Title
}

// SetID returns the question set id.
func (s *Session) SetID() string {
	return s.set.ID
}

// QuestionSet returns a copy of the session's question set.
func (s *Session) QuestionSet() *quiz.QuestionSet {
	return s.set.Clone()
}

// Len returns the number of questions.
func (s *Session) Len() int {
	return s.set.Len()
}

// CurrentIndex returns the 0-based index of the current question.
func (s *Session) CurrentIndex() int {
	return s.current
}

// Current returns the question at the current index.
func (s *Session) Current() quiz.Question {
	return s.set.Questions[s.current]
}

// Question returns the question at index i.
func (s *Session) Question(i int) (quiz.Question, bool) {
	if i < 0 || i >= s.set.Len() {
		return quiz.Question{}, false
	}
	return s.set.Questions[i], true
}

// Chosen returns the recorded option for questionID, if any.
func (s *Session) Chosen(questionID string) (int, bool) {
	v, ok := s.answers[questionID]
	return v, ok
}

// Answers returns a copy of the current answer record.
func (s *Session) Answers() quiz.AnswerRecord {
	return s.answers.Clone()
}

// Score returns the number of correct answers for a submitted round.
func (s *Session) Score() (int, error) {
	if s.phase != PhaseSubmitted {
		return 0, ErrNotSubmitted
	}
	return Score(s.set, s.answers), nil
}

// Percentage returns the rounded score percentage for a submitted round.
func (s *Session) Percentage() (int, error) {
	score, err := s.Score()
	if err != nil {
		return 0, err
	}
	return Percentage(score, s.set.Len()), nil
}

// Results returns the per-question breakdown for a submitted round.
func (s *Session) Results() (*Results, error) {
	if s.phase != PhaseSubmitted {
		return nil, ErrNotSubmitted
	}
	r := BuildResults(s.set, s.answers)
	r.Round = s.round
	return r, nil
}
