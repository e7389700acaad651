package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidQuestionSet is returned when a question set violates its
// structural invariants (empty, duplicate ids, bad options or correct index).
var ErrInvalidQuestionSet = errors.New("invalid question set")

// MinOptions is the smallest number of options a question may carry.
const MinOptions = 2

// Question is a single multiple-choice question. Immutable once loaded.
type Question struct {
	// ID is unique within the owning QuestionSet.
	ID string `json:"id"`

	// Prompt is the question text.
	Prompt string `json:"prompt"`

	// Options are the ordered choices, at least MinOptions long.
	Options []string `json:"options"`

	// CorrectIndex is the 0-based index into Options.
	CorrectIndex int `json:"correct_index"`

	// Explanation is an optional note shown with results.
	Explanation string `json:"explanation,omitempty"`
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// ValidOption reports whether i indexes one of the question's options.
func (q Question) ValidOption(i int) bool {
	return i >= 0 && i < len(q.Options)
}

// QuestionSet is the ordered, immutable collection of questions for one assessment.
type QuestionSet struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	ArticleID string     `json:"article_id,omitempty"`
	Questions []Question `json:"questions"`
}

// Len returns the number of questions in the set.
func (s *QuestionSet) Len() int {
	return len(s.Questions)
}

// Validate checks the set invariants. All failures wrap ErrInvalidQuestionSet.
func (s *QuestionSet) Validate() error {
	if s == nil || len(s.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidQuestionSet)
	}

	seen := make(map[string]bool, len(s.Questions))
	for i, q := range s.Questions {
		if strings.TrimSpace(q.ID) == "" {
			return fmt.Errorf("%w: question %d has an empty id", ErrInvalidQuestionSet, i+1)
		}
		if seen[q.ID] {
			return fmt.Errorf("%w: duplicate question id %q", ErrInvalidQuestionSet, q.ID)
		}
		seen[q.ID] = true

		if len(q.Options) < MinOptions {
			return fmt.Errorf("%w: question %q has %d options, need at least %d",
				ErrInvalidQuestionSet, q.ID, len(q.Options), MinOptions)
		}
		if !q.ValidOption(q.CorrectIndex) {
			return fmt.Errorf("%w: question %q correct index %d out of range [0,%d)",
				ErrInvalidQuestionSet, q.ID, q.CorrectIndex, len(q.Options))
		}
	}
	return nil
}

// Clone returns a deep copy so the caller can hand out the set without
// exposing its option slices to mutation.
func (s *QuestionSet) Clone() *QuestionSet {
	if s == nil {
		return nil
	}
	out := *s
	out.Questions = make([]Question, len(s.Questions))
	for i, q := range s.Questions {
		q.Options = append([]string(nil), q.Options...)
		out.Questions[i] = q
	}
	return &out
}

// AnswerRecord maps a question id to the chosen option index.
type AnswerRecord map[string]int

// Clone returns a copy of the record.
func (a AnswerRecord) Clone() AnswerRecord {
	out := make(AnswerRecord, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
