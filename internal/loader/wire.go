package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/abhisek/readquiz/internal/quiz"
)

// WireQuiz is the JSON shape served by the quiz API (GET /api/quiz/{id}).
// Questions carry the correct option as text in Answer; Correct is an
// optional index that wins when present.
type WireQuiz struct {
	ID        WireID         `json:"id"`
	ArticleID WireID         `json:"article_id,omitempty"`
	Title     string         `json:"title"`
	Questions []WireQuestion `json:"questions"`
}

// WireQuestion is one question in a WireQuiz.
type WireQuestion struct {
	ID          WireID   `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer,omitempty"`
	Correct     *int     `json:"correct,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// WireCreated is the response to POST /api/quiz/{article_id}.
type WireCreated struct {
	QuizID WireID `json:"quiz_id"`
}

// WireError is the error body returned by the quiz API.
type WireError struct {
	Detail string `json:"detail"`
}

// WireID accepts both JSON numbers and strings and always encodes as a string.
type WireID string

func (id *WireID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = WireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = WireID(n.String())
	return nil
}

// ToWire converts a set to its API representation.
func ToWire(set *quiz.QuestionSet) WireQuiz {
	w := WireQuiz{
		ID:        WireID(set.ID),
		ArticleID: WireID(set.ArticleID),
		Title:     set.Title,
		Questions: make([]WireQuestion, len(set.Questions)),
	}
	for i, q := range set.Questions {
		correct := q.CorrectIndex
		w.Questions[i] = WireQuestion{
			ID:          WireID(q.ID),
			Question:    q.Prompt,
			Options:     q.Options,
			Answer:      q.CorrectOption(),
			Correct:     &correct,
			Explanation: q.Explanation,
		}
	}
	return w
}

// FromWire converts and validates an API question set. Missing question ids
// default to q1..qN.
func FromWire(w WireQuiz) (*quiz.QuestionSet, error) {
	set := &quiz.QuestionSet{
		ID:        string(w.ID),
		Title:     w.Title,
		ArticleID: string(w.ArticleID),
		Questions: make([]quiz.Question, 0, len(w.Questions)),
	}
	for i, wq := range w.Questions {
		id := string(wq.ID)
		if id == "" {
			id = "q" + strconv.Itoa(i+1)
		}
		q := quiz.Question{
			ID:          id,
			Prompt:      wq.Question,
			Options:     wq.Options,
			Explanation: wq.Explanation,
		}
		switch {
		case wq.Correct != nil:
			q.CorrectIndex = *wq.Correct
		default:
			idx, ok := quiz.ResolveAnswer(wq.Options, wq.Answer)
			if !ok {
				return nil, fmt.Errorf("%w: question %q answer %q matches no option",
					quiz.ErrInvalidQuestionSet, id, wq.Answer)
			}
			q.CorrectIndex = idx
		}
		set.Questions = append(set.Questions, q)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}
