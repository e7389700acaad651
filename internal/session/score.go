package session

import "github.com/abhisek/readquiz/internal/quiz"

// Result is the outcome for one question in a scored round.
type Result struct {
	Question quiz.Question

	// Chosen is the recorded option index; meaningful only when Answered.
	Chosen   int
	Answered bool

	CorrectIndex int
	IsCorrect    bool
}

// Results is the derived results view of a submitted round.
type Results struct {
	Title      string
	Round      int
	Score      int
	Total      int
	Percentage int
	Items      []Result
}

// Score counts the questions whose recorded answer equals the correct index.
// Unanswered questions count as wrong.
func Score(set *quiz.QuestionSet, answers quiz.AnswerRecord) int {
	score := 0
	for _, q := range set.Questions {
		if chosen, ok := answers[q.ID]; ok && chosen == q.CorrectIndex {
			score++
		}
	}
	return score
}

// Percentage returns round(100*score/total) with halves rounded up.
// Returns 0 when total is not positive.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*score + total) / (2 * total)
}

// Breakdown returns one Result per question in set order. An absent answer
// yields Answered=false and IsCorrect=false.
func Breakdown(set *quiz.QuestionSet, answers quiz.AnswerRecord) []Result {
	items := make([]Result, len(set.Questions))
	for i, q := range set.Questions {
		chosen, ok := answers[q.ID]
		items[i] = Result{
			Question:     q,
			Chosen:       chosen,
			Answered:     ok,
			CorrectIndex: q.CorrectIndex,
			IsCorrect:    ok && chosen == q.CorrectIndex,
		}
	}
	return items
}

// BuildResults derives the full results view from a set and its answers.
func BuildResults(set *quiz.QuestionSet, answers quiz.AnswerRecord) *Results {
	score := Score(set, answers)
	return &Results{
		Title:      set.Title,
		Score:      score,
		Total:      set.Len(),
		Percentage: Percentage(score, set.Len()),
		Items:      Breakdown(set, answers),
	}
}
