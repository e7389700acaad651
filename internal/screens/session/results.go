package session

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/readquiz/internal/quiz"
	"github.com/abhisek/readquiz/internal/router"
	"github.com/abhisek/readquiz/internal/screen"
	sess "github.com/abhisek/readquiz/internal/session"
	"github.com/abhisek/readquiz/internal/ui/layout"
	"github.com/abhisek/readquiz/internal/ui/theme"
)

// ResultsScreen shows the score and per-question breakdown of a submitted
// session. Retry resets the session and returns to the first question.
type ResultsScreen struct {
	state    *sess.Session
	recorder *Recorder
	results  *sess.Results
	offset   int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.StatusProvider = (*ResultsScreen)(nil)
var _ screen.EscapeHandler = (*ResultsScreen)(nil)

// NewResults creates the results screen for a submitted session.
func NewResults(s *sess.Session, recorder *Recorder, results *sess.Results) *ResultsScreen {
	return &ResultsScreen{
		state:    s,
		recorder: recorder,
		results:  results,
	}
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) Status() string {
	return fmt.Sprintf("%d/%d  %d%%", r.results.Score, r.results.Total, r.results.Percentage)
}

func (r *ResultsScreen) HandlesEscape() bool {
	return true
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		hint(keys.Retry),
		hint(keys.Back),
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return r, nil
	}

	switch {
	case key.Matches(kmsg, keys.Up):
		if r.offset > 0 {
			r.offset--
		}
	case key.Matches(kmsg, keys.Down):
		r.offset++
	case key.Matches(kmsg, keys.Retry):
		r.state.Reset()
		next := New(r.state, r.recorder)
		return r, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case key.Matches(kmsg, keys.Back), kmsg.String() == "enter":
		r.recorder.Close()
		return r, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	lines := strings.Split(r.render(width), "\n")

	// Clamp the scroll offset so the last page stays full.
	maxOffset := len(lines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if r.offset > maxOffset {
		r.offset = maxOffset
	}
	end := r.offset + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[r.offset:end], "\n")
}

func (r *ResultsScreen) render(width int) string {
	res := r.results
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(res.Title))
	b.WriteString("\n\n")

	score := lipgloss.NewStyle().
		Foreground(theme.ScoreColor(res.Percentage)).
		Bold(true).
		Render(fmt.Sprintf("You scored %d out of %d (%d%%)", res.Score, res.Total, res.Percentage))
	b.WriteString(center(width, score))
	b.WriteString("\n")
	b.WriteString(center(width, theme.Hint.Render(theme.Verdict(res.Percentage))))
	b.WriteString("\n")
	if res.Round > 1 {
		b.WriteString(center(width, theme.Hint.Render(fmt.Sprintf("Round %d", res.Round))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range res.Items {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderItem(i, item, cw)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderItem(i int, item sess.Result, width int) string {
	mark := theme.Correct.Render("✓")
	if !item.IsCorrect {
		mark = theme.Incorrect.Render("✗")
	}

	var b strings.Builder
	b.WriteString(mark + " " + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("%d. %s", i+1, item.Question.Prompt)))
	b.WriteString("\n")

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if item.Answered {
		style := theme.Correct
		if !item.IsCorrect {
			style = theme.Incorrect
		}
		b.WriteString(dim.Render("   Your answer: ") + style.Render(optionText(item.Question, item.Chosen)))
	} else {
		b.WriteString(dim.Render("   Your answer: ") + theme.Hint.Render("not answered"))
	}
	b.WriteString("\n")

	if !item.IsCorrect {
		b.WriteString(dim.Render("   Correct answer: ") + theme.Correct.Render(optionText(item.Question, item.CorrectIndex)))
		b.WriteString("\n")
	}
	if item.Question.Explanation != "" {
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.TextDim).Italic(true).
			Render("   " + item.Question.Explanation))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func optionText(q quiz.Question, i int) string {
	if i < 0 || i >= len(q.Options) {
		return "?"
	}
	return quiz.OptionLabel(i) + ") " + q.Options[i]
}
