package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/readquiz/internal/ui/components"
	"github.com/abhisek/readquiz/internal/ui/layout"
	"github.com/abhisek/readquiz/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width, height, s.state.AnsweredCount())
	}
	return s.renderQuestion(width)
}

func (s *SessionScreen) renderQuestion(width int) string {
	cw := layout.ContentWidth(width)
	q := s.state.Current()

	var b strings.Builder
	b.WriteString("\n")

	bar := components.NewProgressBar("Progress", s.state.AnsweredCount(), s.state.Len(), cw)
	b.WriteString(center(width, bar.View()))
	b.WriteString("\n\n")

	counter := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Question %d of %d", s.state.CurrentIndex()+1, s.state.Len()))
	b.WriteString(center(width, counter))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(cw).
		Render(q.Prompt)

	card := theme.Card.Width(cw).Render(prompt + "\n\n" + s.choice.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n")

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice)))
	} else if s.state.AllAnswered() {
		b.WriteString("\n")
		b.WriteString(center(width, theme.Hint.Render("All questions answered. Press S to submit.")))
	}

	return b.String()
}

func renderQuitConfirm(width, height, answered int) string {
	msg := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Leave this quiz?")
	sub := theme.Hint.Render(fmt.Sprintf("%d answer(s) will be discarded.", answered))
	box := theme.Card.Render(msg + "\n\n" + sub + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("[Y] Leave   [N] Keep going"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
