// Package theme holds the colors and styles shared by every screen.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#6366F1") // indigo
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#F59E0B") // amber
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// Option and answer styles. Chosen marks the picked option while a quiz
// is open; Correct and Incorrect are used once it is submitted.
var (
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Chosen     = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	Correct    = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect  = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

// Lower bounds of the good and fair score bands, in percent.
const (
	GoodScore = 80
	FairScore = 50
)

type band struct {
	color   color.Color
	verdict string
}

func scoreBand(pct int) band {
	switch {
	case pct >= GoodScore:
		return band{Success, "Well read."}
	case pct >= FairScore:
		return band{Accent, "Worth another pass."}
	default:
		return band{Error, "Reread the article and try again."}
	}
}

// ScoreColor is the color of a percentage's band.
func ScoreColor(pct int) color.Color { return scoreBand(pct).color }

// Verdict is a one-line comment on a percentage.
func Verdict(pct int) string { return scoreBand(pct).verdict }
