package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/readquiz/internal/router"
	"github.com/abhisek/readquiz/internal/screen"
	sess "github.com/abhisek/readquiz/internal/session"
	"github.com/abhisek/readquiz/internal/store"
	"github.com/abhisek/readquiz/internal/ui/layout"
	"github.com/abhisek/readquiz/internal/ui/theme"
)

// maxRows bounds how many submitted rounds are loaded.
const maxRows = 50

type historyLoadedMsg struct {
	Rounds []store.SessionEvent
	Titles map[string]string
	Err    error
}

// HistoryScreen lists submitted quiz rounds, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	setRepo   store.QuizSetRepo
	rounds    []store.SessionEvent
	titles    map[string]string
	selected  int
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. Rounds are labelled with the set title
// when the set is still stored.
func New(eventRepo store.EventRepo, setRepo store.QuizSetRepo) *HistoryScreen {
	return &HistoryScreen{eventRepo: eventRepo, setRepo: setRepo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		rounds, err := s.eventRepo.QuerySessionEvents(ctx, store.SessionEventFilter{
			Action:    store.ActionSubmit,
			QueryOpts: store.QueryOpts{Limit: maxRows},
		})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		titles := make(map[string]string)
		if s.setRepo != nil {
			sets, err := s.setRepo.List(ctx)
			if err != nil {
				return historyLoadedMsg{Err: err}
			}
			for _, set := range sets {
				titles[set.ID] = set.Title
			}
		}
		return historyLoadedMsg{Rounds: rounds, Titles: titles}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.rounds = msg.Rounds
			s.titles = msg.Titles
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.rounds)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return layout.Centered(width, "Loading history...")
	}
	if len(s.rounds) == 0 {
		return layout.Centered(width, "No quizzes submitted yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Keep the selected row visible.
	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}

	for i := start; i < len(s.rounds) && i < start+visible; i++ {
		r := s.rounds[i]
		pct := sess.Percentage(r.Score, r.Total)

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-24s  round %d  %d/%d",
			prefix, r.Timestamp.Format("Jan 02, 2006 15:04"), truncate(s.label(r.SetID), 24), r.Round, r.Score, r.Total)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		pctStr := lipgloss.NewStyle().Foreground(theme.ScoreColor(pct)).Render(fmt.Sprintf("%4d%%", pct))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)+"  "+pctStr))
		b.WriteString("\n")
	}

	return b.String()
}

// label names a set by its title, falling back to the id of a deleted set.
func (s *HistoryScreen) label(setID string) string {
	if title, ok := s.titles[setID]; ok && title != "" {
		return title
	}
	return setID
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
