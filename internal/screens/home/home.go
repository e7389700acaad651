package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/readquiz/internal/loader"
	"github.com/abhisek/readquiz/internal/router"
	"github.com/abhisek/readquiz/internal/screen"
	"github.com/abhisek/readquiz/internal/screens/generate"
	"github.com/abhisek/readquiz/internal/screens/history"
	sessionscreen "github.com/abhisek/readquiz/internal/screens/session"
	sess "github.com/abhisek/readquiz/internal/session"
	"github.com/abhisek/readquiz/internal/store"
	"github.com/abhisek/readquiz/internal/ui/components"
	"github.com/abhisek/readquiz/internal/ui/layout"
	"github.com/abhisek/readquiz/internal/ui/theme"
)

type setsLoadedMsg struct {
	Sets []store.QuizSetSummary
	Err  error
}

// HomeScreen lists stored question sets and the app's other entry points.
type HomeScreen struct {
	sets      store.QuizSetRepo
	events    store.EventRepo
	generator *loader.LLMLoader

	menu   components.Menu
	count  int
	loaded bool
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. generator may be nil when no LLM is configured.
func New(sets store.QuizSetRepo, events store.EventRepo, generator *loader.LLMLoader) *HomeScreen {
	h := &HomeScreen{
		sets:      sets,
		events:    events,
		generator: generator,
	}
	h.menu = components.NewMenu(h.menuItems(nil))
	return h
}

// Init reloads the set list; it runs again whenever the screen is revealed.
func (h *HomeScreen) Init() tea.Cmd {
	return func() tea.Msg {
		list, err := h.sets.List(context.Background())
		return setsLoadedMsg{Sets: list, Err: err}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case setsLoadedMsg:
		h.loaded = true
		h.errMsg = ""
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
		}
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.menuItems(msg.Sets))
		h.menu.Select(selected)
		h.count = len(msg.Sets)
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) menuItems(sets []store.QuizSetSummary) []components.MenuItem {
	items := make([]components.MenuItem, 0, len(sets)+4)
	for _, s := range sets {
		id := s.ID
		items = append(items, components.MenuItem{
			Label:  s.Title,
			Detail: fmt.Sprintf("%d questions", s.Questions),
			Action: func() tea.Cmd { return h.startQuiz(id) },
		})
	}
	if len(sets) > 0 {
		items = append(items, components.Separator())
	}

	items = append(items,
		components.MenuItem{
			Label:    "Generate from article…",
			Disabled: h.generator == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: generate.New(h.generator, h.events)}
				}
			},
		},
		components.MenuItem{
			Label: "History",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(h.events, h.sets)}
				}
			},
		},
		components.MenuItem{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)
	return items
}

// startQuiz loads a stored set and opens a session screen for it.
func (h *HomeScreen) startQuiz(id string) tea.Cmd {
	set, err := h.sets.Get(context.Background(), id)
	if err != nil {
		h.errMsg = err.Error()
		return nil
	}
	s, err := sess.New(set)
	if err != nil {
		h.errMsg = err.Error()
		return nil
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: sessionscreen.Start(s, h.events)}
	}
}

func (h *HomeScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	if cw > 60 {
		cw = 60
	}

	var sections []string

	title := "R E A D Q U I Z"
	if layout.IsCompactWidth(width) {
		title = "readquiz"
	}
	sections = append(sections, theme.Title.Render(title))

	switch {
	case !h.loaded:
		sections = append(sections, theme.Hint.Render("Loading quizzes…"))
	case h.count == 0:
		sections = append(sections, theme.Hint.Render("No quizzes yet. Generate one from an article or run `readquiz sets import`."))
	default:
		sections = append(sections, theme.Subtitle.Render(fmt.Sprintf("%d quiz(zes) available", h.count)))
	}

	// Title, subtitle, card border and error line take the other rows.
	rows := height - 10
	if rows < 3 {
		rows = 3
	}
	sections = append(sections, theme.Card.Width(cw).Render(strings.TrimRight(h.menu.ViewRows(rows), "\n")))

	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+h.errMsg))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
