package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/readquiz/internal/loader"
	"github.com/abhisek/readquiz/internal/quiz"
	"github.com/abhisek/readquiz/internal/router"
	"github.com/abhisek/readquiz/internal/screen"
	"github.com/abhisek/readquiz/internal/screens/home"
	sessionscreen "github.com/abhisek/readquiz/internal/screens/session"
	sess "github.com/abhisek/readquiz/internal/session"
	"github.com/abhisek/readquiz/internal/store"
	"github.com/abhisek/readquiz/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Sets   store.QuizSetRepo
	Events store.EventRepo

	// Generator enables generation from the home screen. Optional.
	Generator *loader.LLMLoader

	// Set, when non-nil, opens straight into a quiz on this set.
	Set *quiz.QuestionSet
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	home   screen.Screen
	width  int
	height int
}

// newAppModel creates the root model with the home screen at the bottom of
// the stack and, if requested, a quiz on top of it.
func newAppModel(opts Options) (AppModel, error) {
	homeScreen := home.New(opts.Sets, opts.Events, opts.Generator)
	m := AppModel{
		router: router.New(homeScreen),
		home:   homeScreen,
	}
	if opts.Set != nil {
		s, err := sess.New(opts.Set)
		if err != nil {
			return m, err
		}
		m.router.Push(sessionscreen.Start(s, opts.Events))
	}
	return m, nil
}

func (m AppModel) Init() tea.Cmd {
	if m.router.Depth() > 1 {
		return tea.Batch(m.home.Init(), m.router.Active().Init())
	}
	return m.home.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	status := ""
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(m.router.Trail(), status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		if hints := kp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m, err := newAppModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
