package generate

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/readquiz/internal/loader"
	"github.com/abhisek/readquiz/internal/quiz"
	"github.com/abhisek/readquiz/internal/router"
	"github.com/abhisek/readquiz/internal/screen"
	sessionscreen "github.com/abhisek/readquiz/internal/screens/session"
	sess "github.com/abhisek/readquiz/internal/session"
	"github.com/abhisek/readquiz/internal/store"
	"github.com/abhisek/readquiz/internal/ui/components"
	"github.com/abhisek/readquiz/internal/ui/layout"
	"github.com/abhisek/readquiz/internal/ui/theme"
)

type generatedMsg struct {
	Set *quiz.QuestionSet
	Err error
}

// GenerateScreen asks for an article path, generates a quiz from it and
// starts a session on the result.
type GenerateScreen struct {
	generator *loader.LLMLoader
	events    store.EventRepo
	input     components.TextInput
	spinner   spinner.Model
	busy      bool
	path      string
}

var _ screen.Screen = (*GenerateScreen)(nil)
var _ screen.KeyHintProvider = (*GenerateScreen)(nil)

// New creates a GenerateScreen.
func New(generator *loader.LLMLoader, events store.EventRepo) *GenerateScreen {
	return &GenerateScreen{
		generator: generator,
		events:    events,
		input:     components.NewTextInput("path/to/article.txt", 256),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (g *GenerateScreen) Init() tea.Cmd {
	return g.input.Init()
}

func (g *GenerateScreen) Title() string {
	return "Generate Quiz"
}

func (g *GenerateScreen) KeyHints() []layout.KeyHint {
	if g.busy {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (g *GenerateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		g.busy = false
		if msg.Err != nil {
			g.input.SetError(msg.Err.Error())
			return g, nil
		}
		s, err := sess.New(msg.Set)
		if err != nil {
			g.input.SetError(err.Error())
			return g, nil
		}
		next := sessionscreen.Start(s, g.events)
		return g, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case spinner.TickMsg:
		if !g.busy {
			return g, nil
		}
		var cmd tea.Cmd
		g.spinner, cmd = g.spinner.Update(msg)
		return g, cmd

	case tea.KeyPressMsg:
		if g.busy {
			return g, nil
		}
		if msg.String() == "enter" {
			return g.start()
		}
	}

	if g.busy {
		return g, nil
	}
	var cmd tea.Cmd
	g.input, cmd = g.input.Update(msg)
	return g, cmd
}

func (g *GenerateScreen) start() (screen.Screen, tea.Cmd) {
	path := g.input.Value()
	if path == "" {
		g.input.SetError("enter the path of a plain-text article")
		return g, nil
	}
	if g.generator == nil {
		g.input.SetError("no LLM provider configured")
		return g, nil
	}

	g.busy = true
	g.path = path
	gen := g.generator
	return g, tea.Batch(
		g.spinner.Tick,
		func() tea.Msg {
			set, err := gen.Load(context.Background(), path)
			return generatedMsg{Set: set, Err: err}
		},
	)
}

func (g *GenerateScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Generate a quiz from an article"))
	b.WriteString("\n\n")

	if g.busy {
		b.WriteString(g.spinner.View() + " " +
			lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("Generating questions from %s…", g.path)))
	} else {
		b.WriteString(theme.Hint.Render("Plain text; a first line starting with \"# \" becomes the title."))
		b.WriteString("\n\n")
		b.WriteString(g.input.View())
	}

	box := theme.Card.Width(cw).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
