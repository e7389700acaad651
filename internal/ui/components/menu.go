package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/readquiz/internal/ui/theme"
)

// MenuItem is one row of a Menu. An item with neither Label nor Action is
// a separator and is never selected.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

func (it MenuItem) selectable() bool {
	return !it.Disabled && !it.separator()
}

func (it MenuItem) separator() bool {
	return it.Label == "" && it.Action == nil
}

// Separator returns a blank, unselectable row.
func Separator() MenuItem { return MenuItem{} }

// Menu is a vertical list of actions. The home screen puts every stored
// question set in it, so it renders a scrolling window when rows are
// limited.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first selectable item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.step(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step returns the next selectable index from i in direction dir, or i
// when there is none.
func (m Menu) step(i, dir int) int {
	for j := i + dir; j >= 0 && j < len(m.Items); j += dir {
		if m.Items[j].selectable() {
			return j
		}
	}
	return i
}

// Select moves the selection to i if that item can be selected.
func (m *Menu) Select(i int) bool {
	if i < 0 || i >= len(m.Items) || !m.Items[i].selectable() {
		return false
	}
	m.Selected = i
	return true
}

// Init returns nil (no initial command).
func (m Menu) Init() tea.Cmd {
	return nil
}

// Update moves the selection and runs the selected action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.Selected = m.step(m.Selected, -1)
	case "down", "j":
		m.Selected = m.step(m.Selected, 1)
	case "home", "g":
		m.Selected = m.step(-1, 1)
	case "end", "G":
		m.Selected = m.step(len(m.Items), -1)
	case "enter":
		if m.Selected < 0 || m.Selected >= len(m.Items) {
			return m, nil
		}
		if item := m.Items[m.Selected]; item.selectable() && item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

// View renders every item, one per line.
func (m Menu) View() string {
	return m.ViewRows(0)
}

// ViewRows renders at most rows lines, scrolled so the selection is
// visible. Hidden items are counted on marker lines. rows <= 0 renders
// everything.
func (m Menu) ViewRows(rows int) string {
	start, end := m.window(rows)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	if start > 0 {
		b.WriteString(dim.Render(fmt.Sprintf("    ↑ %d more", start)) + "\n")
	}
	for i := start; i < end; i++ {
		item := m.Items[i]
		if item.separator() {
			b.WriteString("\n")
			continue
		}
		label, style := "    "+item.Label, theme.Unselected
		switch {
		case item.Disabled:
			style = dim
		case i == m.Selected:
			label, style = "  ▸ "+item.Label, theme.Selected
		}
		b.WriteString(style.Render(label))
		if item.Detail != "" {
			b.WriteString("  " + dim.Render(item.Detail))
		}
		b.WriteString("\n")
	}
	if end < len(m.Items) {
		b.WriteString(dim.Render(fmt.Sprintf("    ↓ %d more", len(m.Items)-end)) + "\n")
	}
	return b.String()
}

// window picks the item range shown in rows lines, leaving room for the
// marker lines.
func (m Menu) window(rows int) (start, end int) {
	n := len(m.Items)
	if rows <= 0 || n <= rows {
		return 0, n
	}
	visible := rows - 2
	if visible < 1 {
		visible = 1
	}
	start = m.Selected - visible/2
	if start < 0 {
		start = 0
	}
	if start > n-visible {
		start = n - visible
	}
	return start, start + visible
}
