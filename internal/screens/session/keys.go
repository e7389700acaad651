package session

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Retry  key.Binding
	Back   key.Binding
	Yes    key.Binding
	No     key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "Up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "Down")),
	Choose: key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter/1-9", "Answer")),
	Next:   key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→", "Next")),
	Prev:   key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←", "Previous")),
	Submit: key.NewBinding(key.WithKeys("s"), key.WithHelp("S", "Submit")),
	Retry:  key.NewBinding(key.WithKeys("r"), key.WithHelp("R", "Retry")),
	Back:   key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("Esc", "Back")),
	Yes:    key.NewBinding(key.WithKeys("y"), key.WithHelp("Y", "Leave quiz")),
	No:     key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("N", "Keep going")),
}

// digit returns the zero-based option index for keys "1".."9".
func digit(s string) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}
