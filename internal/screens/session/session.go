package session

import (
	"context"
	"errors"
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/readquiz/internal/router"
	"github.com/abhisek/readquiz/internal/screen"
	sess "github.com/abhisek/readquiz/internal/session"
	"github.com/abhisek/readquiz/internal/store"
	"github.com/abhisek/readquiz/internal/ui/components"
	"github.com/abhisek/readquiz/internal/ui/layout"
)

// SessionScreen drives one quiz session while it is being answered. On
// submit it hands over to the ResultsScreen.
type SessionScreen struct {
	state       *sess.Session
	recorder    *Recorder
	choice      components.MultiChoice
	confirmQuit bool
	notice      string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)
var _ screen.EscapeHandler = (*SessionScreen)(nil)

// Start begins recording s into events (which may be nil) and returns the
// screen for it.
func Start(s *sess.Session, events store.EventRepo) *SessionScreen {
	return New(s, NewRecorder(context.Background(), events, s))
}

// New creates a screen for a session that is already being recorded.
func New(s *sess.Session, recorder *Recorder) *SessionScreen {
	scr := &SessionScreen{
		state:    s,
		recorder: recorder,
	}
	scr.syncChoice()
	return scr
}

func (s *SessionScreen) Init() tea.Cmd {
	return nil
}

func (s *SessionScreen) Title() string {
	return s.state.Title()
}

func (s *SessionScreen) Status() string {
	status := fmt.Sprintf("%d/%d answered", s.state.AnsweredCount(), s.state.Len())
	if s.state.Round() > 1 {
		status = fmt.Sprintf("Round %d  %s", s.state.Round(), status)
	}
	return status
}

func (s *SessionScreen) HandlesEscape() bool {
	return true
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return hints(keys.Yes, keys.No)
	}
	h := hints(keys.Choose)
	if !s.state.IsFirst() {
		h = append(h, hint(keys.Prev))
	}
	if s.state.CanAdvance() {
		h = append(h, hint(keys.Next))
	}
	if s.state.AllAnswered() {
		h = append(h, hint(keys.Submit))
	}
	return append(h, hint(keys.Back))
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	if s.confirmQuit {
		return s.handleQuitConfirm(kmsg)
	}
	return s.handleKey(kmsg)
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	s.notice = ""

	if i, ok := digit(msg.String()); ok {
		s.answer(i)
		return s, nil
	}

	switch {
	case key.Matches(msg, keys.Up, keys.Down):
		s.choice, _ = s.choice.Update(msg)

	case key.Matches(msg, keys.Choose):
		s.answer(s.choice.Cursor)

	case key.Matches(msg, keys.Next):
		if !s.state.CanAdvance() {
			if !s.state.IsLast() {
				s.notice = "Answer this question to continue."
			}
			return s, nil
		}
		s.state.Next()
		s.syncChoice()

	case key.Matches(msg, keys.Prev):
		s.state.Previous()
		s.syncChoice()

	case key.Matches(msg, keys.Submit):
		return s.submit()

	case key.Matches(msg, keys.Back):
		if s.state.AnsweredCount() > 0 {
			s.confirmQuit = true
			return s, nil
		}
		return s.leave()
	}
	return s, nil
}

func (s *SessionScreen) handleQuitConfirm(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Yes):
		s.confirmQuit = false
		return s.leave()
	case key.Matches(msg, keys.No):
		s.confirmQuit = false
	}
	return s, nil
}

func (s *SessionScreen) answer(option int) {
	if err := s.state.AnswerCurrent(option); err != nil {
		if errors.Is(err, sess.ErrInvalidOption) {
			s.notice = fmt.Sprintf("Choose an option between 1 and %d.", len(s.state.Current().Options))
		} else {
			s.notice = err.Error()
		}
		return
	}
	s.syncChoice()
}

func (s *SessionScreen) submit() (screen.Screen, tea.Cmd) {
	err := s.state.Submit()
	var incomplete *sess.IncompleteError
	switch {
	case errors.As(err, &incomplete):
		s.notice = fmt.Sprintf("%d question(s) still unanswered.", len(incomplete.Missing))
		return s, nil
	case err != nil:
		s.notice = err.Error()
		return s, nil
	}

	results, err := s.state.Results()
	if err != nil {
		s.notice = err.Error()
		return s, nil
	}
	next := NewResults(s.state, s.recorder, results)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *SessionScreen) leave() (screen.Screen, tea.Cmd) {
	s.recorder.Close()
	return s, func() tea.Msg { return router.PopScreenMsg{} }
}

// syncChoice rebuilds the option selector for the current question.
func (s *SessionScreen) syncChoice() {
	q := s.state.Current()
	chosen := -1
	if c, ok := s.state.Chosen(q.ID); ok {
		chosen = c
	}
	s.choice = components.NewMultiChoice(q.Options, chosen)
}

func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}

func hints(bs ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bs))
	for _, b := range bs {
		out = append(out, hint(b))
	}
	return out
}
