package router

import (
	"reflect"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/readquiz/internal/screen"
)

// fakeScreen counts Init calls and records the last message it saw.
type fakeScreen struct {
	title string
	inits int
	last  tea.Msg
	next  screen.Screen
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.last = msg
	if s.next != nil {
		return s.next, nil
	}
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return "view:" + s.title }
func (s *fakeScreen) Title() string        { return s.title }

type answeredMsg struct{ option int }

func TestNavigation(t *testing.T) {
	tests := []struct {
		name      string
		msgs      func(quiz, results *fakeScreen) []tea.Msg
		wantTrail []string
	}{
		{
			name: "start a quiz",
			msgs: func(quiz, _ *fakeScreen) []tea.Msg {
				return []tea.Msg{PushScreenMsg{Screen: quiz}}
			},
			wantTrail: []string{"Home", "Bees"},
		},
		{
			name: "back to home",
			msgs: func(quiz, _ *fakeScreen) []tea.Msg {
				return []tea.Msg{PushScreenMsg{Screen: quiz}, PopScreenMsg{}}
			},
			wantTrail: []string{"Home"},
		},
		{
			name: "pop never removes home",
			msgs: func(_, _ *fakeScreen) []tea.Msg {
				return []tea.Msg{PopScreenMsg{}, PopScreenMsg{}}
			},
			wantTrail: []string{"Home"},
		},
		{
			name: "results replace the quiz",
			msgs: func(quiz, results *fakeScreen) []tea.Msg {
				return []tea.Msg{PushScreenMsg{Screen: quiz}, ReplaceScreenMsg{Screen: results}}
			},
			wantTrail: []string{"Home", "Results"},
		},
		{
			name: "done unwinds to home",
			msgs: func(quiz, results *fakeScreen) []tea.Msg {
				return []tea.Msg{
					PushScreenMsg{Screen: quiz},
					PushScreenMsg{Screen: results},
					PopToRootMsg{},
				}
			},
			wantTrail: []string{"Home"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := &fakeScreen{title: "Home"}
			quiz := &fakeScreen{title: "Bees"}
			results := &fakeScreen{title: "Results"}
			r := New(home)

			for _, msg := range tt.msgs(quiz, results) {
				r.Update(msg)
			}

			if got := r.Trail(); !reflect.DeepEqual(got, tt.wantTrail) {
				t.Errorf("Trail() = %v, want %v", got, tt.wantTrail)
			}
			if r.Depth() != len(tt.wantTrail) {
				t.Errorf("Depth() = %d, want %d", r.Depth(), len(tt.wantTrail))
			}
			if r.Active().Title() != tt.wantTrail[len(tt.wantTrail)-1] {
				t.Errorf("Active() = %q, want the last trail entry", r.Active().Title())
			}
		})
	}
}

func TestInitRunsOnEveryReveal(t *testing.T) {
	home := &fakeScreen{title: "Home"}
	quiz := &fakeScreen{title: "Bees"}
	r := New(home)

	r.Push(quiz)
	if quiz.inits != 1 {
		t.Errorf("pushed screen Init ran %d times, want 1", quiz.inits)
	}

	// Home reloads the set list when revealed.
	r.Pop()
	if home.inits != 1 {
		t.Errorf("revealed screen Init ran %d times, want 1", home.inits)
	}

	r.Push(quiz)
	r.PopToRoot()
	if home.inits != 2 {
		t.Errorf("root Init ran %d times after PopToRoot, want 2", home.inits)
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	home := &fakeScreen{title: "Home"}
	quiz := &fakeScreen{title: "Bees"}
	r := New(home)
	r.Push(quiz)

	r.Update(answeredMsg{option: 2})

	if got, ok := quiz.last.(answeredMsg); !ok || got.option != 2 {
		t.Errorf("active screen got %v, want answeredMsg{2}", quiz.last)
	}
	if home.last != nil {
		t.Errorf("covered screen got %v, want nothing", home.last)
	}
	if got := r.View(80, 24); got != "view:Bees" {
		t.Errorf("View() = %q, want the active screen", got)
	}
}

func TestUpdateKeepsReturnedScreen(t *testing.T) {
	results := &fakeScreen{title: "Results"}
	quiz := &fakeScreen{title: "Bees", next: results}
	r := New(&fakeScreen{title: "Home"})
	r.Push(quiz)

	r.Update(answeredMsg{})

	if r.Active() != results {
		t.Errorf("Active() = %q, want the screen returned by Update", r.Active().Title())
	}
	if r.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", r.Depth())
	}
}

func TestTrailSkipsUntitled(t *testing.T) {
	r := New(&fakeScreen{title: "Home"})
	r.Push(&fakeScreen{})
	r.Push(&fakeScreen{title: "History"})

	want := []string{"Home", "History"}
	if got := r.Trail(); !reflect.DeepEqual(got, want) {
		t.Errorf("Trail() = %v, want %v", got, want)
	}
}
