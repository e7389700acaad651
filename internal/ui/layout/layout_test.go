package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestBreadcrumb(t *testing.T) {
	tests := []struct {
		name  string
		trail []string
		max   int
		want  string
	}{
		{"empty", nil, 40, ""},
		{"single", []string{"Home"}, 40, "Home"},
		{"fits", []string{"Home", "Bees"}, 40, "Home › Bees"},
		{"drops oldest", []string{"Home", "Pollination basics", "Results"}, 20, "… › Results"},
		{"keeps as many as fit", []string{"Home", "Bees", "Results"}, 18, "… › Bees › Results"},
		{"cuts a long last title", []string{"Home", "A very long article title"}, 10, "A very lon"},
		{"no room", []string{"Home"}, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Breadcrumb(tt.trail, tt.max)
			if got != tt.want {
				t.Errorf("Breadcrumb(%v, %d) = %q, want %q", tt.trail, tt.max, got, tt.want)
			}
			if w := lipgloss.Width(got); w > tt.max {
				t.Errorf("width %d exceeds %d", w, tt.max)
			}
		})
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader([]string{"Home", "Bees"}, "3/5 answered", 100)
	for _, want := range []string{"readquiz", "Home › Bees", "3/5 answered"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q:\n%s", want, h)
		}
	}
	for _, line := range strings.Split(h, "\n") {
		if w := lipgloss.Width(line); w > 100 {
			t.Errorf("header line is %d wide, want at most 100", w)
		}
	}
}

func TestContentHeight(t *testing.T) {
	header := RenderHeader([]string{"Home"}, "", 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)

	got := ContentHeight(header, footer, 24)
	want := 24 - lipgloss.Height(header) - lipgloss.Height(footer)
	if got != want {
		t.Errorf("ContentHeight() = %d, want %d", got, want)
	}
	if got := ContentHeight(header, footer, 2); got != 0 {
		t.Errorf("ContentHeight() on a tiny terminal = %d, want 0", got)
	}

	frame := RenderFrame(header, "question", footer, 80, 24)
	if h := lipgloss.Height(frame); h != 24 {
		t.Errorf("frame height = %d, want 24", h)
	}
}

func TestContentWidth(t *testing.T) {
	tests := []struct{ width, want int }{
		{200, 90},
		{80, 72},
		{24, 20},
	}
	for _, tt := range tests {
		if got := ContentWidth(tt.width); got != tt.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}
