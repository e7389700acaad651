package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/readquiz/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20

	CompactWidthThreshold = 100
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentWidth returns the width used for centered screen content.
func ContentWidth(width int) int {
	cw := width - 8
	if cw > 90 {
		cw = 90
	}
	if cw < 20 {
		cw = 20
	}
	return cw
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// crumbSep separates screen titles in the header trail.
const crumbSep = " › "

// Breadcrumb joins trail into one line no wider than max cells. When the
// trail is too long the oldest titles are replaced by an ellipsis; the
// last title is always kept, cut if it alone is too wide.
func Breadcrumb(trail []string, max int) string {
	if len(trail) == 0 || max <= 0 {
		return ""
	}
	line := strings.Join(trail, crumbSep)
	for drop := 1; lipgloss.Width(line) > max && drop < len(trail); drop++ {
		line = "…" + crumbSep + strings.Join(trail[drop:], crumbSep)
	}
	if lipgloss.Width(line) <= max {
		return line
	}
	last := []rune(trail[len(trail)-1])
	if len(last) > max {
		last = last[:max]
	}
	return string(last)
}

// RenderHeader renders the header bar: the app name, the trail of open
// screens, and status on the right (e.g. the answered count of a quiz).
func RenderHeader(trail []string, status string, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  readquiz")
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	// Two cells of border and two of padding.
	inner := width - 4
	if inner < 0 {
		inner = 0
	}
	room := inner - lipgloss.Width(name) - lipgloss.Width(right) - 4
	crumbs := lipgloss.NewStyle().Foreground(theme.Text).Render(Breadcrumb(trail, room))

	gap := inner - lipgloss.Width(name) - lipgloss.Width(crumbs) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	content := name + "  " + crumbs + strings.Repeat(" ", gap) + right

	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFooter renders the footer with key hints.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
			" " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		parts = append(parts, part)
	}

	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render("  " + strings.Join(parts, "   "))
}

// ContentHeight is the number of rows left between header and footer.
func ContentHeight(header, footer string, height int) int {
	h := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if h < 0 {
		return 0
	}
	return h
}

// RenderFrame stacks header, content and footer, padding content to fill
// the rows between them.
func RenderFrame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(ContentHeight(header, footer, height)).
		Render(content)
	return header + "\n" + body + "\n" + footer
}

// Centered renders a single dim message in the middle of the content area.
func Centered(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n" + msg)
}
