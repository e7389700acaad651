package quiz

import (
	"strconv"
	"strings"
)

// ResolveAnswer maps a textual answer onto an option index. It accepts, in
// order of precedence, the option text itself (case and surrounding space
// ignored), a letter label ("B", "b)", "Option C") or a 1-based number.
func ResolveAnswer(options []string, answer string) (int, bool) {
	a := strings.TrimSpace(answer)
	if a == "" {
		return 0, false
	}

	for i, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), a) {
			return i, true
		}
	}

	label := strings.TrimSpace(strings.TrimPrefix(strings.ToLower(a), "option"))
	label = strings.TrimRight(label, ").:")

	if len(label) == 1 && label[0] >= 'a' && label[0] <= 'z' {
		i := int(label[0] - 'a')
		if i < len(options) {
			return i, true
		}
		return 0, false
	}

	if n, err := strconv.Atoi(label); err == nil && n >= 1 && n <= len(options) {
		return n - 1, true
	}
	return 0, false
}

// OptionLabel returns the letter label ("A", "B", ...) for an option index.
func OptionLabel(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}
