package quizgen

import (
	"strings"
	"testing"
)

func TestSourceText_PrefersSummary(t *testing.T) {
	a := Article{Text: "long text", Summary: "  short summary "}
	if got := sourceText(a, 1200); got != "short summary" {
		t.Errorf("sourceText = %q, want summary", got)
	}
}

func TestSourceText_TruncatesText(t *testing.T) {
	a := Article{Text: strings.Repeat("é", 20)}
	got := sourceText(a, 5)
	if got != strings.Repeat("é", 5) {
		t.Errorf("sourceText = %q, want 5 runes", got)
	}
	if full := sourceText(a, 0); full != a.Text {
		t.Errorf("max 0 should not truncate")
	}
}

func TestBuildUserMessage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumQuestions = 3

	msg := buildUserMessage(Article{Title: "Volcanoes", Summary: "Magma rises."}, cfg, "")
	for _, want := range []string{"Article title: Volcanoes", "Questions: 3", "Summary:\nMagma rises."} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "rejected") {
		t.Error("no feedback expected on first attempt")
	}

	retry := buildUserMessage(Article{Text: "Lava cools."}, cfg, "question 2 is empty")
	if !strings.Contains(retry, "Article:\nLava cools.") {
		t.Errorf("expected article text label:\n%s", retry)
	}
	if !strings.Contains(retry, "rejected: question 2 is empty") {
		t.Errorf("expected feedback:\n%s", retry)
	}
}
