package quizgen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const systemPrompt = `You are a quiz generator creating multiple-choice reading comprehension questions.

Rules:
- Every question must be answerable from the provided text alone.
- Each question has the requested number of options, exactly one of which is correct.
- Distractors should be plausible to someone who skimmed the text, never absurd.
- The answer field must repeat the correct option text exactly.
- Do not number or letter the options; the reader sees labels added later.
- Keep explanations short and point to what the text says.
- Do not ask two questions about the same fact.
- Return ONLY valid JSON.`

// sourceText returns the summary when present, otherwise the article text
// cut to at most max characters (max <= 0 means no limit).
func sourceText(a Article, max int) string {
	if s := strings.TrimSpace(a.Summary); s != "" {
		return s
	}
	text := strings.TrimSpace(a.Text)
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max])
}

// buildUserMessage constructs the user message from the article and Config.
func buildUserMessage(a Article, cfg Config, feedback string) string {
	var b strings.Builder

	if a.Title != "" {
		fmt.Fprintf(&b, "Article title: %s\n", a.Title)
	}
	fmt.Fprintf(&b, "Questions: %d\n", cfg.NumQuestions)
	fmt.Fprintf(&b, "Options per question: %d\n", cfg.NumOptions)

	label := "Article"
	if strings.TrimSpace(a.Summary) != "" {
		label = "Summary"
	}
	fmt.Fprintf(&b, "\n%s:\n%s\n", label, sourceText(a, cfg.MaxArticleChars))

	if feedback != "" {
		b.WriteString("\nThe previous attempt was rejected: ")
		b.WriteString(feedback)
		b.WriteString("\n")
	}

	return b.String()
}
