package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/readquiz/internal/quiz"
	"github.com/abhisek/readquiz/internal/quizgen"
	"github.com/abhisek/readquiz/internal/store"
)

// SourceLLM marks sets produced by generation in the store.
const SourceLLM = "llm"

// LLMLoader generates a question set from an article and saves it.
// Load treats the ref as the path of a plain-text article.
type LLMLoader struct {
	Generator quizgen.Generator

	// Repo receives generated sets. Optional.
	Repo store.QuizSetRepo
}

func (l *LLMLoader) Load(ctx context.Context, path string) (*quiz.QuestionSet, error) {
	article, err := ReadArticle(path)
	if err != nil {
		return nil, err
	}
	return l.Generate(ctx, article)
}

// Generate produces a set for article and persists it when a repo is set.
func (l *LLMLoader) Generate(ctx context.Context, article quizgen.Article) (*quiz.QuestionSet, error) {
	set, err := l.Generator.Generate(ctx, article)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}
	if l.Repo != nil {
		if err := l.Repo.Save(ctx, set, SourceLLM); err != nil {
			return nil, fmt.Errorf("save generated quiz: %w", err)
		}
	}
	return set, nil
}

// ReadArticle reads a plain-text article. A first line starting with "# "
// becomes the title; otherwise the file name is used.
func ReadArticle(path string) (quizgen.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return quizgen.Article{}, fmt.Errorf("read article: %w", err)
	}

	text := strings.TrimSpace(string(data))
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if first, rest, ok := strings.Cut(text, "\n"); ok && strings.HasPrefix(first, "# ") {
		title = strings.TrimSpace(strings.TrimPrefix(first, "# "))
		text = strings.TrimSpace(rest)
	}

	return quizgen.Article{
		ID:    filepath.Base(path),
		Title: title,
		Text:  text,
	}, nil
}
