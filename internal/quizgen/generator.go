// Package quizgen generates multiple-choice question sets from article text
// with an LLM, validating the output before it becomes a quiz.QuestionSet.
package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/readquiz/internal/llm"
	"github.com/abhisek/readquiz/internal/quiz"
)

// Purpose labels generation requests in LLM event logs.
const Purpose = "quiz-gen"

// ErrEmptyArticle is returned when the article has neither text nor summary.
var ErrEmptyArticle = errors.New("article has no text")

// Generator produces question sets from articles.
type Generator interface {
	// Generate returns a validated question set for the article.
	Generate(ctx context.Context, article Article) (*quiz.QuestionSet, error)
}

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	newID    func() string
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg, newID: uuid.NewString}
}

// Generate asks the LLM for a draft, runs the validator chain and converts
// the draft to a question set. A retryable validation failure triggers a new
// request carrying the failure message, up to Config.MaxAttempts requests.
func (g *LLMGenerator) Generate(ctx context.Context, article Article) (*quiz.QuestionSet, error) {
	if strings.TrimSpace(article.Text) == "" && strings.TrimSpace(article.Summary) == "" {
		return nil, ErrEmptyArticle
	}

	attempts := g.config.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var (
		feedback string
		lastErr  error
	)
	for attempt := 0; attempt < attempts; attempt++ {
		callCtx := llm.WithCall(ctx, llm.CallInfo{Purpose: Purpose, ArticleID: article.ID, Attempt: attempt + 1})
		draft, err := g.requestDraft(callCtx, article, feedback)
		if err != nil {
			return nil, err
		}

		verr := g.validate(draft)
		if verr == nil {
			return g.buildSet(article, draft)
		}
		lastErr = verr
		if !verr.Retryable {
			break
		}
		feedback = verr.Message
	}
	return nil, lastErr
}

func (g *LLMGenerator) requestDraft(ctx context.Context, article Article, feedback string) (*Draft, error) {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(article, g.config, feedback)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal(resp.Content, &draft); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	return &draft, nil
}

func (g *LLMGenerator) validate(d *Draft) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(d, g.config); verr != nil {
			return verr
		}
	}
	return nil
}

// buildSet converts a validated draft. Question ids are q1..qN in order.
func (g *LLMGenerator) buildSet(article Article, d *Draft) (*quiz.QuestionSet, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = article.Title
	}

	set := &quiz.QuestionSet{
		ID:        g.newID(),
		Title:     title,
		ArticleID: article.ID,
		Questions: make([]quiz.Question, 0, len(d.Questions)),
	}
	for i, dq := range d.Questions {
		options := make([]string, len(dq.Options))
		for j, opt := range dq.Options {
			options[j] = strings.TrimSpace(opt)
		}
		correct, ok := quiz.ResolveAnswer(options, dq.Answer)
		if !ok {
			return nil, fmt.Errorf("%w: question %d answer %q matches no option",
				quiz.ErrInvalidQuestionSet, i+1, dq.Answer)
		}
		set.Questions = append(set.Questions, quiz.Question{
			ID:           fmt.Sprintf("q%d", i+1),
			Prompt:       strings.TrimSpace(dq.Question),
			Options:      options,
			CorrectIndex: correct,
			Explanation:  strings.TrimSpace(dq.Explanation),
		})
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}
