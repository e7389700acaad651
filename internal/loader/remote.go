package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/abhisek/readquiz/internal/quiz"
	"github.com/abhisek/readquiz/internal/quizgen"
)

// DefaultAPIURL is used when READQUIZ_API_URL is unset.
const DefaultAPIURL = "http://localhost:8080"

// maxResponseBytes bounds API response bodies.
const maxResponseBytes = 4 << 20

// RemoteLoader fetches question sets from a quiz API server.
type RemoteLoader struct {
	BaseURL string
	Client  *http.Client
}

// NewRemoteLoader creates a loader for baseURL, falling back to
// READQUIZ_API_URL and then DefaultAPIURL when empty.
func NewRemoteLoader(baseURL string) *RemoteLoader {
	if baseURL == "" {
		baseURL = os.Getenv("READQUIZ_API_URL")
	}
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	return &RemoteLoader{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 2 * time.Minute},
	}
}

func (l *RemoteLoader) endpoint(id string) string {
	return l.BaseURL + "/api/quiz/" + url.PathEscape(id)
}

// Load fetches GET /api/quiz/{id}.
func (l *RemoteLoader) Load(ctx context.Context, id string) (*quiz.QuestionSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint(id), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	var w WireQuiz
	if err := l.do(req, &w); err != nil {
		return nil, fmt.Errorf("fetch quiz %s: %w", id, err)
	}
	return FromWire(w)
}

// Generate asks the server to create a quiz for articleID via
// POST /api/quiz/{article_id} and then fetches it. article may be nil when
// the server already holds the article.
func (l *RemoteLoader) Generate(ctx context.Context, articleID string, article *quizgen.Article) (*quiz.QuestionSet, error) {
	var body io.Reader
	if article != nil {
		payload, err := json.Marshal(ArticleRequest{
			Title:   article.Title,
			Text:    article.Text,
			Summary: article.Summary,
		})
		if err != nil {
			return nil, fmt.Errorf("encode article: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint(articleID), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	var created WireCreated
	if err := l.do(req, &created); err != nil {
		return nil, fmt.Errorf("generate quiz for article %s: %w", articleID, err)
	}
	if created.QuizID == "" {
		return nil, errors.New("generate quiz: response has no quiz_id")
	}
	return l.Load(ctx, string(created.QuizID))
}

// ArticleRequest is the optional body of POST /api/quiz/{article_id}.
type ArticleRequest struct {
	Title   string `json:"title,omitempty"`
	Text    string `json:"text"`
	Summary string `json:"summary,omitempty"`
}

func (l *RemoteLoader) do(req *http.Request, out any) error {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var apiErr WireError
		detail := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Detail != "" {
			detail = apiErr.Detail
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, detail)
		}
		return fmt.Errorf("server returned %s: %s", resp.Status, detail)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
