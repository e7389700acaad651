// Package api serves stored question sets over HTTP and generates new ones
// from posted articles.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/abhisek/readquiz/internal/llm"
	"github.com/abhisek/readquiz/internal/loader"
	"github.com/abhisek/readquiz/internal/quiz"
	"github.com/abhisek/readquiz/internal/quizgen"
	"github.com/abhisek/readquiz/internal/store"
)

// Server exposes the quiz API.
type Server struct {
	cfg       Config
	sets      store.QuizSetRepo
	generator *loader.LLMLoader
	limiter   *rate.Limiter
	metrics   *Metrics
	engine    *gin.Engine
}

// New builds a server. generator may be nil, in which case generation
// requests are answered with 503.
func New(cfg Config, sets store.QuizSetRepo, generator *loader.LLMLoader) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:       cfg,
		sets:      sets,
		generator: generator,
		metrics:   NewMetrics(),
	}
	if cfg.GeneratePerMinute > 0 {
		burst := cfg.GenerateBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.GeneratePerMinute/60), burst)
	}

	r := gin.New()
	r.Use(gin.Recovery(), gin.LoggerWithWriter(os.Stderr), s.metrics.Middleware())

	r.GET("/healthz", s.health)
	r.GET("/metrics", s.metrics.Handler())

	quizzes := r.Group("/api/quiz")
	quizzes.GET("", s.listQuizzes)
	quizzes.GET("/:id", s.getQuiz)
	quizzes.POST("/:id", s.createQuiz)

	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listQuizzes(c *gin.Context) {
	list, err := s.sets.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, loader.WireError{Detail: err.Error()})
		return
	}

	type item struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		ArticleID string    `json:"article_id,omitempty"`
		Questions int       `json:"questions"`
		CreatedAt time.Time `json:"created_at"`
	}
	out := make([]item, 0, len(list))
	for _, q := range list {
		out = append(out, item{ID: q.ID, Title: q.Title, ArticleID: q.ArticleID, Questions: q.Questions, CreatedAt: q.CreatedAt})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getQuiz(c *gin.Context) {
	set, err := s.sets.Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, loader.WireError{Detail: "Quiz not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, loader.WireError{Detail: err.Error()})
		return
	}
	c.JSON(http.StatusOK, loader.ToWire(set))
}

// createQuiz generates a quiz for the article named in the path. The article
// text travels in the body since the server keeps no article store.
func (s *Server) createQuiz(c *gin.Context) {
	if s.generator == nil {
		c.JSON(http.StatusServiceUnavailable, loader.WireError{Detail: "quiz generation is not configured"})
		return
	}
	if s.limiter != nil && !s.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, loader.WireError{Detail: "too many generation requests"})
		return
	}

	var body loader.ArticleRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, loader.WireError{Detail: fmt.Sprintf("invalid body: %v", err)})
		return
	}
	if strings.TrimSpace(body.Text) == "" && strings.TrimSpace(body.Summary) == "" {
		c.JSON(http.StatusNotFound, loader.WireError{Detail: "Article not found"})
		return
	}

	ctx := c.Request.Context()
	if s.cfg.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.GenerateTimeout)
		defer cancel()
	}

	set, err := s.generator.Generate(ctx, quizgen.Article{
		ID:      c.Param("id"),
		Title:   body.Title,
		Text:    body.Text,
		Summary: body.Summary,
	})
	if err != nil {
		status, outcome := generationFailure(err)
		s.metrics.generation(outcome)
		if d := llm.RetryAfter(err); d > 0 {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(d.Seconds()))))
		}
		c.JSON(status, loader.WireError{Detail: err.Error()})
		return
	}

	s.metrics.generation("ok")
	c.JSON(http.StatusOK, loader.WireCreated{QuizID: loader.WireID(set.ID)})
}

// generationFailure maps a failed generation to an HTTP status and a
// metrics outcome label.
func generationFailure(err error) (int, string) {
	var verr *quizgen.ValidationError
	var inv *llm.ErrInvalidResponse
	var maxTok *llm.ErrMaxTokensExceeded
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case llm.Unavailable(err):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.As(err, &verr), errors.As(err, &inv), errors.Is(err, quiz.ErrInvalidQuestionSet):
		return http.StatusUnprocessableEntity, "invalid"
	case errors.As(err, &maxTok):
		return http.StatusUnprocessableEntity, "truncated"
	default:
		return http.StatusBadGateway, "error"
	}
}
