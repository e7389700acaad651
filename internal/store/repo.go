package store

import (
	"context"
	"time"

	"github.com/abhisek/readquiz/internal/quiz"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// QuizSetSummary is a listing row for a stored question set.
type QuizSetSummary struct {
	ID        string
	Title     string
	ArticleID string
	Source    string
	Questions int
	CreatedAt time.Time
}

// QuizSetRepo stores question sets.
type QuizSetRepo interface {
	// Save inserts set, replacing any stored set with the same id.
	Save(ctx context.Context, set *quiz.QuestionSet, source string) error

	// Get returns the set with id, or ErrNotFound.
	Get(ctx context.Context, id string) (*quiz.QuestionSet, error)

	// List returns all stored sets, newest first.
	List(ctx context.Context) ([]QuizSetSummary, error)

	// Delete removes the set with id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// Session event actions.
const (
	ActionStart    = "start"
	ActionAnswer   = "answer"
	ActionNavigate = "navigate"
	ActionSubmit   = "submit"
	ActionReset    = "reset"
)

// SessionEventData captures one session transition.
type SessionEventData struct {
	SessionID     string
	SetID         string
	Round         int
	Action        string
	QuestionIndex int
	QuestionID    string
	Option        int
	Score         int
	Total         int
}

// SessionEvent is a stored session transition.
type SessionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// SessionEventFilter narrows session event queries. Empty fields match all.
type SessionEventFilter struct {
	SessionID string
	SetID     string
	Action    string
	QueryOpts
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	ArticleID    string
	Attempt      int
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to activity events.
type EventRepo interface {
	// AppendSessionEvent records a session transition.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QuerySessionEvents returns matching events, newest first.
	QuerySessionEvents(ctx context.Context, f SessionEventFilter) ([]SessionEvent, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns the event with id, or nil if none exists.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
