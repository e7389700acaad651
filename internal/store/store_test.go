package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/readquiz/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSet(id string) *quiz.QuestionSet {
	return &quiz.QuestionSet{
		ID:        id,
		Title:     "Tides",
		ArticleID: "article-7",
		Questions: []quiz.Question{
			{ID: "q1", Prompt: "What causes tides?", Options: []string{"Wind", "The Moon"}, CorrectIndex: 1, Explanation: "Gravity."},
			{ID: "q2", Prompt: "How many high tides a day?", Options: []string{"One", "Two", "Four"}, CorrectIndex: 1},
		},
	}
}

func TestWithPragmas(t *testing.T) {
	got := withPragmas("/tmp/readquiz.db")
	assert.True(t, strings.HasPrefix(got, "/tmp/readquiz.db?_pragma="), got)
	assert.Equal(t, len(pragmas), strings.Count(got, "_pragma="))

	got = withPragmas("file:x?mode=memory&cache=shared")
	assert.True(t, strings.HasPrefix(got, "file:x?mode=memory&cache=shared&_pragma="), got)
}

func TestPragmasOnEveryConnection(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Hold one connection so the next query needs a second one.
	held, err := s.DB().Conn(ctx)
	require.NoError(t, err)
	defer held.Close()

	var fk int
	require.NoError(t, s.DB().QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
	require.NoError(t, held.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{tableQuizSets, tableQuizQuestions, tableSessionEvents, tableLLMEvents, tableSequence} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestQuizSetSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuizSetRepo()
	ctx := context.Background()

	want := sampleSet("set-a")
	require.NoError(t, repo.Save(ctx, want, "file"))

	got, err := repo.Get(ctx, "set-a")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestQuizSetSaveReplaces(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuizSetRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleSet("set-a"), "file"))

	updated := sampleSet("set-a")
	updated.Title = "Tides, revised"
	updated.Questions = updated.Questions[:1]
	require.NoError(t, repo.Save(ctx, updated, "import"))

	got, err := repo.Get(ctx, "set-a")
	require.NoError(t, err)
	assert.Equal(t, "Tides, revised", got.Title)
	assert.Len(t, got.Questions, 1)
}

func TestQuizSetSaveRejectsInvalid(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuizSetRepo()

	bad := sampleSet("bad")
	bad.Questions[0].Options = []string{"only"}
	err := repo.Save(context.Background(), bad, "file")
	assert.ErrorIs(t, err, quiz.ErrInvalidQuestionSet)

	_, err = repo.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuizSetGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.QuizSetRepo().Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(nope) error = %v, want ErrNotFound", err)
	}
}

func TestQuizSetListAndDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuizSetRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleSet("set-a"), "file"))
	require.NoError(t, repo.Save(ctx, sampleSet("set-b"), "llm"))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, sum := range list {
		assert.Equal(t, 2, sum.Questions)
		assert.Equal(t, "Tides", sum.Title)
	}

	require.NoError(t, repo.Delete(ctx, "set-a"))
	assert.ErrorIs(t, repo.Delete(ctx, "set-a"), ErrNotFound)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "set-b", list[0].ID)
	assert.Equal(t, "llm", list[0].Source)
}

func TestSessionEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []SessionEventData{
		{SessionID: "s1", SetID: "set-a", Round: 1, Action: ActionStart, Total: 3},
		{SessionID: "s1", SetID: "set-a", Round: 1, Action: ActionAnswer, QuestionID: "q1", Option: 2},
		{SessionID: "s1", SetID: "set-a", Round: 1, Action: ActionSubmit, Score: 2, Total: 3},
		{SessionID: "s2", SetID: "set-b", Round: 1, Action: ActionSubmit, Score: 1, Total: 1},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendSessionEvent(ctx, e))
	}

	all, err := repo.QuerySessionEvents(ctx, SessionEventFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	// Newest first.
	assert.Equal(t, "s2", all[0].SessionID)
	assert.Greater(t, all[0].Sequence, all[1].Sequence)

	submits, err := repo.QuerySessionEvents(ctx, SessionEventFilter{Action: ActionSubmit, SetID: "set-a"})
	require.NoError(t, err)
	require.Len(t, submits, 1)
	assert.Equal(t, 2, submits[0].Score)
	assert.Equal(t, 3, submits[0].Total)

	limited, err := repo.QuerySessionEvents(ctx, SessionEventFilter{SessionID: "s1", QueryOpts: QueryOpts{Limit: 2}})
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, ActionSubmit, limited[0].Action)
	assert.Equal(t, "q1", limited[1].QuestionID)
	assert.Equal(t, 2, limited[1].Option)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-gen", ArticleID: "tides-7", Attempt: 2,
		InputTokens: 100, OutputTokens: 40, LatencyMs: 200, Success: true,
		RequestBody: "[user]\nhi", ResponseBody: "{}",
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-gen",
		InputTokens: 50, OutputTokens: 10, LatencyMs: 100, Success: false, ErrorMessage: "rate limited",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.False(t, events[0].Success)
	assert.Equal(t, "rate limited", events[0].ErrorMessage)

	e, err := repo.GetLLMEvent(ctx, events[1].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "[user]\nhi", e.RequestBody)
	assert.Equal(t, "tides-7", e.ArticleID)
	assert.Equal(t, 2, e.Attempt)
	assert.True(t, e.Success)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 1)
	assert.Equal(t, "quiz-gen", byPurpose[0].Purpose)
	assert.Equal(t, 2, byPurpose[0].Calls)
	assert.Equal(t, 150, byPurpose[0].InputTokens)
	assert.Equal(t, 50, byPurpose[0].OutputTokens)
	assert.Equal(t, int64(150), byPurpose[0].AvgLatencyMs)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 1)
	assert.Equal(t, "gpt-4o-mini", byModel[0].Model)
}

func TestEventsShareSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s", SetID: "x", Round: 1, Action: ActionStart}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Success: true}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s", SetID: "x", Round: 1, Action: ActionReset}))

	sess, err := repo.QuerySessionEvents(ctx, SessionEventFilter{SessionID: "s"})
	require.NoError(t, err)
	llmEvents, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)

	require.Len(t, sess, 2)
	require.Len(t, llmEvents, 1)
	assert.Equal(t, int64(3), sess[0].Sequence)
	assert.Equal(t, int64(2), llmEvents[0].Sequence)
	assert.Equal(t, int64(1), sess[1].Sequence)

	after, err := repo.QuerySessionEvents(ctx, SessionEventFilter{SessionID: "s", QueryOpts: QueryOpts{After: 1}})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, ActionReset, after[0].Action)
}
