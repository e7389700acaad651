package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/readquiz/internal/llm"
	"github.com/abhisek/readquiz/internal/quiz"
	"github.com/abhisek/readquiz/internal/quizgen"
	"github.com/abhisek/readquiz/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:loader_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSet() *quiz.QuestionSet {
	return &quiz.QuestionSet{
		ID:    "set-1",
		Title: "Bees",
		Questions: []quiz.Question{
			{ID: "q1", Prompt: "What do bees make?", Options: []string{"Honey", "Silk"}, CorrectIndex: 0},
			{ID: "q2", Prompt: "How many legs?", Options: []string{"Four", "Six", "Eight"}, CorrectIndex: 1, Explanation: "Insects have six."},
		},
	}
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bees.yaml")
	data, err := quiz.MarshalSet(sampleSet())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	set, err := FileLoader{}.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, sampleSet(), set)

	_, err = FileLoader{}.Load(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreLoader(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.QuizSetRepo().Save(ctx, sampleSet(), "file"))

	l := &StoreLoader{Repo: s.QuizSetRepo()}
	set, err := l.Load(ctx, "set-1")
	require.NoError(t, err)
	assert.Equal(t, "Bees", set.Title)
	assert.Equal(t, 2, set.Len())

	_, err = l.Load(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLLMLoader_GeneratesAndSaves(t *testing.T) {
	s := openTestStore(t)
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"title": "Bees",
		"questions": [
			{"question": "What do bees make?", "options": ["Honey", "Silk"], "answer": "Honey", "explanation": ""}
		]
	}`)})

	path := filepath.Join(t.TempDir(), "bees.txt")
	require.NoError(t, os.WriteFile(path, []byte("# All About Bees\n\nBees make honey from nectar.\n"), 0o644))

	l := &LLMLoader{Generator: quizgen.New(mock, quizgen.DefaultConfig()), Repo: s.QuizSetRepo()}
	set, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Bees", set.Title)
	assert.Equal(t, "bees.txt", set.ArticleID)

	stored, err := s.QuizSetRepo().Get(context.Background(), set.ID)
	require.NoError(t, err)
	assert.Equal(t, set, stored)

	msg := mock.Calls[0].Messages[0].Content
	assert.Contains(t, msg, "Article title: All About Bees")
	assert.Contains(t, msg, "Bees make honey from nectar.")
	assert.NotContains(t, msg, "# All About Bees")
}

func TestReadArticle_TitleFromFileName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volcanoes.txt")
	require.NoError(t, os.WriteFile(path, []byte("Magma rises.\nLava cools."), 0o644))

	a, err := ReadArticle(path)
	require.NoError(t, err)
	assert.Equal(t, "volcanoes", a.Title)
	assert.Equal(t, "Magma rises.\nLava cools.", a.Text)
}

func TestWireID_AcceptsNumbersAndStrings(t *testing.T) {
	var w WireQuiz
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 12, "article_id": "a-3", "title": "T",
		"questions": [{"id": 7, "question": "Q", "options": ["x", "y"], "answer": "y"}]
	}`), &w))
	assert.Equal(t, WireID("12"), w.ID)
	assert.Equal(t, WireID("a-3"), w.ArticleID)
	assert.Equal(t, WireID("7"), w.Questions[0].ID)

	set, err := FromWire(w)
	require.NoError(t, err)
	assert.Equal(t, 1, set.Questions[0].CorrectIndex)
}

func TestFromWire_Errors(t *testing.T) {
	_, err := FromWire(WireQuiz{ID: "1", Questions: []WireQuestion{
		{Question: "Q", Options: []string{"a", "b"}, Answer: "c"},
	}})
	assert.ErrorIs(t, err, quiz.ErrInvalidQuestionSet)

	_, err = FromWire(WireQuiz{ID: "1"})
	assert.ErrorIs(t, err, quiz.ErrInvalidQuestionSet)
}

func TestToWire_RoundTrip(t *testing.T) {
	set, err := FromWire(ToWire(sampleSet()))
	require.NoError(t, err)
	assert.Equal(t, sampleSet(), set)
}

func TestRemoteLoader_Load(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/quiz/5":
			w.Header().Set("Content-Type", "application/json")
			// The original API's shape: integer ids and textual answers.
			fmt.Fprint(w, `{"id": 5, "article_id": 2, "title": "Bees", "questions": [
				{"id": 11, "question": "What do bees make?", "options": ["Honey", "Silk"], "answer": "Honey"},
				{"id": 12, "question": "How many legs?", "options": ["Four", "Six"], "answer": "Six"}
			]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"detail": "Quiz not found"}`)
		}
	}))
	t.Cleanup(server.Close)

	l := NewRemoteLoader(server.URL + "/")
	set, err := l.Load(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, "5", set.ID)
	assert.Equal(t, "2", set.ArticleID)
	assert.Equal(t, "11", set.Questions[0].ID)
	assert.Equal(t, 1, set.Questions[1].CorrectIndex)

	_, err = l.Load(context.Background(), "99")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Quiz not found")
}

func TestRemoteLoader_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	_, err := NewRemoteLoader(server.URL).Load(context.Background(), "1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "500")
}

func TestRemoteLoader_Generate(t *testing.T) {
	var posted ArticleRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/quiz/article-9":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
			fmt.Fprint(w, `{"quiz_id": 42}`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/quiz/42":
			json.NewEncoder(w).Encode(ToWire(&quiz.QuestionSet{
				ID: "42", Title: "Generated",
				Questions: []quiz.Question{{ID: "q1", Prompt: "Q", Options: []string{"a", "b"}, CorrectIndex: 1}},
			}))
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"detail": "Article not found"}`)
		}
	}))
	t.Cleanup(server.Close)

	l := NewRemoteLoader(server.URL)
	set, err := l.Generate(context.Background(), "article-9", &quizgen.Article{Title: "Bees", Text: "Bees make honey."})
	require.NoError(t, err)
	assert.Equal(t, "42", set.ID)
	assert.Equal(t, "Bees make honey.", posted.Text)

	_, err = l.Generate(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewRemoteLoader_EnvFallback(t *testing.T) {
	t.Setenv("READQUIZ_API_URL", "http://quiz.example:9000/")
	assert.Equal(t, "http://quiz.example:9000", NewRemoteLoader("").BaseURL)

	t.Setenv("READQUIZ_API_URL", "")
	assert.Equal(t, DefaultAPIURL, NewRemoteLoader("").BaseURL)
}

func TestLoaderFunc(t *testing.T) {
	var l Loader = LoaderFunc(func(_ context.Context, ref string) (*quiz.QuestionSet, error) {
		if ref == "set-1" {
			return sampleSet(), nil
		}
		return nil, ErrNotFound
	})
	set, err := l.Load(context.Background(), "set-1")
	require.NoError(t, err)
	assert.Equal(t, "Bees", set.Title)
}
