package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/readquiz/internal/quiz"
)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// quizSetRepo implements QuizSetRepo. A set is one quiz_sets row plus one
// quiz_questions row per question, keyed by position.
type quizSetRepo struct {
	drv *entsql.Driver
}

func (r *quizSetRepo) Save(ctx context.Context, set *quiz.QuestionSet, source string) (err error) {
	if err := set.Validate(); err != nil {
		return err
	}

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	b := builder()

	// Questions first; foreign_keys is a per-connection pragma so the
	// cascade cannot be relied on.
	q, args := b.Delete(tableQuizQuestions).Where(entsql.EQ("set_id", set.ID)).Query()
	if err = tx.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("delete old questions: %w", err)
	}
	q, args = b.Delete(tableQuizSets).Where(entsql.EQ("id", set.ID)).Query()
	if err = tx.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("delete old set: %w", err)
	}

	q, args = b.Insert(tableQuizSets).
		Columns("id", "title", "article_id", "source", "created_at").
		Values(set.ID, set.Title, set.ArticleID, source, time.Now().UnixMilli()).
		Query()
	if err = tx.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("insert set: %w", err)
	}

	ins := b.Insert(tableQuizQuestions).
		Columns("set_id", "position", "question_id", "prompt", "options", "correct_index", "explanation")
	for i, qq := range set.Questions {
		opts, mErr := json.Marshal(qq.Options)
		if mErr != nil {
			err = fmt.Errorf("encode options for %q: %w", qq.ID, mErr)
			return err
		}
		ins.Values(set.ID, i, qq.ID, qq.Prompt, string(opts), qq.CorrectIndex, qq.Explanation)
	}
	q, args = ins.Query()
	if err = tx.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("insert questions: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *quizSetRepo) Get(ctx context.Context, id string) (*quiz.QuestionSet, error) {
	b := builder()

	q, args := b.Select("id", "title", "article_id").
		From(b.Table(tableQuizSets)).
		Where(entsql.EQ("id", id)).
		Query()
	set, err := r.scanSet(ctx, q, args)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, fmt.Errorf("quiz set %q: %w", id, ErrNotFound)
	}

	q, args = b.Select("question_id", "prompt", "options", "correct_index", "explanation").
		From(b.Table(tableQuizQuestions)).
		Where(entsql.EQ("set_id", id)).
		OrderBy("position").
		Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, q, args, rows); err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			qq   quiz.Question
			opts string
		)
		if err := rows.Scan(&qq.ID, &qq.Prompt, &opts, &qq.CorrectIndex, &qq.Explanation); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(opts), &qq.Options); err != nil {
			return nil, fmt.Errorf("decode options for %q: %w", qq.ID, err)
		}
		set.Questions = append(set.Questions, qq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return set, nil
}

func (r *quizSetRepo) scanSet(ctx context.Context, q string, args []any) (*quiz.QuestionSet, error) {
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, q, args, rows); err != nil {
		return nil, fmt.Errorf("query set: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	set := &quiz.QuestionSet{}
	if err := rows.Scan(&set.ID, &set.Title, &set.ArticleID); err != nil {
		return nil, fmt.Errorf("scan set: %w", err)
	}
	return set, nil
}

func (r *quizSetRepo) List(ctx context.Context) ([]QuizSetSummary, error) {
	b := builder()

	counts := make(map[string]int)
	q, args := b.Select("set_id", entsql.Count("*")).
		From(b.Table(tableQuizQuestions)).
		GroupBy("set_id").
		Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, q, args, rows); err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	for rows.Next() {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[id] = n
	}
	rows.Close()

	q, args = b.Select("id", "title", "article_id", "source", "created_at").
		From(b.Table(tableQuizSets)).
		OrderBy(entsql.Desc("created_at"), "id").
		Query()
	rows = &entsql.Rows{}
	if err := r.drv.Query(ctx, q, args, rows); err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()

	var out []QuizSetSummary
	for rows.Next() {
		var (
			s       QuizSetSummary
			created int64
		)
		if err := rows.Scan(&s.ID, &s.Title, &s.ArticleID, &s.Source, &created); err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		s.CreatedAt = time.UnixMilli(created)
		s.Questions = counts[s.ID]
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *quizSetRepo) Delete(ctx context.Context, id string) (err error) {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	b := builder()
	q, args := b.Delete(tableQuizQuestions).Where(entsql.EQ("set_id", id)).Query()
	if err = tx.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("delete questions: %w", err)
	}

	var res entsql.Result
	q, args = b.Delete(tableQuizSets).Where(entsql.EQ("id", id)).Query()
	if err = tx.Exec(ctx, q, args, &res); err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		err = fmt.Errorf("quiz set %q: %w", id, ErrNotFound)
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
