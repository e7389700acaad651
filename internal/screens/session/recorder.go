package session

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	sess "github.com/abhisek/readquiz/internal/session"
	"github.com/abhisek/readquiz/internal/store"
)

// warnOut receives append failures.
var warnOut io.Writer = os.Stderr

// Recorder appends a session event for every engine transition. Append
// failures are reported as warnings and never block a quiz.
type Recorder struct {
	repo      store.EventRepo
	sessionID string
	setID     string
	cancel    func()
}

// NewRecorder writes a start event and subscribes to s. A nil repo yields
// a recorder that only assigns the session id.
func NewRecorder(ctx context.Context, repo store.EventRepo, s *sess.Session) *Recorder {
	r := &Recorder{
		repo:      repo,
		sessionID: uuid.NewString(),
		setID:     s.SetID(),
	}
	if repo == nil {
		return r
	}

	r.record(ctx, store.SessionEventData{
		SessionID:     r.sessionID,
		SetID:         r.setID,
		Round:         s.Round(),
		Action:        store.ActionStart,
		QuestionIndex: s.CurrentIndex(),
		Total:         s.Len(),
	})

	r.cancel = s.Subscribe(func(c sess.Change) {
		r.record(ctx, r.event(c))
	})
	return r
}

func (r *Recorder) record(ctx context.Context, data store.SessionEventData) {
	if err := r.repo.AppendSessionEvent(ctx, data); err != nil {
		fmt.Fprintf(warnOut, "warning: failed to log session event %s: %v\n", data.Action, err)
	}
}

func (r *Recorder) event(c sess.Change) store.SessionEventData {
	data := store.SessionEventData{
		SessionID:     r.sessionID,
		SetID:         r.setID,
		Round:         c.Round,
		QuestionIndex: c.Index,
	}
	switch c.Op {
	case sess.OpAnswer:
		data.Action = store.ActionAnswer
		data.QuestionID = c.QuestionID
		data.Option = c.Option
	case sess.OpNavigate:
		data.Action = store.ActionNavigate
	case sess.OpSubmit:
		data.Action = store.ActionSubmit
		data.Score = c.Score
		data.Total = c.Total
	case sess.OpReset:
		data.Action = store.ActionReset
	default:
		data.Action = string(c.Op)
	}
	return data
}

// SessionID identifies the recorded session.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Close stops recording. Safe to call more than once.
func (r *Recorder) Close() {
	if r == nil || r.cancel == nil {
		return
	}
	r.cancel()
	r.cancel = nil
}
