package session

// Op names the transition that produced a Change. The values double as
// event actions when changes are persisted.
type Op string

const (
	OpAnswer   Op = "answer"
	OpNavigate Op = "navigate"
	OpSubmit   Op = "submit"
	OpReset    Op = "reset"
)

// Change describes a completed state transition.
type Change struct {
	Op    Op
	Round int
	Phase Phase

	// Index is the current question index after the transition.
	Index int

	// QuestionID and Option are set for OpAnswer.
	QuestionID string
	Option     int

	// Score and Total are set for OpSubmit.
	Score int
	Total int
}

// Observer is called synchronously after every successful transition.
// Rejected operations and boundary no-ops do not notify.
type Observer func(Change)

// Subscribe registers an observer and returns a function that removes it.
func (s *Session) Subscribe(fn Observer) (cancel func()) {
	id := s.nextObserver
	s.nextObserver++
	if s.observers == nil {
		s.observers = make(map[int]Observer)
	}
	s.observers[id] = fn
	return func() { delete(s.observers, id) }
}

func (s *Session) notify(c Change) {
	c.Round = s.round
	c.Phase = s.phase
	c.Index = s.current

	// Deliver in subscription order. Observers added during delivery
	// start with the next change.
	n := s.nextObserver
	for id := 0; id < n; id++ {
		if fn, ok := s.observers[id]; ok {
			fn(c)
		}
	}
}
