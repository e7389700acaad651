package session

// ProgressFraction returns (CurrentIndex+1)/Len, in (0, 1].
func (s *Session) ProgressFraction() float64 {
	return float64(s.current+1) / float64(s.set.Len())
}

// AnsweredCount returns the number of questions with a recorded answer.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, q := range s.set.Questions {
		if _, ok := s.answers[q.ID]; ok {
			n++
		}
	}
	return n
}

// AllAnswered reports whether every question has an answer, the gate for Submit.
func (s *Session) AllAnswered() bool {
	return s.AnsweredCount() == s.set.Len()
}

// Missing returns the ids of unanswered questions in set order.
func (s *Session) Missing() []string {
	var missing []string
	for _, q := range s.set.Questions {
		if _, ok := s.answers[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// IsFirst reports whether the current question is the first one.
func (s *Session) IsFirst() bool {
	return s.current == 0
}

// IsLast reports whether the current question is the last one.
func (s *Session) IsLast() bool {
	return s.current == s.set.Len()-1
}

// CanAdvance reports whether a forward step is offered to the user: there is
// a next question and the current one has been answered. Next itself does
// not enforce this; the gate belongs to the interaction layer.
func (s *Session) CanAdvance() bool {
	if s.IsLast() {
		return false
	}
	_, ok := s.answers[s.Current().ID]
	return ok
}
