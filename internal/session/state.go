package session

// Phase represents the coarse state of a session round.
type Phase int

const (
	PhaseAnswering Phase = iota // Collecting answers
	PhaseSubmitted              // Scored; only Reset leaves this phase
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAnswering:
		return "answering"
	case PhaseSubmitted:
		return "submitted"
	}
	return "unknown"
}
