package quizgen

// Article is the reading material a question set is generated from.
type Article struct {
	// ID identifies the article in the caller's system. Optional.
	ID string

	// Title is used as the set title when the LLM does not supply one.
	Title string

	// Text is the full article body.
	Text string

	// Summary is preferred over Text when non-empty.
	Summary string
}

// Draft is the raw LLM output before answers are resolved to option indexes.
type Draft struct {
	Title     string          `json:"title"`
	Questions []DraftQuestion `json:"questions"`
}

// DraftQuestion is one generated question as returned by the LLM. Answer
// holds the text of the correct option (or its letter or 1-based number).
type DraftQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}
