package domain

// LearningPathKey identifies a unit of tutoring content. Equality is
// structural on the three strings; Subtopic may be empty for
// topic-level lookups.
type LearningPathKey struct {
	Subject  string `json:"subject"`
	Topic    string `json:"topic"`
	Subtopic string `json:"subtopic"`
}

// ExplanationResult is the merged output of the text and video
// providers. VideoURL is nil when no embeddable video was found; that
// is a valid success outcome.
type ExplanationResult struct {
	Explanation string  `json:"explanation"`
	VideoURL    *string `json:"videoUrl"`
}

// QuestionHistoryItem is one completed tutoring turn. The caller owns
// the history slice and appends the new turn after each answer; the
// resolver only reads it.
type QuestionHistoryItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type AnswerResult struct {
	Answer string `json:"answer"`
}
