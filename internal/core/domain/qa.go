package domain

// QAEntry is one question/answer pair from the curated corpus.
type QAEntry struct {
	// ID uniquely identifies the entry within a loaded corpus.
	ID string

	// Question is the canonical customer question.
	Question string

	// Answer is the vetted reply returned on a close match.
	Answer string

	// Embedding is the question vector. Populated at load time.
	Embedding []float32
}
