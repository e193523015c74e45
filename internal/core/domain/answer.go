package domain

import "fmt"

// Verdict is the guardrail's judgement of a query.
type Verdict int

// Guardrail verdicts.
const (
	// VerdictSafe allows the query into the answer cascade.
	VerdictSafe Verdict = iota

	// VerdictUnsafe blocks the query with a fixed refusal.
	VerdictUnsafe

	// VerdictOutOfDomain declines the query with a fixed scope message.
	VerdictOutOfDomain
)

// String returns the string representation.
func (v Verdict) String() string {
	switch v {
	case VerdictSafe:
		return "safe"
	case VerdictUnsafe:
		return "unsafe"
	case VerdictOutOfDomain:
		return "out_of_domain"
	default:
		return "unknown"
	}
}

// AnswerSource identifies which tier produced an answer.
type AnswerSource string

// Answer sources.
const (
	// SourceRefusal is the guardrail's refusal of an unsafe query.
	SourceRefusal AnswerSource = "refusal"

	// SourceOutOfScope is the guardrail's decline of an off-topic query.
	SourceOutOfScope AnswerSource = "out_of_scope"

	// SourceDataset is a stored answer from the curated Q&A corpus.
	SourceDataset AnswerSource = "dataset"

	// SourceKnowledge is a generated answer grounded on retrieved chunks.
	SourceKnowledge AnswerSource = "knowledge"

	// SourceTemplate is a canned response from the template router.
	SourceTemplate AnswerSource = "template"
)

// String returns the string representation.
func (s AnswerSource) String() string {
	return string(s)
}

// Answer is the terminal result of routing a query.
type Answer struct {
	// Text is the full reply, disclaimer included where applicable.
	Text string

	// Source identifies the tier that produced the reply.
	Source AnswerSource

	// Confidence is the corpus similarity score. Set on dataset
	// answers only, zero otherwise.
	Confidence float64

	// Category is the matched template name. Set on template
	// answers only, empty otherwise.
	Category string
}

// Annotation returns the human-readable source tag rendered under a
// reply, e.g. "(Source: Dataset, Confidence: 0.83)". Guardrail
// answers carry no annotation.
func (a Answer) Annotation() string {
	switch a.Source {
	case SourceDataset:
		return fmt.Sprintf("(Source: Dataset, Confidence: %.2f)", a.Confidence)
	case SourceKnowledge:
		return "(Source: RAG + Knowledge Base)"
	case SourceTemplate:
		return "(Source: AI Assistant)"
	default:
		return ""
	}
}
