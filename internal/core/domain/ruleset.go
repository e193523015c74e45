package domain

import "strings"

// Template is one canned response category with its trigger keywords.
type Template struct {
	// Name is the category identifier, e.g. "loan_eligibility".
	Name string `toml:"name"`

	// Keywords trigger this category. Matched as lowercase substrings.
	Keywords []string `toml:"keywords"`

	// Response is the canned reply text.
	Response string `toml:"response"`
}

// MatchCount returns how many of the template's keywords occur in the
// query. The query must already be lowercased.
func (t Template) MatchCount(loweredQuery string) int {
	n := 0
	for _, kw := range t.Keywords {
		if strings.Contains(loweredQuery, kw) {
			n++
		}
	}
	return n
}

// Ruleset holds the keyword tables and canned texts that drive routing.
// Loaded once at startup and treated as immutable afterwards; routing
// logic never carries hard-coded word lists.
type Ruleset struct {
	// UnsafeKeywords block a query outright.
	UnsafeKeywords []string `toml:"unsafe_keywords"`

	// OutOfDomainKeywords mark a query as off-topic, unless any
	// template keyword also matches.
	OutOfDomainKeywords []string `toml:"out_of_domain_keywords"`

	// ComplexKeywords steer a query to retrieval-augmented generation.
	ComplexKeywords []string `toml:"complex_keywords"`

	// Templates are the response categories, in priority order.
	// Declaration order breaks ties.
	Templates []Template `toml:"templates"`

	// UnsafeResponse is returned verbatim for unsafe queries.
	UnsafeResponse string `toml:"unsafe_response"`

	// OutOfDomainResponse is returned verbatim for off-topic queries.
	OutOfDomainResponse string `toml:"out_of_domain_response"`

	// DefaultResponse is returned when no template matches.
	DefaultResponse string `toml:"default_response"`

	// Disclaimer is appended to every non-guardrail answer.
	Disclaimer string `toml:"disclaimer"`

	// AnswerPrompt is the generation prompt template. It takes two
	// placeholders in order: retrieved context, then the question.
	AnswerPrompt string `toml:"answer_prompt"`
}

// Validate checks the ruleset is complete enough to route with.
func (r *Ruleset) Validate() error {
	if len(r.UnsafeKeywords) == 0 {
		return NewConfigError("rules.unsafe_keywords", "must not be empty")
	}
	if len(r.OutOfDomainKeywords) == 0 {
		return NewConfigError("rules.out_of_domain_keywords", "must not be empty")
	}
	if len(r.Templates) == 0 {
		return NewConfigError("rules.templates", "must not be empty")
	}
	for _, t := range r.Templates {
		if t.Name == "" {
			return NewConfigError("rules.templates", "template with empty name")
		}
		if len(t.Keywords) == 0 {
			return NewConfigError("rules.templates", "template "+t.Name+" has no keywords")
		}
		if t.Response == "" {
			return NewConfigError("rules.templates", "template "+t.Name+" has no response")
		}
	}
	if r.UnsafeResponse == "" {
		return NewConfigError("rules.unsafe_response", "must not be empty")
	}
	if r.OutOfDomainResponse == "" {
		return NewConfigError("rules.out_of_domain_response", "must not be empty")
	}
	if r.DefaultResponse == "" {
		return NewConfigError("rules.default_response", "must not be empty")
	}
	if r.Disclaimer == "" {
		return NewConfigError("rules.disclaimer", "must not be empty")
	}
	if !strings.Contains(r.AnswerPrompt, "%s") {
		return NewConfigError("rules.answer_prompt", "must contain context and question placeholders")
	}
	return nil
}
