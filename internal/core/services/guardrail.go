package services

import (
	"strings"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/logger"
)

// Guardrail screens queries before any answer tier runs.
// It works purely on the ruleset keyword tables; no model calls.
type Guardrail struct {
	rules *domain.Ruleset
}

// NewGuardrail creates a guardrail over the given ruleset.
func NewGuardrail(rules *domain.Ruleset) *Guardrail {
	return &Guardrail{rules: rules}
}

// Screen classifies the query.
//
// Unsafe keywords win over everything else: "forge KYC documents" is
// refused even though "documents" is a template keyword. A query is
// out of domain only when no template keyword gives it a footing in
// the banking domain AND an out-of-domain keyword matches, so
// "cricket team loan" stays in scope.
func (g *Guardrail) Screen(query string) domain.Verdict {
	lowered := strings.ToLower(query)

	for _, kw := range g.rules.UnsafeKeywords {
		if strings.Contains(lowered, kw) {
			logger.Debug("Guardrail: unsafe keyword %q matched", kw)
			return domain.VerdictUnsafe
		}
	}

	if g.domainRelevant(lowered) {
		return domain.VerdictSafe
	}

	for _, kw := range g.rules.OutOfDomainKeywords {
		if strings.Contains(lowered, kw) {
			logger.Debug("Guardrail: out-of-domain keyword %q matched", kw)
			return domain.VerdictOutOfDomain
		}
	}

	return domain.VerdictSafe
}

// domainRelevant reports whether any template keyword matches the
// lowered query.
func (g *Guardrail) domainRelevant(lowered string) bool {
	for _, t := range g.rules.Templates {
		if t.MatchCount(lowered) > 0 {
			return true
		}
	}
	return false
}
