package services

import (
	"strings"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/logger"
)

// TemplateRouter picks a canned response by keyword counting.
// It is the cascade's last tier and never fails: when no category
// matches, callers fall back to the ruleset's default response.
type TemplateRouter struct {
	rules *domain.Ruleset
}

// NewTemplateRouter creates a template router over the given ruleset.
func NewTemplateRouter(rules *domain.Ruleset) *TemplateRouter {
	return &TemplateRouter{rules: rules}
}

// Route scores every template category against the query and returns
// the winner's name and response text.
//
// The score is the number of category keywords occurring in the
// lowered query. Only a strictly higher score displaces the current
// winner, so ties keep the earlier-declared category. A zero score
// never wins; matched is false when no category reaches one.
func (r *TemplateRouter) Route(query string) (category, response string, matched bool) {
	lowered := strings.ToLower(query)

	best := -1
	bestScore := 0
	for i, t := range r.rules.Templates {
		if score := t.MatchCount(lowered); score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 {
		logger.Debug("Template router: no category matched")
		return "", "", false
	}

	winner := r.rules.Templates[best]
	logger.Debug("Template router: category %q won with %d keyword hits", winner.Name, bestScore)
	return winner.Name, winner.Response, true
}
