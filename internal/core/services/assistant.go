package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driven"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driving"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/logger"
)

// Ensure Assistant implements the interface.
var _ driving.Assistant = (*Assistant)(nil)

// AssistantConfig holds the cascade thresholds.
type AssistantConfig struct {
	// DatasetThreshold is the minimum corpus similarity for a stored
	// answer to win.
	DatasetThreshold float64

	// RetrievalK caps how many chunks feed the generation prompt.
	RetrievalK int

	// ModelTimeout bounds each upstream model call. Zero disables
	// the per-call deadline.
	ModelTimeout time.Duration
}

// Assistant routes customer queries through the tiered cascade:
// guardrail, curated corpus, retrieval-augmented generation, canned
// templates. Every tier below the guardrail degrades tier-locally, so
// a reply always comes back.
type Assistant struct {
	cfg       AssistantConfig
	rules     *domain.Ruleset
	guardrail *Guardrail
	corpus    *CorpusMatcher
	knowledge *KnowledgeStore
	templates *TemplateRouter
	generator driven.GenerationService
}

// NewAssistant wires the cascade.
func NewAssistant(
	cfg AssistantConfig,
	rules *domain.Ruleset,
	guardrail *Guardrail,
	corpus *CorpusMatcher,
	knowledge *KnowledgeStore,
	templates *TemplateRouter,
	generator driven.GenerationService,
) *Assistant {
	return &Assistant{
		cfg:       cfg,
		rules:     rules,
		guardrail: guardrail,
		corpus:    corpus,
		knowledge: knowledge,
		templates: templates,
		generator: generator,
	}
}

// Answer routes the query and returns the terminal reply.
//
// The guardrail verdicts return their fixed texts verbatim. Every
// other answer gets the safety disclaimer appended exactly once, here
// and nowhere else.
func (a *Assistant) Answer(ctx context.Context, query string) (domain.Answer, error) {
	logger.Section("Answer Cascade")

	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Answer{}, domain.ErrEmptyQuery
	}
	logger.Debug("Query: %q", query)

	switch a.guardrail.Screen(query) {
	case domain.VerdictUnsafe:
		logger.Info("Guardrail: refused as unsafe")
		return domain.Answer{Text: a.rules.UnsafeResponse, Source: domain.SourceRefusal}, nil
	case domain.VerdictOutOfDomain:
		logger.Info("Guardrail: declined as out of domain")
		return domain.Answer{Text: a.rules.OutOfDomainResponse, Source: domain.SourceOutOfScope}, nil
	}

	if answer, ok := a.tryCorpus(ctx, query); ok {
		return a.withDisclaimer(answer), nil
	}

	if a.isComplex(query) {
		if answer, ok := a.tryKnowledge(ctx, query); ok {
			return a.withDisclaimer(answer), nil
		}
	} else {
		logger.Debug("No complex keywords, skipping retrieval tier")
	}

	return a.withDisclaimer(a.templateAnswer(query)), nil
}

// tryCorpus runs the dataset tier. Any failure is absorbed: the
// cascade moves on.
func (a *Assistant) tryCorpus(ctx context.Context, query string) (domain.Answer, bool) {
	tctx, cancel := a.callContext(ctx)
	defer cancel()

	entry, score, err := a.corpus.BestMatch(tctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrNoMatch) {
			logger.Debug("Corpus tier: empty corpus")
		} else {
			logger.Warn("Corpus tier: match failed: %v", asUpstream(err))
		}
		return domain.Answer{}, false
	}

	logger.Debug("Corpus tier: best score %.3f, threshold %.2f", score, a.cfg.DatasetThreshold)
	if score < a.cfg.DatasetThreshold {
		return domain.Answer{}, false
	}

	logger.Info("Corpus tier: answered with confidence %.2f", score)
	return domain.Answer{
		Text:       entry.Answer,
		Source:     domain.SourceDataset,
		Confidence: score,
	}, true
}

// tryKnowledge runs the retrieval-augmented tier: top-k chunks feed
// the generation prompt. No chunks, a retrieval failure or a
// generation failure all fall through to the template tier.
func (a *Assistant) tryKnowledge(ctx context.Context, query string) (domain.Answer, bool) {
	rctx, cancel := a.callContext(ctx)
	defer cancel()

	chunks, err := a.knowledge.Search(rctx, query, a.cfg.RetrievalK)
	if err != nil {
		logger.Warn("Knowledge tier: retrieval failed: %v", asUpstream(err))
		return domain.Answer{}, false
	}
	if len(chunks) == 0 {
		logger.Debug("Knowledge tier: no chunks above floor")
		return domain.Answer{}, false
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	prompt := fmt.Sprintf(a.rules.AnswerPrompt, strings.Join(texts, "\n\n"), query)

	gctx, cancel := a.callContext(ctx)
	defer cancel()

	text, err := a.generator.Generate(gctx, prompt, driven.GenerateOptions{
		MaxTokens:   256,
		Temperature: 0.2,
	})
	if err != nil {
		logger.Warn("Knowledge tier: generation failed: %v", asUpstream(err))
		return domain.Answer{}, false
	}

	text = strings.TrimSpace(text)
	if text == "" {
		logger.Warn("Knowledge tier: model returned empty text")
		return domain.Answer{}, false
	}

	logger.Info("Knowledge tier: answered from %d chunks", len(chunks))
	return domain.Answer{Text: text, Source: domain.SourceKnowledge}, true
}

// templateAnswer runs the final tier. It cannot fail.
func (a *Assistant) templateAnswer(query string) domain.Answer {
	if category, response, ok := a.templates.Route(query); ok {
		logger.Info("Template tier: category %q", category)
		return domain.Answer{Text: response, Source: domain.SourceTemplate, Category: category}
	}

	logger.Info("Template tier: default response")
	return domain.Answer{Text: a.rules.DefaultResponse, Source: domain.SourceTemplate}
}

// isComplex reports whether the query asks for the kind of detail the
// knowledge documents cover.
func (a *Assistant) isComplex(query string) bool {
	lowered := strings.ToLower(query)
	for _, kw := range a.rules.ComplexKeywords {
		if strings.Contains(lowered, kw) {
			logger.Debug("Complex keyword %q matched, trying retrieval tier", kw)
			return true
		}
	}
	return false
}

// withDisclaimer appends the safety disclaimer.
func (a *Assistant) withDisclaimer(answer domain.Answer) domain.Answer {
	answer.Text = answer.Text + "\n\n" + a.rules.Disclaimer
	return answer
}

// callContext derives the per-call upstream deadline.
func (a *Assistant) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.ModelTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, a.cfg.ModelTimeout)
}

// asUpstream maps deadline errors to the timeout sentinel for logging.
func asUpstream(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrUpstreamTimeout
	}
	return err
}
