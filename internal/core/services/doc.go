// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The answer cascade lives here: Guardrail screens the query,
// CorpusMatcher tries the curated Q&A dataset, KnowledgeStore serves
// chunk retrieval for grounded generation, TemplateRouter supplies the
// canned fallbacks, and Assistant ties the tiers together.
//
// Services are pure Go with no external service dependencies beyond
// the driven ports they are handed.
package services
