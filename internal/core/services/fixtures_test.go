package services

import (
	"context"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driven"
)

// testRuleset returns a ruleset small enough to reason about but
// covering every routing path.
func testRuleset() *domain.Ruleset {
	return &domain.Ruleset{
		UnsafeKeywords:      []string{"hack", "steal", "fraud", "fake id", "forge"},
		OutOfDomainKeywords: []string{"recipe", "weather", "cricket", "movie", "joke"},
		ComplexKeywords:     []string{"policy", "breakdown", "penalty", "grievance", "billing cycle"},
		Templates: []domain.Template{
			{
				Name:     "loan_eligibility",
				Keywords: []string{"loan", "eligible", "eligibility"},
				Response: "Loan eligibility depends on income, credit score and existing obligations.",
			},
			{
				Name:     "emi",
				Keywords: []string{"emi", "installment", "monthly payment"},
				Response: "Your EMI is calculated from principal, interest rate and tenure.",
			},
			{
				Name:     "interest_rate",
				Keywords: []string{"interest", "rate of interest"},
				Response: "Interest rates vary by product and tenure.",
			},
			{
				Name:     "documents",
				Keywords: []string{"document", "kyc", "paperwork"},
				Response: "Standard KYC documents are identity proof and address proof.",
			},
			{
				Name:     "card",
				Keywords: []string{"card", "credit card", "debit card"},
				Response: "Card services cover issuance, blocking and limit changes.",
			},
		},
		UnsafeResponse:      "I cannot help with that request.",
		OutOfDomainResponse: "I can only help with banking, financial services and insurance queries.",
		DefaultResponse:     "Could you rephrase that? I handle banking, financial services and insurance topics.",
		Disclaimer:          "This is general guidance; please verify details with your bank or insurer.",
		AnswerPrompt:        "Context: %s\n\nUser Question: %s\nAnswer based on context:",
	}
}

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService for testing.
// Vectors come from the vectors map keyed by exact text; unknown
// texts get the fallback.
type mockEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
	embedErr error
	batchErr error
	dims     int
	model    string
}

var _ driven.EmbeddingService = (*mockEmbedder)(nil)

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	result := make([][]float32, len(texts))
	for i, t := range texts {
		result[i] = m.vectorFor(t)
	}
	return result, nil
}

func (m *mockEmbedder) vectorFor(text string) []float32 {
	if v, ok := m.vectors[text]; ok {
		return v
	}
	if m.fallback != nil {
		return m.fallback
	}
	return []float32{1, 0, 0}
}

func (m *mockEmbedder) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return 3
}

func (m *mockEmbedder) ModelName() string {
	if m.model != "" {
		return m.model
	}
	return "mock-embed"
}

func (m *mockEmbedder) Ping(_ context.Context) error { return nil }

func (m *mockEmbedder) Close() error { return nil }

// mockGenerator implements driven.GenerationService for testing.
type mockGenerator struct {
	response    string
	generateErr error
	lastPrompt  string
	calls       int
}

var _ driven.GenerationService = (*mockGenerator)(nil)

func (m *mockGenerator) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.response, nil
}

func (m *mockGenerator) ModelName() string { return "mock-generate" }

func (m *mockGenerator) Ping(_ context.Context) error { return nil }

func (m *mockGenerator) Close() error { return nil }

// mockDocumentSource implements driven.DocumentSource for testing.
type mockDocumentSource struct {
	docs      []domain.SourceDocument
	listErr   error
	watchErr  error
	watchCh   chan struct{}
	listCalls int
}

var _ driven.DocumentSource = (*mockDocumentSource)(nil)

func (m *mockDocumentSource) List(_ context.Context) ([]domain.SourceDocument, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.docs, nil
}

func (m *mockDocumentSource) Watch(_ context.Context) (<-chan struct{}, error) {
	if m.watchErr != nil {
		return nil, m.watchErr
	}
	if m.watchCh == nil {
		m.watchCh = make(chan struct{})
	}
	return m.watchCh, nil
}
