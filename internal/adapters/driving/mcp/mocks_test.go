package mcp

import (
	"context"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
)

// mockAssistant is a mock implementation of driving.Assistant.
type mockAssistant struct {
	answer domain.Answer
	err    error
}

func (m *mockAssistant) Answer(_ context.Context, _ string) (domain.Answer, error) {
	return m.answer, m.err
}

// mockKnowledge is a mock implementation of driving.KnowledgeAdmin.
type mockKnowledge struct {
	count  int
	status domain.KnowledgeStatus
	chunks []domain.ScoredChunk
	lastK  int
	err    error
}

func (m *mockKnowledge) Rebuild(_ context.Context) (int, error) {
	return m.count, m.err
}

func (m *mockKnowledge) Status() domain.KnowledgeStatus {
	return m.status
}

func (m *mockKnowledge) Search(_ context.Context, _ string, k int) ([]domain.ScoredChunk, error) {
	m.lastK = k
	return m.chunks, m.err
}

// mockCorpus is a mock implementation of driving.CorpusInspector.
type mockCorpus struct {
	size  int
	path  string
	model string
}

func (m *mockCorpus) Size() int {
	return m.size
}

func (m *mockCorpus) Path() string {
	return m.path
}

func (m *mockCorpus) Model() string {
	return m.model
}
