package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Query string `json:"query" jsonschema:"the customer query to answer"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer     string  `json:"answer"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence,omitempty"`
	Category   string  `json:"category,omitempty"`
}

// KnowledgeSearchInput is the input schema for the knowledge_search tool.
type KnowledgeSearchInput struct {
	Query string `json:"query" jsonschema:"the text to retrieve knowledge chunks for"`
	K     int    `json:"k,omitempty" jsonschema:"maximum number of chunks to return (default 5)"`
}

// KnowledgeSearchOutput is the output schema for the knowledge_search tool.
type KnowledgeSearchOutput struct {
	Chunks []ChunkOutput `json:"chunks"`
	Count  int           `json:"count"`
}

// ChunkOutput represents a single retrieved chunk.
type ChunkOutput struct {
	Source string  `json:"source"`
	Text   string  `json:"text"`
	Score  float64 `json:"score"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a banking, cards, insurance or accounts query through the assistant",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "knowledge_search",
		Description: "Retrieve raw scored chunks from the knowledge store without generating an answer",
	}, s.handleKnowledgeSearch)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Assistant.Answer(ctx, input.Query)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:     answer.Text,
		Source:     answer.Source.String(),
		Confidence: answer.Confidence,
		Category:   answer.Category,
	}

	return nil, output, nil
}

// handleKnowledgeSearch handles the knowledge_search tool invocation.
func (s *Server) handleKnowledgeSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input KnowledgeSearchInput,
) (*mcp.CallToolResult, KnowledgeSearchOutput, error) {
	if s.ports.Knowledge == nil {
		return nil, KnowledgeSearchOutput{}, errors.New("knowledge service not configured")
	}

	k := input.K
	if k <= 0 {
		k = 5
	}

	chunks, err := s.ports.Knowledge.Search(ctx, input.Query, k)
	if err != nil {
		return nil, KnowledgeSearchOutput{}, err
	}

	output := KnowledgeSearchOutput{
		Chunks: make([]ChunkOutput, len(chunks)),
		Count:  len(chunks),
	}

	for i := range chunks {
		output.Chunks[i] = ChunkOutput{
			Source: chunks[i].Source,
			Text:   chunks[i].Text,
			Score:  chunks[i].Score,
		}
	}

	return nil, output, nil
}
