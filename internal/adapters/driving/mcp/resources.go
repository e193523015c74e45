package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for assistant resources.
const uriScheme = "bfsi://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the knowledge store status.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "knowledge/status",
		Name:        "knowledge-status",
		Description: "Lifecycle state and contents of the knowledge chunk store",
		MIMEType:    "application/json",
	}, s.handleKnowledgeStatusResource)

	// Static resource for the Q&A corpus summary.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "corpus",
		Name:        "corpus",
		Description: "Summary of the curated Q&A corpus",
		MIMEType:    "application/json",
	}, s.handleCorpusResource)
}

// handleKnowledgeStatusResource returns the chunk store status.
func (s *Server) handleKnowledgeStatusResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Knowledge == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "{}",
			}},
		}, nil
	}

	status := s.ports.Knowledge.Status()

	// Build simplified status view.
	type storeInfo struct {
		State      string `json:"state"`
		Stale      bool   `json:"stale"`
		Chunks     int    `json:"chunks"`
		Model      string `json:"model,omitempty"`
		Dimensions int    `json:"dimensions,omitempty"`
		Artifact   string `json:"artifact,omitempty"`
	}

	info := storeInfo{
		State:      status.State.String(),
		Stale:      status.Stale,
		Chunks:     status.Chunks,
		Model:      status.Model,
		Dimensions: status.Dimensions,
		Artifact:   status.ArtifactPath,
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleCorpusResource returns a summary of the loaded Q&A corpus.
func (s *Server) handleCorpusResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Corpus == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "{}",
			}},
		}, nil
	}

	// Build simplified corpus view.
	type corpusInfo struct {
		Entries int    `json:"entries"`
		Path    string `json:"path"`
		Model   string `json:"model"`
	}

	info := corpusInfo{
		Entries: s.ports.Corpus.Size(),
		Path:    s.ports.Corpus.Path(),
		Model:   s.ports.Corpus.Model(),
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling corpus summary: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
