// Package mcp provides an MCP (Model Context Protocol) server adapter for the
// assistant. It lets MCP clients like Claude Desktop route customer queries
// through the tiered answer cascade and inspect the knowledge store.
package mcp

import "errors"

// ErrMissingAssistant is returned when the assistant service is not provided.
var ErrMissingAssistant = errors.New("mcp: assistant service is required")
