package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrEmptyQuery indicates the query was empty or whitespace only.
	ErrEmptyQuery = errors.New("empty query")

	// ErrNoMatch indicates no corpus entry could be scored against the query.
	// The router treats this as a miss and moves to the next tier.
	ErrNoMatch = errors.New("no corpus match")

	// ErrStoreNotReady indicates the chunk store has not finished loading.
	ErrStoreNotReady = errors.New("knowledge store not ready")

	// ErrStoreCorrupt indicates the persisted chunk store artifact could not
	// be decoded or no longer matches the live embedding model.
	// Recovery is a rebuild, never a crash.
	ErrStoreCorrupt = errors.New("knowledge store artifact corrupt")

	// ErrCacheMiss indicates the embedding cache holds no entry for the key.
	ErrCacheMiss = errors.New("embedding cache miss")

	// ErrLoaderUnsupported indicates no document loader handles the file extension.
	ErrLoaderUnsupported = errors.New("unsupported document type")

	// ErrPDFToolNotFound indicates the pdftotext binary is not installed.
	// PDF documents are skipped without it.
	ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

	// ErrUpstreamTimeout indicates a model provider call exceeded its deadline.
	// Tier-local: the router falls through to the next tier.
	ErrUpstreamTimeout = errors.New("upstream model call timed out")

	// ErrNotConfigured indicates a provider is selected but missing credentials.
	ErrNotConfigured = errors.New("provider not configured")
)

// ConfigError reports an invalid configuration value.
// Configuration problems are fatal at startup and never surface
// from the answer path.
type ConfigError struct {
	// Field is the dotted settings key, e.g. "router.chunk_overlap".
	Field string

	// Reason describes why the value was rejected.
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// NewConfigError creates a ConfigError for the given field.
func NewConfigError(field, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason}
}
