// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - EmbeddingService: Generates vector embeddings for corpus questions,
//     knowledge chunks and live queries
//   - GenerationService: Produces grounded answers from retrieved context
//   - DocumentSource: Enumerates knowledge documents with extracted text
//   - SettingsStore: Runtime configuration persistence
//   - RulesetStore: Keyword tables and canned response texts
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingCache: Avoids re-billing the provider for repeated texts.
//     Without it, every embed call goes upstream.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or loader package
package driven
