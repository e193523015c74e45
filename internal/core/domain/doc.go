// Package domain defines the core business entities for the BFSI assistant.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Answer: A terminal reply with its source annotation
//   - QAEntry: One question/answer pair from the curated corpus
//   - Chunk: A retrievable unit cut from a knowledge document
//   - Ruleset: The keyword tables and canned response texts
//   - Settings: Runtime configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
