package domain

// SourceDocument is one knowledge document with its extracted text.
// Extraction (plain text read, PDF conversion) happens in the
// document source adapter; the core only sees text.
type SourceDocument struct {
	// Path is the document's location on disk.
	Path string

	// Text is the extracted plain text.
	Text string
}

// Chunk is a retrievable unit cut from a knowledge document.
type Chunk struct {
	// ID uniquely identifies the chunk within a store build.
	ID string

	// Source is the path of the document the chunk was cut from.
	Source string

	// Text is the chunk content.
	Text string

	// Embedding is the chunk vector.
	Embedding []float32
}

// ScoredChunk pairs a chunk with its similarity to a query.
type ScoredChunk struct {
	Chunk

	// Score is the cosine similarity, in [-1, 1].
	Score float64
}

// StoreState is the chunk store's lifecycle position.
type StoreState int

// Chunk store states. The store moves strictly forward:
// uninitialised, then loading, then ready. A failed load returns
// to uninitialised so a later call can retry.
const (
	StoreUninitialised StoreState = iota
	StoreLoading
	StoreReady
)

// String returns the string representation.
func (s StoreState) String() string {
	switch s {
	case StoreUninitialised:
		return "uninitialised"
	case StoreLoading:
		return "loading"
	case StoreReady:
		return "ready"
	default:
		return "unknown"
	}
}

// KnowledgeStatus is a point-in-time snapshot of the chunk store.
type KnowledgeStatus struct {
	// State is the lifecycle position.
	State StoreState

	// Stale is true when the knowledge directory changed after the
	// last build; the next retrieval rebuilds.
	Stale bool

	// Chunks is the number of stored chunks.
	Chunks int

	// Model is the embedding model that produced the vectors.
	Model string

	// Dimensions is the vector dimension.
	Dimensions int

	// ArtifactPath is the on-disk location of the persisted store.
	ArtifactPath string
}
