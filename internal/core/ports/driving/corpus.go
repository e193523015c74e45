package driving

// CorpusInspector exposes the loaded Q&A corpus to inspection surfaces.
type CorpusInspector interface {
	// Size returns the number of loaded entries.
	Size() int

	// Path returns the corpus file location.
	Path() string

	// Model returns the embedding model behind the question vectors.
	Model() string
}
