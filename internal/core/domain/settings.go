package domain

import "time"

// Provider identifies a model service provider for embeddings and generation.
type Provider string

// Available providers.
const (
	// ProviderOllama is a local Ollama instance.
	ProviderOllama Provider = "ollama"

	// ProviderOpenAI is the OpenAI cloud API.
	ProviderOpenAI Provider = "openai"
)

// IsValid returns true if the provider is recognised.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderOllama, ProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p Provider) RequiresAPIKey() bool {
	return p == ProviderOpenAI
}

// IsLocal returns true if this provider runs locally.
func (p Provider) IsLocal() bool {
	return p == ProviderOllama
}

// String returns the string representation.
func (p Provider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p Provider) Description() string {
	switch p {
	case ProviderOllama:
		return "Ollama (local)"
	case ProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return "Unknown"
	}
}

// OllamaSettings holds local Ollama configuration.
type OllamaSettings struct {
	// Host is the Ollama API endpoint.
	Host string `toml:"host"`

	// EmbedModel is the embedding model name.
	EmbedModel string `toml:"embed_model"`

	// GenerateModel is the generation model name.
	GenerateModel string `toml:"generate_model"`
}

// OpenAISettings holds OpenAI configuration.
type OpenAISettings struct {
	// APIKey authenticates requests. May also come from the
	// OPENAI_API_KEY environment variable.
	APIKey string `toml:"api_key"`

	// EmbedModel is the embedding model name.
	EmbedModel string `toml:"embed_model"`

	// GenerateModel is the chat model name.
	GenerateModel string `toml:"generate_model"`
}

// RouterSettings holds the answer cascade thresholds.
type RouterSettings struct {
	// DatasetThreshold is the minimum corpus similarity for a stored
	// answer to win, in [0, 1].
	DatasetThreshold float64 `toml:"dataset_threshold"`

	// RetrievalFloor drops retrieved chunks scoring at or below it.
	RetrievalFloor float64 `toml:"retrieval_floor"`

	// RetrievalK caps how many chunks feed the generation prompt.
	RetrievalK int `toml:"retrieval_k"`

	// ChunkSize is the chunk length in runes.
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is how many runes consecutive chunks share.
	ChunkOverlap int `toml:"chunk_overlap"`

	// ModelTimeoutSeconds bounds each upstream model call.
	ModelTimeoutSeconds int `toml:"model_timeout_seconds"`
}

// CacheSettings holds embedding cache configuration.
type CacheSettings struct {
	// Enabled turns the cache on.
	Enabled bool `toml:"enabled"`

	// Path is the directory holding the cache database. Empty means
	// the default config directory.
	Path string `toml:"path"`
}

// LimitSettings holds upstream rate limiting configuration.
type LimitSettings struct {
	// RequestsPerSecond is the sustained request rate.
	RequestsPerSecond float64 `toml:"requests_per_second"`

	// Burst is the bucket size.
	Burst int `toml:"burst"`
}

// Settings holds all runtime configuration.
type Settings struct {
	// Provider selects the model service family.
	Provider Provider `toml:"provider"`

	// DataDir is the knowledge documents directory.
	DataDir string `toml:"data_dir"`

	// CorpusPath is the Q&A corpus CSV file.
	CorpusPath string `toml:"corpus_path"`

	// StorePath is the chunk store artifact. Empty means the default
	// location under the config directory.
	StorePath string `toml:"store_path"`

	// Ollama holds local provider settings.
	Ollama OllamaSettings `toml:"ollama"`

	// OpenAI holds cloud provider settings.
	OpenAI OpenAISettings `toml:"openai"`

	// Router holds the cascade thresholds.
	Router RouterSettings `toml:"router"`

	// Cache holds embedding cache settings.
	Cache CacheSettings `toml:"cache"`

	// Limits holds upstream rate limiting settings.
	Limits LimitSettings `toml:"limits"`
}

// DefaultSettings returns settings with sensible defaults.
// The local Ollama provider is the default; OpenAI requires an
// explicit key before it validates.
func DefaultSettings() Settings {
	return Settings{
		Provider:   ProviderOllama,
		DataDir:    "data/knowledge",
		CorpusPath: "data/corpus.csv",
		Ollama: OllamaSettings{
			Host:          "http://localhost:11434",
			EmbedModel:    "nomic-embed-text",
			GenerateModel: "llama3.2",
		},
		OpenAI: OpenAISettings{
			EmbedModel:    "text-embedding-3-small",
			GenerateModel: "gpt-4o-mini",
		},
		Router: RouterSettings{
			DatasetThreshold:    0.70,
			RetrievalFloor:      0.20,
			RetrievalK:          2,
			ChunkSize:           400,
			ChunkOverlap:        80,
			ModelTimeoutSeconds: 30,
		},
		Cache: CacheSettings{
			Enabled: true,
		},
		Limits: LimitSettings{
			RequestsPerSecond: 4,
			Burst:             4,
		},
	}
}

// ModelTimeout returns the per-call upstream deadline.
func (s Settings) ModelTimeout() time.Duration {
	return time.Duration(s.Router.ModelTimeoutSeconds) * time.Second
}

// Validate checks the settings are usable. Called once at startup;
// a failure aborts before any service is built.
func (s Settings) Validate() error {
	if !s.Provider.IsValid() {
		return NewConfigError("provider", "must be \"ollama\" or \"openai\"")
	}
	if s.Provider.RequiresAPIKey() && s.OpenAI.APIKey == "" {
		return NewConfigError("openai.api_key", "required when provider is \"openai\"")
	}
	if s.DataDir == "" {
		return NewConfigError("data_dir", "must not be empty")
	}
	if s.CorpusPath == "" {
		return NewConfigError("corpus_path", "must not be empty")
	}
	if s.Router.DatasetThreshold < 0 || s.Router.DatasetThreshold > 1 {
		return NewConfigError("router.dataset_threshold", "must be in [0, 1]")
	}
	if s.Router.RetrievalFloor < 0 || s.Router.RetrievalFloor > 1 {
		return NewConfigError("router.retrieval_floor", "must be in [0, 1]")
	}
	if s.Router.RetrievalK <= 0 {
		return NewConfigError("router.retrieval_k", "must be positive")
	}
	if s.Router.ChunkSize <= 0 {
		return NewConfigError("router.chunk_size", "must be positive")
	}
	if s.Router.ChunkOverlap < 0 || s.Router.ChunkOverlap >= s.Router.ChunkSize {
		return NewConfigError("router.chunk_overlap", "must be non-negative and smaller than chunk_size")
	}
	if s.Router.ModelTimeoutSeconds <= 0 {
		return NewConfigError("router.model_timeout_seconds", "must be positive")
	}
	if s.Limits.RequestsPerSecond <= 0 {
		return NewConfigError("limits.requests_per_second", "must be positive")
	}
	if s.Limits.Burst <= 0 {
		return NewConfigError("limits.burst", "must be positive")
	}
	return nil
}
