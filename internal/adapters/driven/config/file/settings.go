package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore is a TOML-backed implementation of driven.SettingsStore.
// The file is read once at construction; Set persists immediately.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
	settings domain.Settings
}

// NewSettingsStore creates a new TOML-based settings store.
// If configDir is empty, defaults to ~/.bfsi-assistant/config.toml.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".bfsi-assistant")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	s := &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Load returns the current settings.
func (s *SettingsStore) Load() (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

// Save persists the settings, creating the file if needed.
func (s *SettingsStore) Save(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	return s.save()
}

// Get retrieves one value by dotted key, e.g. "ollama.host".
func (s *SettingsStore) Get(key string) (string, bool) {
	accessor, ok := settingsFields[key]
	if !ok {
		return "", false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return accessor.get(&s.settings), true
}

// Set stores one value by dotted key and persists immediately.
func (s *SettingsStore) Set(key, value string) error {
	accessor, ok := settingsFields[key]
	if !ok {
		return domain.NewConfigError(key, "unknown setting")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Apply to a copy so a failed conversion leaves settings untouched.
	updated := s.settings
	if err := accessor.set(&updated, value); err != nil {
		return err
	}

	s.settings = updated
	return s.save()
}

// Keys returns every dotted key in sorted order.
func (s *SettingsStore) Keys() []string {
	keys := make([]string, 0, len(settingsFields))
	for key := range settingsFields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Path returns the configuration file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// load reads the TOML file over the defaults, so missing keys keep
// their default values. A missing file yields pure defaults.
func (s *SettingsStore) load() error {
	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.settings = settings
			return nil
		}
		return fmt.Errorf("reading settings: %w", err)
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	s.settings = settings
	return nil
}

// save writes settings to the TOML file (caller must hold lock).
func (s *SettingsStore) save() error {
	data, err := toml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("serialising settings: %w", err)
	}

	// Restricted permissions: the file may hold an API key.
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// fieldAccessor renders and parses one dotted settings key.
type fieldAccessor struct {
	get func(s *domain.Settings) string
	set func(s *domain.Settings, raw string) error
}

func stringField(sel func(*domain.Settings) *string) fieldAccessor {
	return fieldAccessor{
		get: func(s *domain.Settings) string { return *sel(s) },
		set: func(s *domain.Settings, raw string) error {
			*sel(s) = raw
			return nil
		},
	}
}

func intField(key string, sel func(*domain.Settings) *int) fieldAccessor {
	return fieldAccessor{
		get: func(s *domain.Settings) string { return strconv.Itoa(*sel(s)) },
		set: func(s *domain.Settings, raw string) error {
			v, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return domain.NewConfigError(key, "must be an integer")
			}
			*sel(s) = v
			return nil
		},
	}
}

func floatField(key string, sel func(*domain.Settings) *float64) fieldAccessor {
	return fieldAccessor{
		get: func(s *domain.Settings) string {
			return strconv.FormatFloat(*sel(s), 'g', -1, 64)
		},
		set: func(s *domain.Settings, raw string) error {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return domain.NewConfigError(key, "must be a number")
			}
			*sel(s) = v
			return nil
		},
	}
}

func boolField(key string, sel func(*domain.Settings) *bool) fieldAccessor {
	return fieldAccessor{
		get: func(s *domain.Settings) string { return strconv.FormatBool(*sel(s)) },
		set: func(s *domain.Settings, raw string) error {
			v, err := strconv.ParseBool(strings.TrimSpace(raw))
			if err != nil {
				return domain.NewConfigError(key, "must be true or false")
			}
			*sel(s) = v
			return nil
		},
	}
}

func providerField() fieldAccessor {
	return fieldAccessor{
		get: func(s *domain.Settings) string { return s.Provider.String() },
		set: func(s *domain.Settings, raw string) error {
			p := domain.Provider(strings.ToLower(strings.TrimSpace(raw)))
			if !p.IsValid() {
				return domain.NewConfigError("provider", `must be "ollama" or "openai"`)
			}
			s.Provider = p
			return nil
		},
	}
}

// settingsFields maps every dotted key to its accessor. Set only
// type-checks the one field; full validation runs at startup so keys
// can be changed in any order.
var settingsFields = map[string]fieldAccessor{
	"provider":    providerField(),
	"data_dir":    stringField(func(s *domain.Settings) *string { return &s.DataDir }),
	"corpus_path": stringField(func(s *domain.Settings) *string { return &s.CorpusPath }),
	"store_path":  stringField(func(s *domain.Settings) *string { return &s.StorePath }),

	"ollama.host":           stringField(func(s *domain.Settings) *string { return &s.Ollama.Host }),
	"ollama.embed_model":    stringField(func(s *domain.Settings) *string { return &s.Ollama.EmbedModel }),
	"ollama.generate_model": stringField(func(s *domain.Settings) *string { return &s.Ollama.GenerateModel }),

	"openai.api_key":        stringField(func(s *domain.Settings) *string { return &s.OpenAI.APIKey }),
	"openai.embed_model":    stringField(func(s *domain.Settings) *string { return &s.OpenAI.EmbedModel }),
	"openai.generate_model": stringField(func(s *domain.Settings) *string { return &s.OpenAI.GenerateModel }),

	"router.dataset_threshold": floatField("router.dataset_threshold",
		func(s *domain.Settings) *float64 { return &s.Router.DatasetThreshold }),
	"router.retrieval_floor": floatField("router.retrieval_floor",
		func(s *domain.Settings) *float64 { return &s.Router.RetrievalFloor }),
	"router.retrieval_k": intField("router.retrieval_k",
		func(s *domain.Settings) *int { return &s.Router.RetrievalK }),
	"router.chunk_size": intField("router.chunk_size",
		func(s *domain.Settings) *int { return &s.Router.ChunkSize }),
	"router.chunk_overlap": intField("router.chunk_overlap",
		func(s *domain.Settings) *int { return &s.Router.ChunkOverlap }),
	"router.model_timeout_seconds": intField("router.model_timeout_seconds",
		func(s *domain.Settings) *int { return &s.Router.ModelTimeoutSeconds }),

	"cache.enabled": boolField("cache.enabled",
		func(s *domain.Settings) *bool { return &s.Cache.Enabled }),
	"cache.path": stringField(func(s *domain.Settings) *string { return &s.Cache.Path }),

	"limits.requests_per_second": floatField("limits.requests_per_second",
		func(s *domain.Settings) *float64 { return &s.Limits.RequestsPerSecond }),
	"limits.burst": intField("limits.burst",
		func(s *domain.Settings) *int { return &s.Limits.Burst }),
}
