package file

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driven"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/logger"
)

// Ensure RulesetStore implements the interface.
var _ driven.RulesetStore = (*RulesetStore)(nil)

// defaultRules contains the embedded default ruleset.
//
//go:embed defaults.toml
var defaultRules []byte

// RulesetStore loads routing rules from a user-editable file on disk,
// falling back to embedded defaults when the file is missing or broken.
//
// The store uses lazy initialisation - the rules file is only created
// when first accessed, not in the constructor. This makes testing
// easier and avoids unexpected I/O.
type RulesetStore struct {
	mu       sync.RWMutex
	rulesDir string
	cached   *domain.Ruleset
	initOnce sync.Once
	initErr  error
}

// NewRulesetStore creates a new file-based ruleset store.
// If rulesDir is empty, defaults to ~/.bfsi-assistant/rules/.
//
// The constructor does not perform any I/O - directory creation and
// the default file write happen lazily on first Load() call.
func NewRulesetStore(rulesDir string) (*RulesetStore, error) {
	if rulesDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		rulesDir = filepath.Join(home, ".bfsi-assistant", "rules")
	}

	return &RulesetStore{rulesDir: rulesDir}, nil
}

// Load returns the active ruleset.
// On first call, initialises the rules directory and writes the default
// file. A corrupt or invalid user file falls back to the embedded
// defaults with a warning rather than failing.
func (s *RulesetStore) Load() (*domain.Ruleset, error) {
	s.initOnce.Do(s.initialise)

	// Check cache first (read lock)
	s.mu.RLock()
	if s.cached != nil {
		rules := s.cached
		s.mu.RUnlock()
		return rules, nil
	}
	s.mu.RUnlock()

	if s.initErr != nil {
		logger.Warn("Ruleset: init failed, using embedded defaults: %v", s.initErr)
		return embeddedRuleset()
	}

	rules, err := s.loadFromFile()
	if err != nil {
		logger.Warn("Ruleset: %v, using embedded defaults", err)
		return embeddedRuleset()
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if s.cached == nil {
		s.cached = rules
	} else {
		rules = s.cached
	}
	s.mu.Unlock()

	return rules, nil
}

// Reload clears the cached ruleset, forcing a fresh load from disk.
func (s *RulesetStore) Reload() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// Dir returns the rules directory path.
func (s *RulesetStore) Dir() string {
	return s.rulesDir
}

// initialise creates the rules directory and the default rules file.
// Called once via sync.Once on first Load().
func (s *RulesetStore) initialise() {
	if err := os.MkdirAll(s.rulesDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create rules directory: %w", err)
		return
	}

	// Materialise the defaults so users have something to edit
	path := s.rulesPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, defaultRules, 0600); err != nil {
			s.initErr = fmt.Errorf("create default rules file: %w", err)
			return
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile parses the user rules file and overlays it on the
// embedded defaults, so a partial file keeps defaults for omitted keys.
func (s *RulesetStore) loadFromFile() (*domain.Ruleset, error) {
	defaults, err := embeddedRuleset()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.rulesPath())
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var user domain.Ruleset
	if err := toml.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.rulesPath(), err)
	}

	rules := mergeRuleset(defaults, &user)
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", s.rulesPath(), err)
	}

	return rules, nil
}

// mergeRuleset overlays the non-empty fields of user on defaults.
// Merging is whole-field: a user template list replaces the default
// list entirely rather than splicing into it.
func mergeRuleset(defaults, user *domain.Ruleset) *domain.Ruleset {
	merged := *defaults

	if len(user.UnsafeKeywords) > 0 {
		merged.UnsafeKeywords = user.UnsafeKeywords
	}
	if len(user.OutOfDomainKeywords) > 0 {
		merged.OutOfDomainKeywords = user.OutOfDomainKeywords
	}
	if len(user.ComplexKeywords) > 0 {
		merged.ComplexKeywords = user.ComplexKeywords
	}
	if len(user.Templates) > 0 {
		merged.Templates = user.Templates
	}
	if user.UnsafeResponse != "" {
		merged.UnsafeResponse = user.UnsafeResponse
	}
	if user.OutOfDomainResponse != "" {
		merged.OutOfDomainResponse = user.OutOfDomainResponse
	}
	if user.DefaultResponse != "" {
		merged.DefaultResponse = user.DefaultResponse
	}
	if user.Disclaimer != "" {
		merged.Disclaimer = user.Disclaimer
	}
	if user.AnswerPrompt != "" {
		merged.AnswerPrompt = user.AnswerPrompt
	}

	return &merged
}

// embeddedRuleset parses the compiled-in defaults. Failure here is a
// build defect, not a runtime condition.
func embeddedRuleset() (*domain.Ruleset, error) {
	var rules domain.Ruleset
	if err := toml.Unmarshal(defaultRules, &rules); err != nil {
		return nil, fmt.Errorf("parsing embedded ruleset: %w", err)
	}
	return &rules, nil
}

func (s *RulesetStore) rulesPath() string {
	return filepath.Join(s.rulesDir, "rules.toml")
}

// createReadme writes a README file explaining the rules directory.
func (s *RulesetStore) createReadme() error {
	path := filepath.Join(s.rulesDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Routing Rules

This directory contains the keyword tables and canned responses that
drive query routing.

## Files

- ` + "`rules.toml`" + ` - Keyword lists, response templates and fixed texts

## Customisation

Edit rules.toml to add template categories, tune keyword lists, or
reword responses. Changes take effect on the next command or after
restarting the chat session. Keywords are matched as lowercase
substrings of the query.

If the file fails to parse or validate, the built-in defaults are used
and a warning is logged. Delete rules.toml to regenerate the defaults.

## Format Placeholders

` + "`answer_prompt`" + ` uses Go fmt placeholders: the first ` + "`%s`" + ` receives the
retrieved context, the second receives the user question. Keep both in
that order.
`
	return os.WriteFile(path, []byte(content), 0600)
}
