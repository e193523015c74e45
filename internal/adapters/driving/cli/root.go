package cli

import (
	"github.com/spf13/cobra"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driven"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/ports/driving"
	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// Services backing the commands. main injects them through the Set
// functions; tests assign the package variables directly.
var (
	assistantService driving.Assistant
	knowledgeService driving.KnowledgeAdmin
	corpusService    driving.CorpusInspector
	settingsStore    driven.SettingsStore
)

// Deferred wiring hooks, installed by main. openSettings creates the
// settings store; buildStack wires the full answering stack. Each runs
// at most once, on first use. The split keeps settings and version
// usable when the model stack cannot start, so a broken provider
// configuration can still be repaired from the CLI.
var (
	openSettings func(configDir string) error
	buildStack   func(configDir string) error
)

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "bfsi-assistant",
	Short: "BFSI call-centre assistant",
	Long: `bfsi-assistant answers banking, financial services and insurance
queries through a tiered cascade: a keyword guardrail, a curated Q&A
corpus, retrieval-augmented generation over local documents, and a set
of canned response templates.

Start an interactive session with "bfsi-assistant chat", or answer a
single query with "bfsi-assistant ask".`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose diagnostic output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "configuration directory (default ~/.bfsi-assistant)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetAssistant injects the assistant service.
func SetAssistant(service driving.Assistant) {
	assistantService = service
}

// SetKnowledge injects the knowledge admin service.
func SetKnowledge(service driving.KnowledgeAdmin) {
	knowledgeService = service
}

// SetCorpus injects the corpus inspector.
func SetCorpus(service driving.CorpusInspector) {
	corpusService = service
}

// SetSettingsStore injects the settings store.
func SetSettingsStore(store driven.SettingsStore) {
	settingsStore = store
}

// SetSettingsOpener installs the hook that creates the settings store
// on first use.
func SetSettingsOpener(fn func(configDir string) error) {
	openSettings = fn
}

// SetStackBuilder installs the hook that wires the answering stack on
// first use.
func SetStackBuilder(fn func(configDir string) error) {
	buildStack = fn
}

// ensureSettings runs the deferred settings wiring once.
func ensureSettings() error {
	if settingsStore != nil || openSettings == nil {
		return nil
	}
	return openSettings(configDir)
}

// ensureStack runs the deferred stack wiring once.
func ensureStack() error {
	if assistantService != nil || buildStack == nil {
		return nil
	}
	return buildStack(configDir)
}
