package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change configuration values by dotted key.

Values live in config.toml under the configuration directory. Keys use
dotted paths, e.g. "ollama.host" or "router.dataset_threshold". Run
"settings list" to see every key.`,
	RunE: runSettingsList,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every setting",
	RunE:  runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change a setting and persist it immediately.

When the value is omitted for a secret key (openai.api_key) the new
value is prompted for with terminal echo turned off.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsList(cmd *cobra.Command, _ []string) error {
	if err := ensureSettings(); err != nil {
		return err
	}
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("File: %s\n", settingsStore.Path())
	cmd.Println()

	for _, key := range settingsStore.Keys() {
		value, _ := settingsStore.Get(key)
		if isSecretKey(key) && value != "" {
			value = maskAPIKey(value)
		}
		if value == "" {
			value = "(not set)"
		}
		cmd.Printf("  %-30s %s\n", key, value)
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if err := ensureSettings(); err != nil {
		return err
	}
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	value, ok := settingsStore.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown setting %q", args[0])
	}
	if isSecretKey(args[0]) && value != "" {
		value = maskAPIKey(value)
	}

	cmd.Println(value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if err := ensureSettings(); err != nil {
		return err
	}
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	key := args[0]

	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case isSecretKey(key):
		cmd.Print("Enter value: ")
		value = readPassword()
		cmd.Println()
	default:
		return errors.New("missing value argument")
	}

	if err := settingsStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	shown := value
	if isSecretKey(key) {
		shown = maskAPIKey(value)
	}
	cmd.Printf("%s = %s\n", key, shown)
	return nil
}

// Helper functions.

// isSecretKey reports whether a setting must never be echoed in full.
func isSecretKey(key string) bool {
	return strings.HasSuffix(key, "api_key")
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
