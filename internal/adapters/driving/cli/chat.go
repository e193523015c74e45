package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start a terminal chat session with the assistant.

Each message runs through the full answer cascade; replies carry a
source tag showing which tier produced them. The transcript lives in
memory only and is gone when the session ends.

Controls:
  Enter      - Send message
  Ctrl+C/Esc - Quit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	// Panic recovery so a rendering bug leaves a stack trace instead
	// of a corrupted terminal.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if err := ensureStack(); err != nil {
		return err
	}
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	app, err := tui.NewChat(&tui.Ports{Assistant: assistantService})
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}
	return nil
}
