package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [query...]",
	Short: "Answer a single customer query",
	Long: `Route one query through the answer cascade and print the reply.

The cascade tries the curated Q&A corpus first, then retrieval-augmented
generation over the knowledge directory, then the canned response
templates. Unsafe and off-topic queries are declined.

Examples:
  bfsi-assistant ask "how is EMI calculated"
  bfsi-assistant ask --json what documents do I need for KYC`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := ensureStack(); err != nil {
		return err
	}
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	query := strings.Join(args, " ")
	answer, err := assistantService.Answer(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("failed to answer query: %w", err)
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}
	return outputAnswerText(cmd, answer)
}

func outputAnswerJSON(cmd *cobra.Command, answer domain.Answer) error {
	payload := struct {
		Answer     string  `json:"answer"`
		Source     string  `json:"source"`
		Confidence float64 `json:"confidence,omitempty"`
		Category   string  `json:"category,omitempty"`
	}{
		Answer:     answer.Text,
		Source:     answer.Source.String(),
		Confidence: answer.Confidence,
		Category:   answer.Category,
	}

	output, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}

	cmd.Println(string(output))
	return nil
}

func outputAnswerText(cmd *cobra.Command, answer domain.Answer) error {
	cmd.Println(answer.Text)
	if tag := answer.Annotation(); tag != "" {
		cmd.Println()
		cmd.Println(tag)
	}
	return nil
}
