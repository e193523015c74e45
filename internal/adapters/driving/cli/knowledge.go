package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jamal-bin-habeeb/BFSI-Call-Center-AI-Assistant/internal/core/domain"
)

var knowledgeSearchK int

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Manage the knowledge chunk store",
	Long: `Inspect and rebuild the chunk store behind the retrieval tier.

The store is built from the documents in the knowledge directory and
persisted as a single artifact. It rebuilds automatically when the
directory changes; use these commands to force a rebuild or to check
what is currently indexed.`,
}

var knowledgeRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the chunk store from the knowledge directory",
	RunE:  runKnowledgeRebuild,
}

var knowledgeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show chunk store state and contents",
	RunE:  runKnowledgeStatus,
}

var knowledgeSearchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Retrieve raw chunks for a query",
	Long: `Run a retrieval against the chunk store and print the scored chunks.

This bypasses the answer cascade entirely; no text is generated. Useful
for checking what the retrieval tier would feed the model.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runKnowledgeSearch,
}

func init() {
	knowledgeSearchCmd.Flags().IntVarP(&knowledgeSearchK, "limit", "n", 5, "maximum number of chunks")
	knowledgeCmd.AddCommand(knowledgeRebuildCmd)
	knowledgeCmd.AddCommand(knowledgeStatusCmd)
	knowledgeCmd.AddCommand(knowledgeSearchCmd)
	rootCmd.AddCommand(knowledgeCmd)
}

func runKnowledgeRebuild(cmd *cobra.Command, _ []string) error {
	if err := ensureStack(); err != nil {
		return err
	}
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	cmd.Println("Rebuilding knowledge store...")
	count, err := knowledgeService.Rebuild(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to rebuild knowledge store: %w", err)
	}

	cmd.Printf("Indexed %d chunks.\n", count)
	return nil
}

func runKnowledgeStatus(cmd *cobra.Command, _ []string) error {
	if err := ensureStack(); err != nil {
		return err
	}
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	status := knowledgeService.Status()

	cmd.Println("Knowledge Store")
	cmd.Println("===============")
	cmd.Printf("  State:      %s\n", status.State)
	if status.Stale {
		cmd.Println("  Stale:      yes (rebuild pending)")
	}
	cmd.Printf("  Chunks:     %d\n", status.Chunks)
	if status.Model != "" {
		cmd.Printf("  Model:      %s\n", status.Model)
		cmd.Printf("  Dimensions: %d\n", status.Dimensions)
	}
	cmd.Printf("  Artifact:   %s\n", status.ArtifactPath)
	return nil
}

func runKnowledgeSearch(cmd *cobra.Command, args []string) error {
	if err := ensureStack(); err != nil {
		return err
	}
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	query := strings.Join(args, " ")
	chunks, err := knowledgeService.Search(cmd.Context(), query, knowledgeSearchK)
	if err != nil {
		return fmt.Errorf("failed to search knowledge store: %w", err)
	}

	return outputChunks(cmd, chunks)
}

func outputChunks(cmd *cobra.Command, chunks []domain.ScoredChunk) error {
	if len(chunks) == 0 {
		cmd.Println("No chunks found")
		return nil
	}

	cmd.Printf("Found %d chunks:\n\n", len(chunks))
	for i, chunk := range chunks {
		cmd.Printf("%d. [%.3f] %s\n", i+1, chunk.Score, chunk.Source)
		cmd.Printf("   %s\n", snippet(chunk.Text, 160))
	}
	return nil
}

// snippet collapses whitespace and truncates to at most n runes.
func snippet(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
