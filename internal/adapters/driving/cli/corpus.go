package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect the curated Q&A corpus",
	Long: `Commands for the curated question/answer corpus behind the dataset
tier. The corpus is a CSV file embedded once at startup.`,
}

var corpusInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show corpus location and contents",
	RunE:  runCorpusInfo,
}

func init() {
	corpusCmd.AddCommand(corpusInfoCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusInfo(cmd *cobra.Command, _ []string) error {
	if err := ensureStack(); err != nil {
		return err
	}
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	cmd.Println("Q&A Corpus")
	cmd.Println("==========")
	cmd.Printf("  Path:    %s\n", corpusService.Path())
	cmd.Printf("  Entries: %d\n", corpusService.Size())
	cmd.Printf("  Model:   %s\n", corpusService.Model())

	if corpusService.Size() == 0 {
		cmd.Println()
		cmd.Println("The corpus is empty; the dataset tier never matches.")
	}
	return nil
}
