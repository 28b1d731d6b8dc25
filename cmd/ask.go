package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// askCmd answers a single question and prints the response envelope.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the pursuit database",
	Long: `Classify a natural-language question, run the matching SQL query, and
print the results as JSON.

Examples:
  pursuitql ask "largest projects in 2026"
  pursuitql ask "healthcare projects for TAMU over 5 million"
  pursuitql ask "compare 2025 vs 2026"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	eng, db, err := buildPipeline(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	resp, err := eng.Ask(cmd.Context(), question)
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func init() {
	rootCmd.AddCommand(askCmd)
}
