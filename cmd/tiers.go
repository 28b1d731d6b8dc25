package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rmone/pursuitql/internal/store"
	"github.com/rmone/pursuitql/internal/tiers"
)

// tiersCmd prints the current size tier boundaries.
var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Show project size tier boundaries",
	Long: `Compute the fee percentile boundaries that split projects into
Micro, Small, Medium, Large, and Mega tiers.

Examples:
  pursuitql tiers
  pursuitql tiers --refresh`,
	RunE: runTiers,
}

func runTiers(cmd *cobra.Command, args []string) error {
	dsn := databaseURL()
	if dsn == "" {
		return fmt.Errorf("no database configured: set database.url or DATABASE_URL")
	}

	db, err := store.Open(cmd.Context(), dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	refresh, _ := cmd.Flags().GetBool("refresh")
	boundaries, err := tiers.NewCalculator(db).Boundaries(cmd.Context(), refresh)
	if err != nil {
		return fmt.Errorf("computing tier boundaries: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(boundaries)
}

func init() {
	tiersCmd.Flags().Bool("refresh", false, "recompute boundaries, bypassing the cache")
	rootCmd.AddCommand(tiersCmd)
}
