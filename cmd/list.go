package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/nba-rankings/internal/report"
	"github.com/pable/nba-rankings/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show what is stored in the database",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(c *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	sums, err := db.Summary()
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	empty := true
	for _, s := range sums {
		if s.Rows > 0 {
			empty = false
		}
	}
	if empty {
		fmt.Fprintln(c.OutOrStdout(), "No datasets imported yet. Run 'nbarank import <dir>' to add them.")
		return nil
	}
	report.PrintSummary(c.OutOrStdout(), sums)
	return nil
}
