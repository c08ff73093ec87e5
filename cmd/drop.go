package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/nba-rankings/internal/storage"
)

var dropForce bool

// dropCmd deletes the dataset database file.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the dataset database",
	Long:  "Permanently delete the SQLite dataset database. Run 'nbarank import <dir>' afterwards to rebuild it.",
	Args:  cobra.NoArgs,
	RunE:  runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(c *cobra.Command, args []string) error {
	if storage.IsPostgresDSN(dbPath) {
		return errors.New("drop only removes SQLite files; drop the Postgres tables by hand")
	}
	if !dropForce {
		fmt.Fprintf(c.ErrOrStderr(), "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(c.ErrOrStderr(), "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(c.OutOrStdout(), "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	// WAL side files.
	os.Remove(dbPath + "-wal")
	os.Remove(dbPath + "-shm")
	fmt.Fprintf(c.OutOrStdout(), "Deleted: %s\n", dbPath)
	return nil
}
