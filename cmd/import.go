package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pable/nba-rankings/internal/loader"
	"github.com/pable/nba-rankings/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import the CSV datasets into the database",
	Long: `Read the four CSV datasets from <dir> and store them in the database,
replacing anything imported before. Row order is preserved so rankings read
from the database match rankings read from the files.

Expected files:
  Player per Game.csv
  Player Totals.csv
  Player Award Shares.csv
  All-Star Selections.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(c *cobra.Command, args []string) error {
	dir := args[0]
	ds, err := loader.LoadDir(dir, loader.PerGame, loader.Totals, loader.Awards, loader.AllStars)
	if err != nil {
		return err
	}

	if !storage.IsPostgresDSN(dbPath) {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if err := db.ImportDataset(ds); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	slog.Info("dataset imported", "dir", dir,
		"per_game", len(ds.Players), "totals", len(ds.Totals),
		"awards", len(ds.Awards), "all_stars", len(ds.AllStars))
	for _, st := range ds.PlayerStats.Missing() {
		slog.Warn("per-game file has no column for stat", "stat", st)
	}
	for _, st := range ds.TotalsStats.Missing() {
		slog.Warn("totals file has no column for stat", "stat", st)
	}

	fmt.Fprintf(c.OutOrStdout(), "Imported %s per-game rows, %s totals rows, %s award rows, %s all-star rows into %s\n",
		humanize.Comma(int64(len(ds.Players))), humanize.Comma(int64(len(ds.Totals))),
		humanize.Comma(int64(len(ds.Awards))), humanize.Comma(int64(len(ds.AllStars))), dbPath)
	return nil
}
