package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/nba-rankings/internal/report"
	"github.com/pable/nba-rankings/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the dataset database",
	Long: `Run an arbitrary SQL query against the imported datasets and print results as a table.

Schema overview:
  player_seasons(row_num, player_id, player, season, pos, team, g,
    pts, ast, trb, stl, blk, tov)                      -- per-game rates
  player_totals(row_num, player_id, player, season, team, g,
    pts, ast, trb, stl, blk, tov, trp_dbl)             -- season totals
  award_shares(row_num, player_id, season, award, share)
  all_star_selections(row_num, player_id, season)

Multi-team seasons appear once per team plus a combined row with team TOT or 2TM, 3TM...
Example: nbarank sql "SELECT player, season, pts FROM player_seasons WHERE team = 'TOT' ORDER BY pts DESC LIMIT 10"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(c *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	return printQuery(c.OutOrStdout(), db, query)
}

func printQuery(w io.Writer, db *storage.DB, query string) error {
	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	report.PrintQueryResult(w, cols, rows)
	return nil
}
