package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/nba-rankings/internal/model"
	"github.com/pable/nba-rankings/internal/report"
	"github.com/pable/nba-rankings/internal/scoring"
)

var playerCareer bool

// playerCmd shows where given players land in the full ranking.
var playerCmd = &cobra.Command{
	Use:   "player <player_id> [<player_id>...]",
	Short: "Show the rank of one or more players within the full population",
	Long: `Rank the whole population with the current configuration, without truncation,
and print only the rows of the given players. Ranks are population ranks,
so there is no --top.
Use --career to look up career ranks instead of season ranks.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlayer,
}

func init() {
	addInputFlags(playerCmd)
	addOutputFlags(playerCmd)
	playerCmd.Flags().BoolVar(&playerCareer, "career", false, "look up career ranks")
}

func runPlayer(c *cobra.Command, args []string) error {
	format, err := report.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(c, c.InOrStdin(), c.ErrOrStderr())
	if err != nil {
		return err
	}
	// Population ranks need the untruncated ranking; a top from --config
	// does not apply here.
	cfg.Top = 0

	m := modeSeason
	if playerCareer {
		m = modeCareer
	}
	ds, err := loadDataset(m)
	if err != nil {
		return err
	}

	want := make(map[string]bool, len(args))
	for _, id := range args {
		want[id] = true
	}
	w := c.OutOrStdout()

	if m == modeCareer {
		res, err := scoring.RankCareers(ds, cfg)
		if err != nil {
			return err
		}
		rows := pick(res.Rows, func(r model.CareerRecord) string { return r.PlayerID }, want)
		warnUnknown(c, args, rows, func(r model.CareerRecord) string { return r.PlayerID })
		return report.WriteCareerRanking(w, format, rows)
	}

	res, err := scoring.RankSeasons(ds, cfg)
	if err != nil {
		return err
	}
	rows := pick(res.Rows, func(r model.PlayerRecord) string { return r.PlayerID }, want)
	warnUnknown(c, args, rows, func(r model.PlayerRecord) string { return r.PlayerID })
	return report.WriteSeasonRanking(w, format, rows)
}

func pick[T any](rows []scoring.Ranked[T], id func(T) string, want map[string]bool) []scoring.Ranked[T] {
	var out []scoring.Ranked[T]
	for _, r := range rows {
		if want[id(r.Record)] {
			out = append(out, r)
		}
	}
	return out
}

func warnUnknown[T any](c *cobra.Command, args []string, rows []scoring.Ranked[T], id func(T) string) {
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		seen[id(r.Record)] = true
	}
	for _, a := range args {
		if !seen[a] {
			fmt.Fprintf(c.ErrOrStderr(), "No data found for player %s\n", a)
		}
	}
}
