package cmd

import "github.com/spf13/cobra"

var seasonCmd = &cobra.Command{
	Use:   "season",
	Short: "Rank individual player-seasons",
	Long: `Score every per-game row against the whole population: z-score each stat,
apply the weights, add award and all-star bonuses for that season, and print
the top rows.`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runRank(c, modeSeason)
	},
}

func init() {
	addRankFlags(seasonCmd)
	addOutputFlags(seasonCmd)
}
