package cmd

import "github.com/spf13/cobra"

var careerCmd = &cobra.Command{
	Use:   "career",
	Short: "Rank whole careers",
	Long: `Sum each player's season totals into one career line, z-score the careers
against each other, add the triple-double term and every award and all-star
bonus the player collected, and print the top rows.`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runRank(c, modeCareer)
	},
}

func init() {
	addRankFlags(careerCmd)
	addOutputFlags(careerCmd)
}
