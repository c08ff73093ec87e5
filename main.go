// Package main is the entry point for the nbarank CLI tool, which ranks NBA
// player-seasons and careers from Basketball-Reference style datasets.
package main

import "github.com/pable/nba-rankings/cmd"

func main() {
	cmd.Execute()
}
