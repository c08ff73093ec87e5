// Package aggregator groups raw stat rows by player identity: whole careers
// from season totals, and single player-seasons from per-team stints.
package aggregator

import (
	"fmt"

	"github.com/pable/nba-rankings/internal/model"
)

// Careers sums games, counting stats and triple-doubles across every row of
// each player. Output order follows the first appearance of each player in
// rows, so ties downstream resolve by input order.
func Careers(rows []model.TotalsRecord) []model.CareerRecord {
	index := make(map[string]int)
	seasons := make(map[string]map[int]bool)
	var out []model.CareerRecord

	for _, r := range rows {
		i, ok := index[r.PlayerID]
		if !ok {
			i = len(out)
			index[r.PlayerID] = i
			seasons[r.PlayerID] = make(map[int]bool)
			out = append(out, model.CareerRecord{PlayerID: r.PlayerID})
		}
		c := &out[i]
		if c.Player == "" {
			c.Player = r.Player
		}
		c.Games += r.Games
		c.Stats = c.Stats.Add(r.Stats)
		c.TripleDoubles += r.TripleDoubles
		seasons[r.PlayerID][r.Season] = true
	}

	for i := range out {
		out[i].Seasons = len(seasons[out[i].PlayerID])
	}
	return out
}

// MergeSeasonStints collapses per-game rows sharing a (player, season) into
// one row. If the group carries a combined row (team "TOT" or "2TM", "3TM",
// ...) that row is kept as is. Otherwise games are summed and each per-game
// rate is averaged weighted by games played. Output order follows the first
// row of each group.
func MergeSeasonStints(rows []model.PlayerRecord) []model.PlayerRecord {
	type group struct {
		rows []model.PlayerRecord
	}
	index := make(map[model.SeasonKey]int)
	var groups []*group
	for _, r := range rows {
		k := r.Key()
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, &group{})
		}
		groups[i].rows = append(groups[i].rows, r)
	}

	out := make([]model.PlayerRecord, 0, len(groups))
	for _, g := range groups {
		out = append(out, mergeStints(g.rows))
	}
	return out
}

func mergeStints(rows []model.PlayerRecord) model.PlayerRecord {
	if len(rows) == 1 {
		return rows[0]
	}
	for _, r := range rows {
		if model.IsAggregateTeam(r.Team) {
			return r
		}
	}

	merged := rows[0]
	merged.Team = fmt.Sprintf("%dTM", len(rows))
	merged.Games = 0
	merged.Stats = model.StatLine{}

	var weighted model.StatLine
	var plain model.StatLine
	for _, r := range rows {
		merged.Games += r.Games
		for _, st := range model.AllStats {
			weighted[st] += r.Stats[st] * float64(r.Games)
			plain[st] += r.Stats[st]
		}
	}
	for _, st := range model.AllStats {
		if merged.Games > 0 {
			merged.Stats[st] = weighted[st] / float64(merged.Games)
		} else {
			merged.Stats[st] = plain[st] / float64(len(rows))
		}
	}
	return merged
}

// DropStintRows removes per-team totals rows for player-seasons that also
// carry a combined row, so summing the result counts each season once.
func DropStintRows(rows []model.TotalsRecord) []model.TotalsRecord {
	combined := make(map[model.SeasonKey]bool)
	for _, r := range rows {
		if model.IsAggregateTeam(r.Team) {
			combined[model.SeasonKey{PlayerID: r.PlayerID, Season: r.Season}] = true
		}
	}
	if len(combined) == 0 {
		return rows
	}

	out := make([]model.TotalsRecord, 0, len(rows))
	for _, r := range rows {
		k := model.SeasonKey{PlayerID: r.PlayerID, Season: r.Season}
		if combined[k] && !model.IsAggregateTeam(r.Team) {
			continue
		}
		out = append(out, r)
	}
	return out
}
