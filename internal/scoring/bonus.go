package scoring

import (
	"sort"
	"strings"

	"github.com/pable/nba-rankings/internal/model"
)

// AllStarBonus is the flat score added per all-star selection.
const AllStarBonus = 0.2

// AwardTable maps a lower-cased award name to its bonus weight. A player
// receives weight * share for each award row.
type AwardTable map[string]float64

// Weight returns the bonus weight for an award name; unknown awards weigh 0.
func (t AwardTable) Weight(award string) float64 {
	return t[strings.ToLower(strings.TrimSpace(award))]
}

// SeasonAwards weights awards for single-season rankings.
var SeasonAwards = AwardTable{
	"nba mvp":  0.5,
	"nba dpoy": 0.25,
	"nba roy":  0.1,
	"nba smoy": 0.05,
	"nba mip":  0.05,
}

// CareerAwards weights awards for career rankings. Defensive player of the
// year counts for more over a career.
var CareerAwards = AwardTable{
	"nba mvp":  0.5,
	"nba dpoy": 0.35,
	"nba roy":  0.1,
	"nba smoy": 0.05,
	"nba mip":  0.05,
}

// SeasonKeyOf keys bonus rows by player and season.
func SeasonKeyOf(playerID string, season int) model.SeasonKey {
	return model.SeasonKey{PlayerID: playerID, Season: season}
}

// CareerKeyOf keys bonus rows by player only; the season is ignored.
func CareerKeyOf(playerID string, _ int) model.CareerKey {
	return model.CareerKey{PlayerID: playerID}
}

// FoldBonuses sums award and all-star contributions per join key. The key
// function fixes the join granularity, so the result can only be looked up
// with keys of the same mode. Keys with no rows are absent, i.e. contribute 0.
//
// Contributions for a key are summed in sorted order, so the result does not
// depend on the order of the input rows, bit for bit.
func FoldBonuses[K comparable](awards []model.AwardRecord, allStars []model.AllStarRecord,
	table AwardTable, keyOf func(playerID string, season int) K) map[K]float64 {
	parts := make(map[K][]float64)
	for _, a := range awards {
		w := table.Weight(a.Award)
		if w <= 0 {
			continue
		}
		k := keyOf(a.PlayerID, a.Season)
		parts[k] = append(parts[k], w*a.Share)
	}
	for _, s := range allStars {
		k := keyOf(s.PlayerID, s.Season)
		parts[k] = append(parts[k], AllStarBonus)
	}

	out := make(map[K]float64, len(parts))
	for k, p := range parts {
		sort.Float64s(p)
		var sum float64
		for _, v := range p {
			sum += v
		}
		out[k] = sum
	}
	return out
}
