package scoring

import (
	"fmt"

	"github.com/pable/nba-rankings/internal/aggregator"
	"github.com/pable/nba-rankings/internal/config"
	"github.com/pable/nba-rankings/internal/model"
)

// Diagnostics lists the non-fatal conditions absorbed during a run.
type Diagnostics struct {
	Population int          // records scored, before truncation
	InputRows  int          // source rows, before stint handling or grouping
	Missing    []model.Stat // categories absent from the input schema, scored as 0
	Degenerate []model.Stat // categories with zero variance, scored as 0
	BonusKeys  int          // distinct join keys that received a bonus
}

// Result is the ranked output of one run.
type Result[T any] struct {
	Rows        []Ranked[T]
	Diagnostics Diagnostics
}

// RankSeasons scores every per-game row (one player-season-stint, or one
// player-season under the merge policy) and returns the top cfg.Top rows.
func RankSeasons(ds model.Dataset, cfg config.Config) (Result[model.PlayerRecord], error) {
	if ds.Players == nil || ds.Awards == nil || ds.AllStars == nil {
		return Result[model.PlayerRecord]{}, fmt.Errorf("season ranking: %w", model.ErrInputUnavailable)
	}

	players := ds.Players
	if cfg.Stints == config.Merge {
		players = aggregator.MergeSeasonStints(players)
	}

	lines := make([]model.StatLine, len(players))
	for i, p := range players {
		lines[i] = p.Stats
	}
	z, degenerate := NormalizeLines(lines, ds.PlayerStats)
	bonus := FoldBonuses(ds.Awards, ds.AllStars, SeasonAwards, SeasonKeyOf)

	scored := make([]Scored[model.PlayerRecord], len(players))
	for i, p := range players {
		scored[i] = Scored[model.PlayerRecord]{
			Record: p,
			Score:  Compose(z[i], cfg.Weights) + bonus[p.Key()],
		}
	}

	return Result[model.PlayerRecord]{
		Rows: Rank(scored, cfg.Top),
		Diagnostics: Diagnostics{
			Population: len(players),
			InputRows:  len(ds.Players),
			Missing:    ds.PlayerStats.Missing(),
			Degenerate: degenerate,
			BonusKeys:  len(bonus),
		},
	}, nil
}

// RankCareers sums each player's totals rows into one career row, scores the
// careers against each other and returns the top cfg.Top.
func RankCareers(ds model.Dataset, cfg config.Config) (Result[model.CareerRecord], error) {
	if ds.Totals == nil || ds.Awards == nil || ds.AllStars == nil {
		return Result[model.CareerRecord]{}, fmt.Errorf("career ranking: %w", model.ErrInputUnavailable)
	}

	totals := ds.Totals
	if cfg.Stints == config.Merge {
		totals = aggregator.DropStintRows(totals)
	}
	careers := aggregator.Careers(totals)

	lines := make([]model.StatLine, len(careers))
	for i, c := range careers {
		lines[i] = c.Stats
	}
	z, degenerate := NormalizeLines(lines, ds.TotalsStats)
	bonus := FoldBonuses(ds.Awards, ds.AllStars, CareerAwards, CareerKeyOf)

	scored := make([]Scored[model.CareerRecord], len(careers))
	for i, c := range careers {
		base := Compose(z[i], cfg.Weights) + cfg.TripleDoubleWeight*c.TripleDoubles
		scored[i] = Scored[model.CareerRecord]{
			Record: c,
			Score:  base + bonus[c.Key()],
		}
	}

	return Result[model.CareerRecord]{
		Rows: Rank(scored, cfg.Top),
		Diagnostics: Diagnostics{
			Population: len(careers),
			InputRows:  len(ds.Totals),
			Missing:    ds.TotalsStats.Missing(),
			Degenerate: degenerate,
			BonusKeys:  len(bonus),
		},
	}, nil
}
