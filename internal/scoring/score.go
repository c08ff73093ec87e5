package scoring

import (
	"sort"

	"github.com/pable/nba-rankings/internal/config"
	"github.com/pable/nba-rankings/internal/model"
)

// Scored pairs a record with its composite score.
type Scored[T any] struct {
	Record T
	Score  float64
}

// Ranked is one row of the output table.
type Ranked[T any] struct {
	Rank   int
	Record T
	Score  float64
}

// Compose returns the weighted sum of normalized category values. Weights may
// have any sign; the result is not clamped.
func Compose(z model.StatLine, w config.Weights) float64 {
	var score float64
	for _, st := range model.AllStats {
		score += w[st] * z[st]
	}
	return score
}

// Rank orders scored records by score descending, keeping input order for
// equal scores, assigns 1-based consecutive ranks and keeps the first n rows.
// n <= 0 keeps every row. The input slice is not modified.
func Rank[T any](scored []Scored[T], n int) []Ranked[T] {
	idx := make([]int, len(scored))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scored[idx[a]].Score > scored[idx[b]].Score
	})

	if n <= 0 || n > len(idx) {
		n = len(idx)
	}
	out := make([]Ranked[T], n)
	for i := 0; i < n; i++ {
		s := scored[idx[i]]
		out[i] = Ranked[T]{Rank: i + 1, Record: s.Record, Score: s.Score}
	}
	return out
}
