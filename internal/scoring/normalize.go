package scoring

import (
	"math"

	"github.com/pable/nba-rankings/internal/model"
)

// Normalize returns the population z-score of every value:
// (x - mean) / stddev, where stddev is the population standard deviation.
// Constant input (including a single value) and empty input give exactly 0
// for every result.
func Normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	// A constant column scores exactly 0; its computed stddev may carry
	// rounding residue and is not trusted.
	lo, hi := values[0], values[0]
	var sum float64
	for _, v := range values {
		sum += v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return out
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(len(values)))
	if std == 0 || math.IsNaN(std) {
		return out
	}

	for i, v := range values {
		out[i] = (v - mean) / std
	}
	return out
}

// NormalizeLines z-scores every category across lines. Categories missing
// from present are left at 0 for every line. It also returns the present
// categories whose distribution was degenerate (zero variance).
func NormalizeLines(lines []model.StatLine, present model.StatSet) ([]model.StatLine, []model.Stat) {
	out := make([]model.StatLine, len(lines))
	col := make([]float64, len(lines))
	var degenerate []model.Stat

	for _, st := range model.AllStats {
		if !present.Has(st) {
			continue
		}
		for i, l := range lines {
			col[i] = l[st]
		}
		z := Normalize(col)
		allZero := true
		for i, v := range z {
			out[i][st] = v
			if v != 0 {
				allZero = false
			}
		}
		if allZero && len(lines) > 0 {
			degenerate = append(degenerate, st)
		}
	}
	return out, degenerate
}
