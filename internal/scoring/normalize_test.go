package scoring

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/nba-rankings/internal/model"
)

func meanStd(values []float64) (float64, float64) {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}

func TestNormalize_ThreeScorers(t *testing.T) {
	z := Normalize([]float64{30, 20, 10})
	require.Len(t, z, 3)
	assert.InDelta(t, 1.2247, z[0], 1e-4)
	assert.Equal(t, 0.0, z[1])
	assert.InDelta(t, -1.2247, z[2], 1e-4)
	assert.InDelta(t, z[0]-z[1], z[1]-z[2], 1e-12)
}

func TestNormalize_ZeroMeanUnitStd(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := 2 + r.Intn(200)
		values := make([]float64, n)
		for i := range values {
			values[i] = r.Float64() * 40
		}
		values[0] = 100 // guarantees a non-constant column

		mean, std := meanStd(Normalize(values))
		assert.InDelta(t, 0, mean, 1e-9)
		assert.InDelta(t, 1, std, 1e-9)
	}
}

func TestNormalize_ConstantIsExactlyZero(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{"single", []float64{27.1}},
		{"identical", []float64{5, 5, 5, 5}},
		{"zeros", []float64{0, 0}},
		{"inexact decimal", []float64{0.1, 0.1, 0.1}},
		{"inexact decimal long", []float64{27.3, 27.3, 27.3, 27.3, 27.3, 27.3, 27.3}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := Normalize(tt.values)
			require.Len(t, z, len(tt.values))
			for _, v := range z {
				assert.Equal(t, 0.0, v)
				assert.False(t, math.IsNaN(v))
			}
		})
	}
}

func TestNormalizeLines_MissingAndDegenerate(t *testing.T) {
	lines := []model.StatLine{
		{30, 5, 9, 1, 1, 2},
		{20, 5, 8, 1, 2, 3},
		{10, 5, 7, 1, 3, 4},
	}
	present := model.AllPresent &^ (1 << model.Rebounds)

	z, degenerate := NormalizeLines(lines, present)
	require.Len(t, z, 3)

	// Rebounds absent from the schema: zero for every row despite varying values.
	for _, l := range z {
		assert.Equal(t, 0.0, l[model.Rebounds])
	}
	// Assists and steals are constant.
	assert.Equal(t, []model.Stat{model.Assists, model.Steals}, degenerate)
	for _, l := range z {
		assert.Equal(t, 0.0, l[model.Assists])
		assert.Equal(t, 0.0, l[model.Steals])
	}
	assert.InDelta(t, 1.2247, z[0][model.Points], 1e-4)
	assert.InDelta(t, -1.2247, z[0][model.Turnovers], 1e-4)
}

func TestNormalizeLines_SingleRecord(t *testing.T) {
	z, degenerate := NormalizeLines([]model.StatLine{{30, 10, 10, 2, 2, 3}}, model.AllPresent)
	assert.Equal(t, model.StatLine{}, z[0])
	assert.Len(t, degenerate, model.NumStats)
}

func TestNormalizeLines_InexactConstantIsDegenerate(t *testing.T) {
	lines := []model.StatLine{
		{30, 0.1, 9, 1, 1, 2},
		{20, 0.1, 8, 1, 2, 3},
		{10, 0.1, 7, 2, 3, 4},
	}
	z, degenerate := NormalizeLines(lines, model.AllPresent)

	assert.Equal(t, []model.Stat{model.Assists}, degenerate)
	for _, l := range z {
		assert.Equal(t, 0.0, l[model.Assists])
	}
}
