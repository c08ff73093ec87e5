package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/nba-rankings/internal/model"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0.35, cfg.Weights[model.Points])
	assert.Equal(t, 0.25, cfg.Weights[model.Assists])
	assert.Equal(t, 0.25, cfg.Weights[model.Rebounds])
	assert.Equal(t, 0.125, cfg.Weights[model.Steals])
	assert.Equal(t, 0.125, cfg.Weights[model.Blocks])
	assert.Equal(t, -0.10, cfg.Weights[model.Turnovers])
	assert.Equal(t, 0.005, cfg.TripleDoubleWeight)
	assert.Equal(t, 50, cfg.Top)
	assert.Equal(t, KeepAll, cfg.Stints)
}

func TestWithOverrides(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		want      func(*Weights)
		wantErrs  []string
	}{
		{
			name:      "replace one",
			overrides: map[string]string{"points": "0.5"},
			want:      func(w *Weights) { w[model.Points] = 0.5 },
		},
		{
			name:      "case and whitespace",
			overrides: map[string]string{"Steals": " 0.3 "},
			want:      func(w *Weights) { w[model.Steals] = 0.3 },
		},
		{
			name:      "empty keeps default",
			overrides: map[string]string{"assists": ""},
			want:      func(*Weights) {},
		},
		{
			name:      "invalid keeps default",
			overrides: map[string]string{"rebounds": "lots", "blocks": "0.2"},
			want:      func(w *Weights) { w[model.Blocks] = 0.2 },
			wantErrs:  []string{"rebounds"},
		},
		{
			name:      "non-finite rejected",
			overrides: map[string]string{"points": "NaN", "assists": "+Inf"},
			want:      func(*Weights) {},
			wantErrs:  []string{"assists", "points"},
		},
		{
			name:      "unknown stat",
			overrides: map[string]string{"dunks": "1"},
			want:      func(*Weights) {},
			wantErrs:  []string{"dunks"},
		},
		{
			name:      "signs are free",
			overrides: map[string]string{"turnovers": "0.4", "points": "-1"},
			want: func(w *Weights) {
				w[model.Turnovers] = 0.4
				w[model.Points] = -1
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := Default()
			got, errs := base.WithOverrides(tt.overrides)

			want := DefaultWeights()
			tt.want(&want)
			assert.Equal(t, want, got.Weights)

			var stats []string
			for _, e := range errs {
				stats = append(stats, e.Stat)
				assert.NotEmpty(t, e.Error())
			}
			assert.Equal(t, tt.wantErrs, stats)

			// The receiver is a value and stays untouched.
			assert.Equal(t, DefaultWeights(), base.Weights)
		})
	}
}

func TestParse(t *testing.T) {
	doc := []byte(`
top: 25
stints: merge
weights:
  points: 0.4
  turnovers: -0.2
  blocks: many
`)
	cfg, errs, err := Parse(doc, Default())
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Top)
	assert.Equal(t, Merge, cfg.Stints)
	assert.Equal(t, 0.4, cfg.Weights[model.Points])
	assert.Equal(t, -0.2, cfg.Weights[model.Turnovers])
	assert.Equal(t, 0.125, cfg.Weights[model.Blocks])
	require.Len(t, errs, 1)
	assert.Equal(t, "blocks", errs[0].Stat)
}

func TestParse_StructuralErrors(t *testing.T) {
	for _, doc := range []string{
		"top: -3\n",
		"stints: sometimes\n",
		"top: [1, 2]\n",
	} {
		_, _, err := Parse([]byte(doc), Default())
		assert.Error(t, err, doc)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weights:\n  assists: 0.3\n"), 0o644))

	cfg, errs, err := LoadFile(path, Default())
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, 0.3, cfg.Weights[model.Assists])
	assert.Equal(t, DefaultTop, cfg.Top)

	_, _, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), Default())
	assert.Error(t, err)
}

func TestParseStintPolicy(t *testing.T) {
	p, err := ParseStintPolicy("merge")
	require.NoError(t, err)
	assert.Equal(t, Merge, p)

	_, err = ParseStintPolicy("dedupe")
	assert.Error(t, err)
}
