// Package config builds the immutable ranking configuration: stat weights,
// output size and the stint policy. A Config is constructed once at the
// process boundary and passed by value into the scoring pipeline.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/pable/nba-rankings/internal/model"
)

// Default values.
const (
	DefaultTop                = 50
	DefaultTripleDoubleWeight = 0.005
)

// StintPolicy controls how multiple team-stint rows of one player-season are
// treated before scoring.
type StintPolicy string

const (
	// KeepAll scores every row independently.
	KeepAll StintPolicy = "keep-all"
	// Merge collapses the rows of a player-season into one.
	Merge StintPolicy = "merge"
)

// Weights maps each stat category to a signed weight.
type Weights [model.NumStats]float64

// DefaultWeights returns the stock category weights.
func DefaultWeights() Weights {
	var w Weights
	w[model.Points] = 0.35
	w[model.Assists] = 0.25
	w[model.Rebounds] = 0.25
	w[model.Steals] = 0.125
	w[model.Blocks] = 0.125
	w[model.Turnovers] = -0.10
	return w
}

// Config is the full ranking configuration.
type Config struct {
	Weights            Weights
	TripleDoubleWeight float64 // career mode only, applied to the raw count
	Top                int
	Stints             StintPolicy
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Weights:            DefaultWeights(),
		TripleDoubleWeight: DefaultTripleDoubleWeight,
		Top:                DefaultTop,
		Stints:             KeepAll,
	}
}

// ConfigError describes a rejected weight override. The default for that
// stat stays in effect.
type ConfigError struct {
	Stat   string
	Value  string
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("weight %s=%q: %s", e.Stat, e.Value, e.Reason)
}

// WithOverrides returns a copy of c with the given stat weights replaced.
// Keys are stat names, values are decimal strings. An empty value keeps the
// current weight. Each rejected entry leaves its previous value in place and
// is reported; it never aborts the whole override.
func (c Config) WithOverrides(overrides map[string]string) (Config, []ConfigError) {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []ConfigError
	for _, name := range names {
		raw := strings.TrimSpace(overrides[name])
		st, ok := model.ParseStat(name)
		if !ok {
			errs = append(errs, ConfigError{Stat: name, Value: raw, Reason: "unknown stat"})
			continue
		}
		if raw == "" {
			continue
		}
		v, err := parseWeight(raw)
		if err != nil {
			errs = append(errs, ConfigError{Stat: st.String(), Value: raw, Reason: err.Error()})
			continue
		}
		c.Weights[st] = v
	}
	return c, errs
}

func parseWeight(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New("not a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not a finite number")
	}
	return v, nil
}

// ---- YAML file ----

var validate = validator.New(validator.WithRequiredStructEnabled())

// fileConfig is the on-disk schema:
//
//	top: 25
//	stints: merge
//	weights:
//	  points: 0.4
//	  turnovers: -0.2
type fileConfig struct {
	Top     int               `yaml:"top" validate:"omitempty,min=1"`
	Stints  string            `yaml:"stints" validate:"omitempty,oneof=keep-all merge"`
	Weights map[string]string `yaml:"weights"`
}

// LoadFile applies the YAML file at path on top of base. Structural errors
// (unreadable file, bad top or stints) are returned as an error; bad weights
// are reported as ConfigErrors and skipped.
func LoadFile(path string, base Config) (Config, []ConfigError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data, base)
}

// Parse is LoadFile for an in-memory document.
func Parse(data []byte, base Config) (Config, []ConfigError, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return base, nil, fmt.Errorf("parse config file: %w", err)
	}
	if err := validate.Struct(fc); err != nil {
		return base, nil, fmt.Errorf("invalid config file: %w", err)
	}

	cfg := base
	if fc.Top > 0 {
		cfg.Top = fc.Top
	}
	if fc.Stints != "" {
		cfg.Stints = StintPolicy(fc.Stints)
	}
	cfg, errs := cfg.WithOverrides(fc.Weights)
	return cfg, errs, nil
}

// ParseStintPolicy validates a policy name from a flag.
func ParseStintPolicy(s string) (StintPolicy, error) {
	switch StintPolicy(s) {
	case KeepAll, Merge:
		return StintPolicy(s), nil
	}
	return "", fmt.Errorf("unknown stint policy %q (want %s or %s)", s, KeepAll, Merge)
}
