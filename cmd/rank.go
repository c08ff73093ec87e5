package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pable/nba-rankings/internal/config"
	"github.com/pable/nba-rankings/internal/loader"
	"github.com/pable/nba-rankings/internal/model"
	"github.com/pable/nba-rankings/internal/report"
	"github.com/pable/nba-rankings/internal/scoring"
	"github.com/pable/nba-rankings/internal/storage"
)

type mode string

const (
	modeSeason mode = "season"
	modeCareer mode = "career"
)

// Flags shared by season, career and shell.
var (
	dataDir     string
	sourceFlag  string
	configPath  string
	weightFlags map[string]string
	interactive bool
	topFlag     int
	stintsFlag  string
	formatFlag  string
)

func addRankFlags(c *cobra.Command) {
	addInputFlags(c)
	c.Flags().IntVar(&topFlag, "top", config.DefaultTop, "number of rows to show (0 = all)")
}

// addInputFlags registers everything addRankFlags does except --top.
func addInputFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVar(&dataDir, "data", "data", "directory holding the CSV datasets")
	f.StringVar(&sourceFlag, "source", "csv", "read input from csv files or the imported db")
	f.StringVar(&configPath, "config", "", "YAML file with weights, top and stints")
	f.StringToStringVar(&weightFlags, "weight", nil, "override a stat weight, e.g. --weight points=0.4")
	f.StringVar(&stintsFlag, "stints", string(config.KeepAll), "multi-team seasons: keep-all or merge")
}

func addOutputFlags(c *cobra.Command) {
	c.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for each stat weight before ranking")
	c.Flags().StringVar(&formatFlag, "format", string(report.FormatTable), "output format: table, json or csv")
}

// buildConfig applies, in order: defaults, the config file, command-line
// flags, then the interactive prompt. Rejected weight overrides are logged
// and leave the previous value in place.
func buildConfig(c *cobra.Command, in io.Reader, out io.Writer) (config.Config, error) {
	cfg := config.Default()

	if configPath != "" {
		var errs []config.ConfigError
		var err error
		cfg, errs, err = config.LoadFile(configPath, cfg)
		if err != nil {
			return cfg, err
		}
		logConfigErrors(errs)
	}

	if c.Flags().Changed("top") {
		cfg.Top = topFlag
	}
	if c.Flags().Changed("stints") {
		p, err := config.ParseStintPolicy(stintsFlag)
		if err != nil {
			return cfg, err
		}
		cfg.Stints = p
	}

	cfg, errs := cfg.WithOverrides(weightFlags)
	logConfigErrors(errs)

	if interactive {
		cfg = promptWeights(in, out, cfg)
	}
	return cfg, nil
}

func logConfigErrors(errs []config.ConfigError) {
	for _, e := range errs {
		slog.Warn("ignoring weight override", "stat", e.Stat, "value", e.Value, "reason", e.Reason)
	}
}

// loadDataset reads the collections one ranking mode needs from the source
// selected by --source.
func loadDataset(m mode) (model.Dataset, error) {
	switch sourceFlag {
	case "csv":
		primary := loader.PerGame
		if m == modeCareer {
			primary = loader.Totals
		}
		slog.Debug("loading csv", "dir", dataDir, "mode", m)
		return loader.LoadDir(dataDir, primary, loader.Awards, loader.AllStars)
	case "db":
		db, err := storage.Open(dbPath)
		if err != nil {
			return model.Dataset{}, fmt.Errorf("%w: open storage: %w", model.ErrInputUnavailable, err)
		}
		defer db.Close()
		slog.Debug("loading db", "db", dbPath, "mode", m)
		if m == modeCareer {
			return db.LoadCareerDataset()
		}
		return db.LoadSeasonDataset()
	default:
		return model.Dataset{}, fmt.Errorf("unknown source %q (want csv or db)", sourceFlag)
	}
}

// rank runs one mode over ds and writes the result to w.
func rank(w io.Writer, m mode, ds model.Dataset, cfg config.Config, format report.Format) error {
	switch m {
	case modeCareer:
		res, err := scoring.RankCareers(ds, cfg)
		if err != nil {
			return err
		}
		logDiagnostics(m, res.Diagnostics)
		if format == report.FormatTable {
			report.PrintHeader(w, string(m), cfg, res.Diagnostics, len(res.Rows))
		}
		return report.WriteCareerRanking(w, format, res.Rows)
	default:
		res, err := scoring.RankSeasons(ds, cfg)
		if err != nil {
			return err
		}
		logDiagnostics(m, res.Diagnostics)
		if format == report.FormatTable {
			report.PrintHeader(w, string(m), cfg, res.Diagnostics, len(res.Rows))
		}
		return report.WriteSeasonRanking(w, format, res.Rows)
	}
}

func logDiagnostics(m mode, d scoring.Diagnostics) {
	for _, st := range d.Missing {
		slog.Warn("stat column missing from input, scored as 0", "mode", m, "stat", st)
	}
	for _, st := range d.Degenerate {
		slog.Warn("stat has no variance, scored as 0", "mode", m, "stat", st)
	}
	slog.Info("ranking computed", "mode", m, "population", d.Population, "input_rows", d.InputRows, "bonus_keys", d.BonusKeys)
}

// runRank is the RunE body shared by season and career.
func runRank(c *cobra.Command, m mode) error {
	format, err := report.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(c, c.InOrStdin(), c.ErrOrStderr())
	if err != nil {
		return err
	}
	ds, err := loadDataset(m)
	if err != nil {
		if errors.Is(err, model.ErrInputUnavailable) {
			slog.Error("cannot rank without the full dataset", "mode", m, "err", err)
		}
		return err
	}
	return rank(c.OutOrStdout(), m, ds, cfg, format)
}
