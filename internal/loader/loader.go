// Package loader reads the Basketball-Reference style CSV exports into
// model records. Column presence is validated once per file: identity
// columns are required, stat columns are optional and reported through a
// model.StatSet so absent categories score as 0.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pable/nba-rankings/internal/model"
)

// Source identifies one of the input files.
type Source int

const (
	PerGame Source = iota
	Totals
	Awards
	AllStars
)

// FileName is the expected file name of each source inside a data directory.
func (s Source) FileName() string {
	switch s {
	case PerGame:
		return "Player per Game.csv"
	case Totals:
		return "Player Totals.csv"
	case Awards:
		return "Player Award Shares.csv"
	case AllStars:
		return "All-Star Selections.csv"
	default:
		return ""
	}
}

func (s Source) String() string {
	switch s {
	case PerGame:
		return "per-game"
	case Totals:
		return "totals"
	case Awards:
		return "awards"
	case AllStars:
		return "all-stars"
	default:
		return "?"
	}
}

// ErrMissingColumn is returned when a required identity column is absent.
var ErrMissingColumn = errors.New("missing required column")

// Stat columns per schema, with accepted aliases.
var (
	perGameColumns = [model.NumStats][]string{
		model.Points:    {"pts_per_game"},
		model.Assists:   {"ast_per_game"},
		model.Rebounds:  {"trb_per_game"},
		model.Steals:    {"stl_per_game"},
		model.Blocks:    {"blk_per_game"},
		model.Turnovers: {"tov_per_game"},
	}
	totalsColumns = [model.NumStats][]string{
		model.Points:    {"pts"},
		model.Assists:   {"ast"},
		model.Rebounds:  {"trb"},
		model.Steals:    {"stl"},
		model.Blocks:    {"blk"},
		model.Turnovers: {"tov"},
	}
	teamColumns = []string{"tm", "team"}
)

// LoadDir reads the requested sources from dir. A source whose file cannot
// be opened or lacks identity columns makes the whole load fail with
// model.ErrInputUnavailable; sources not requested stay nil.
func LoadDir(dir string, sources ...Source) (model.Dataset, error) {
	var ds model.Dataset
	for _, src := range sources {
		path := filepath.Join(dir, src.FileName())
		f, err := os.Open(path)
		if err != nil {
			return model.Dataset{}, fmt.Errorf("%w: %s: %w", model.ErrInputUnavailable, src, err)
		}
		err = readSource(f, src, &ds)
		f.Close()
		if err != nil {
			return model.Dataset{}, fmt.Errorf("%w: %s: %w", model.ErrInputUnavailable, path, err)
		}
	}
	return ds, nil
}

func readSource(r io.Reader, src Source, ds *model.Dataset) error {
	var err error
	switch src {
	case PerGame:
		ds.Players, ds.PlayerStats, err = ReadPlayers(r)
	case Totals:
		ds.Totals, ds.TotalsStats, err = ReadTotals(r)
	case Awards:
		ds.Awards, err = ReadAwards(r)
	case AllStars:
		ds.AllStars, err = ReadAllStars(r)
	default:
		err = fmt.Errorf("unknown source %d", src)
	}
	return err
}

// ReadPlayers reads a per-game file.
func ReadPlayers(r io.Reader) ([]model.PlayerRecord, model.StatSet, error) {
	t, err := newTable(r)
	if err != nil {
		return nil, 0, err
	}
	id, season, err := t.identity()
	if err != nil {
		return nil, 0, err
	}
	name := t.optional("player")
	pos := t.optional("pos")
	team := t.optional(teamColumns...)
	games := t.optional("g")
	stats, present := t.statColumns(perGameColumns)

	out := []model.PlayerRecord{}
	for {
		rec, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		out = append(out, model.PlayerRecord{
			PlayerID: field(rec, id),
			Player:   field(rec, name),
			Season:   intField(rec, season),
			Pos:      field(rec, pos),
			Team:     field(rec, team),
			Games:    intField(rec, games),
			Stats:    statLine(rec, stats),
		})
	}
	return out, present, nil
}

// ReadTotals reads a season-totals file.
func ReadTotals(r io.Reader) ([]model.TotalsRecord, model.StatSet, error) {
	t, err := newTable(r)
	if err != nil {
		return nil, 0, err
	}
	id, season, err := t.identity()
	if err != nil {
		return nil, 0, err
	}
	name := t.optional("player")
	team := t.optional(teamColumns...)
	games := t.optional("g")
	trp := t.optional("trp_dbl")
	stats, present := t.statColumns(totalsColumns)

	out := []model.TotalsRecord{}
	for {
		rec, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		out = append(out, model.TotalsRecord{
			PlayerID:      field(rec, id),
			Player:        field(rec, name),
			Season:        intField(rec, season),
			Team:          field(rec, team),
			Games:         intField(rec, games),
			Stats:         statLine(rec, stats),
			TripleDoubles: numField(rec, trp),
		})
	}
	return out, present, nil
}

// ReadAwards reads an award-shares file.
func ReadAwards(r io.Reader) ([]model.AwardRecord, error) {
	t, err := newTable(r)
	if err != nil {
		return nil, err
	}
	id, season, err := t.identity()
	if err != nil {
		return nil, err
	}
	award, err := t.required("award")
	if err != nil {
		return nil, err
	}
	share, err := t.required("share")
	if err != nil {
		return nil, err
	}

	out := []model.AwardRecord{}
	for {
		rec, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, model.AwardRecord{
			PlayerID: field(rec, id),
			Season:   intField(rec, season),
			Award:    field(rec, award),
			Share:    numField(rec, share),
		})
	}
	return out, nil
}

// ReadAllStars reads an all-star selections file.
func ReadAllStars(r io.Reader) ([]model.AllStarRecord, error) {
	t, err := newTable(r)
	if err != nil {
		return nil, err
	}
	id, season, err := t.identity()
	if err != nil {
		return nil, err
	}

	out := []model.AllStarRecord{}
	for {
		rec, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, model.AllStarRecord{
			PlayerID: field(rec, id),
			Season:   intField(rec, season),
		})
	}
	return out, nil
}

// ---- CSV plumbing ----

type table struct {
	r       *csv.Reader
	columns map[string]int
}

func newTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: %w", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	return &table{r: cr, columns: cols}, nil
}

func (t *table) next() ([]string, error) {
	rec, err := t.r.Read()
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read row: %w", err)
	}
	return rec, err
}

// optional returns the index of the first alias present, or -1.
func (t *table) optional(aliases ...string) int {
	for _, a := range aliases {
		if i, ok := t.columns[a]; ok {
			return i
		}
	}
	return -1
}

func (t *table) required(name string) (int, error) {
	i := t.optional(name)
	if i < 0 {
		return -1, fmt.Errorf("%w %q", ErrMissingColumn, name)
	}
	return i, nil
}

func (t *table) identity() (id, season int, err error) {
	if id, err = t.required("player_id"); err != nil {
		return
	}
	season, err = t.required("season")
	return
}

func (t *table) statColumns(aliases [model.NumStats][]string) ([model.NumStats]int, model.StatSet) {
	var idx [model.NumStats]int
	var present model.StatSet
	for _, st := range model.AllStats {
		idx[st] = t.optional(aliases[st]...)
		if idx[st] >= 0 {
			present = present.With(st)
		}
	}
	return idx, present
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// numField parses a numeric cell. Empty, "NA" or malformed cells and
// non-finite values read as 0.
func numField(rec []string, i int) float64 {
	v, err := strconv.ParseFloat(field(rec, i), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func intField(rec []string, i int) int {
	return int(numField(rec, i))
}

func statLine(rec []string, idx [model.NumStats]int) model.StatLine {
	var l model.StatLine
	for _, st := range model.AllStats {
		l[st] = numField(rec, idx[st])
	}
	return l
}
