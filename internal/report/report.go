package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/nba-rankings/internal/config"
	"github.com/pable/nba-rankings/internal/model"
	"github.com/pable/nba-rankings/internal/scoring"
	"github.com/pable/nba-rankings/internal/storage"
)

// Format selects how ranking rows are written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want table, json or csv)", s)
}

var (
	seasonHeader = []string{"RANK", "PLAYER", "SEASON", "POS", "TEAM", "G", "PTS", "AST", "TRB", "STL", "BLK", "TOV", "SCORE"}
	careerHeader = []string{"RANK", "PLAYER_ID", "PLAYER", "SEASONS", "G", "PTS", "AST", "TRB", "STL", "BLK", "TOV", "TRP_DBL", "SCORE"}
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintHeader prints the run description and the weights in effect above the
// table.
func PrintHeader(w io.Writer, mode string, cfg config.Config, d scoring.Diagnostics, shown int) {
	fmt.Fprintf(w, "\nMode: %s  |  Ranked: %s  |  Shown: %d  |  Input rows: %s  |  Stints: %s\n",
		mode, humanize.Comma(int64(d.Population)), shown, humanize.Comma(int64(d.InputRows)), cfg.Stints)
	fmt.Fprint(w, "Weights:")
	for _, st := range model.AllStats {
		fmt.Fprintf(w, " %s=%s", st, strconv.FormatFloat(cfg.Weights[st], 'g', -1, 64))
	}
	if mode == "career" {
		fmt.Fprintf(w, " triple_doubles=%s", strconv.FormatFloat(cfg.TripleDoubleWeight, 'g', -1, 64))
	}
	fmt.Fprint(w, "\n\n")
}

// WriteSeasonRanking writes season rows in the requested format.
func WriteSeasonRanking(w io.Writer, f Format, rows []scoring.Ranked[model.PlayerRecord]) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, seasonJSON(rows))
	case FormatCSV:
		return writeCSV(w, seasonHeader, seasonCells(rows, plainNum))
	default:
		PrintSeasonRanking(w, rows)
		return nil
	}
}

// WriteCareerRanking writes career rows in the requested format.
func WriteCareerRanking(w io.Writer, f Format, rows []scoring.Ranked[model.CareerRecord]) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, careerJSON(rows))
	case FormatCSV:
		return writeCSV(w, careerHeader, careerCells(rows, plainNum))
	default:
		PrintCareerRanking(w, rows)
		return nil
	}
}

// PrintSeasonRanking prints the season-mode table.
func PrintSeasonRanking(w io.Writer, rows []scoring.Ranked[model.PlayerRecord]) {
	table := newTable(w)
	table.Header(toAny(seasonHeader)...)
	for _, cells := range seasonCells(rows, formatNum) {
		table.Append(toAny(cells)...)
	}
	table.Render()
}

// PrintCareerRanking prints the career-mode table.
func PrintCareerRanking(w io.Writer, rows []scoring.Ranked[model.CareerRecord]) {
	table := newTable(w)
	table.Header(toAny(careerHeader)...)
	for _, cells := range careerCells(rows, formatNum) {
		table.Append(toAny(cells)...)
	}
	table.Render()
}

// PrintSummary prints the stored table counts for the list command.
func PrintSummary(w io.Writer, sums []storage.TableSummary) {
	table := newTable(w)
	table.Header("TABLE", "ROWS", "PLAYERS", "SEASONS")
	for _, s := range sums {
		seasons := "-"
		if s.Rows > 0 {
			seasons = fmt.Sprintf("%d-%d", s.MinSeason, s.MaxSeason)
		}
		table.Append(s.Table, humanize.Comma(int64(s.Rows)), humanize.Comma(int64(s.Players)), seasons)
	}
	table.Render()
}

// PrintQueryResult prints the columns and rows of a raw query followed by a
// row count.
func PrintQueryResult(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w)
	table.Header(toAny(cols)...)
	for _, row := range rows {
		table.Append(toAny(row)...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%s rows)\n", humanize.Comma(int64(len(rows))))
}

func seasonCells(rows []scoring.Ranked[model.PlayerRecord], num func(float64) string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		p := r.Record
		s := p.Stats
		out = append(out, []string{
			strconv.Itoa(r.Rank),
			p.Player,
			strconv.Itoa(p.Season),
			p.Pos,
			p.Team,
			strconv.Itoa(p.Games),
			num(s[model.Points]),
			num(s[model.Assists]),
			num(s[model.Rebounds]),
			num(s[model.Steals]),
			num(s[model.Blocks]),
			num(s[model.Turnovers]),
			formatScore(r.Score),
		})
	}
	return out
}

func careerCells(rows []scoring.Ranked[model.CareerRecord], num func(float64) string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		c := r.Record
		s := c.Stats
		out = append(out, []string{
			strconv.Itoa(r.Rank),
			c.PlayerID,
			c.Player,
			strconv.Itoa(c.Seasons),
			num(float64(c.Games)),
			num(s[model.Points]),
			num(s[model.Assists]),
			num(s[model.Rebounds]),
			num(s[model.Steals]),
			num(s[model.Blocks]),
			num(s[model.Turnovers]),
			num(c.TripleDoubles),
			formatScore(r.Score),
		})
	}
	return out
}

// formatNum renders whole numbers with thousands separators and rates with
// at most two decimals.
func formatNum(x float64) string {
	if x == math.Trunc(x) && math.Abs(x) < 1e15 {
		return humanize.Comma(int64(x))
	}
	return humanize.FormatFloat("#,###.##", x)
}

func plainNum(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func formatScore(x float64) string {
	return strconv.FormatFloat(x, 'f', 3, 64)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// ---- Machine-readable output ----

type statsJSON struct {
	Points    float64 `json:"points"`
	Assists   float64 `json:"assists"`
	Rebounds  float64 `json:"rebounds"`
	Steals    float64 `json:"steals"`
	Blocks    float64 `json:"blocks"`
	Turnovers float64 `json:"turnovers"`
}

func toStatsJSON(s model.StatLine) statsJSON {
	return statsJSON{
		Points:    s[model.Points],
		Assists:   s[model.Assists],
		Rebounds:  s[model.Rebounds],
		Steals:    s[model.Steals],
		Blocks:    s[model.Blocks],
		Turnovers: s[model.Turnovers],
	}
}

type seasonRowJSON struct {
	Rank     int       `json:"rank"`
	PlayerID string    `json:"player_id"`
	Player   string    `json:"player"`
	Season   int       `json:"season"`
	Pos      string    `json:"pos"`
	Team     string    `json:"team"`
	Games    int       `json:"games"`
	Stats    statsJSON `json:"stats"`
	Score    float64   `json:"score"`
}

type careerRowJSON struct {
	Rank          int       `json:"rank"`
	PlayerID      string    `json:"player_id"`
	Player        string    `json:"player"`
	Seasons       int       `json:"seasons"`
	Games         int       `json:"games"`
	Stats         statsJSON `json:"stats"`
	TripleDoubles float64   `json:"triple_doubles"`
	Score         float64   `json:"score"`
}

func seasonJSON(rows []scoring.Ranked[model.PlayerRecord]) []seasonRowJSON {
	out := make([]seasonRowJSON, 0, len(rows))
	for _, r := range rows {
		p := r.Record
		out = append(out, seasonRowJSON{
			Rank: r.Rank, PlayerID: p.PlayerID, Player: p.Player, Season: p.Season,
			Pos: p.Pos, Team: p.Team, Games: p.Games, Stats: toStatsJSON(p.Stats), Score: r.Score,
		})
	}
	return out
}

func careerJSON(rows []scoring.Ranked[model.CareerRecord]) []careerRowJSON {
	out := make([]careerRowJSON, 0, len(rows))
	for _, r := range rows {
		c := r.Record
		out = append(out, careerRowJSON{
			Rank: r.Rank, PlayerID: c.PlayerID, Player: c.Player, Seasons: c.Seasons,
			Games: c.Games, Stats: toStatsJSON(c.Stats), TripleDoubles: c.TripleDoubles, Score: r.Score,
		})
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
