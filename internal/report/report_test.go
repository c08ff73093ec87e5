package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/nba-rankings/internal/config"
	"github.com/pable/nba-rankings/internal/model"
	"github.com/pable/nba-rankings/internal/scoring"
	"github.com/pable/nba-rankings/internal/storage"
)

func seasonRows() []scoring.Ranked[model.PlayerRecord] {
	return []scoring.Ranked[model.PlayerRecord]{
		{Rank: 1, Score: 2.5, Record: model.PlayerRecord{
			PlayerID: "jokicni01", Player: "Nikola Jokić", Season: 2024, Pos: "C", Team: "DEN", Games: 79,
			Stats: model.StatLine{26.4, 9, 12.4, 1.4, 0.9, 3},
		}},
		{Rank: 2, Score: -0.125, Record: model.PlayerRecord{
			PlayerID: "doncilu01", Player: "Luka Dončić", Season: 2024, Pos: "PG", Team: "DAL", Games: 70,
			Stats: model.StatLine{33.9, 9.8, 9.2, 1.4, 0.5, 4},
		}},
	}
}

func careerRows() []scoring.Ranked[model.CareerRecord] {
	return []scoring.Ranked[model.CareerRecord]{
		{Rank: 1, Score: 4.2, Record: model.CareerRecord{
			PlayerID: "jamesle01", Player: "LeBron James", Seasons: 21, Games: 1492,
			Stats:         model.StatLine{40474, 11009, 11185, 2275, 1111, 5211},
			TripleDoubles: 113,
		}},
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "json", "csv"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestFormatNum(t *testing.T) {
	assert.Equal(t, "40,474", formatNum(40474))
	assert.Equal(t, "26.40", formatNum(26.4))
	assert.Equal(t, "0", formatNum(0))
}

func TestPrintSeasonRanking(t *testing.T) {
	var buf bytes.Buffer
	PrintSeasonRanking(&buf, seasonRows())
	out := buf.String()
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "Nikola Jokić")
	assert.Contains(t, out, "2.500")
	assert.Contains(t, out, "-0.125")
	assert.Less(t, strings.Index(out, "Nikola Jokić"), strings.Index(out, "Luka Dončić"))
}

func TestPrintCareerRanking(t *testing.T) {
	var buf bytes.Buffer
	PrintCareerRanking(&buf, careerRows())
	out := buf.String()
	assert.Contains(t, out, "TRP")
	assert.Contains(t, out, "jamesle01")
	assert.Contains(t, out, "40,474")
}

func TestWriteSeasonRanking_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSeasonRanking(&buf, FormatJSON, seasonRows()))

	var got []seasonRowJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, "jokicni01", got[0].PlayerID)
	assert.Equal(t, 26.4, got[0].Stats.Points)
	assert.Equal(t, -0.125, got[1].Score)
}

func TestWriteCareerRanking_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCareerRanking(&buf, FormatCSV, careerRows()))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, careerHeader, recs[0])
	assert.Equal(t, []string{"1", "jamesle01", "LeBron James", "21", "1492", "40474", "11009", "11185", "2275", "1111", "5211", "113", "4.200"}, recs[1])
}

func TestWriteRanking_EmptyJSONIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSeasonRanking(&buf, FormatJSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, []storage.TableSummary{
		{Table: storage.TablePlayerSeasons, Rows: 32606, Players: 5100, MinSeason: 1947, MaxSeason: 2025},
		{Table: storage.TableAllStars},
	})
	out := buf.String()
	assert.Contains(t, out, "32,606")
	assert.Contains(t, out, "1947-2025")
	assert.Contains(t, out, storage.TableAllStars)
	assert.NotContains(t, out, "–")
	assert.NotContains(t, out, "—")
}

func TestPrintQueryResult(t *testing.T) {
	var buf bytes.Buffer
	PrintQueryResult(&buf, []string{"player_id", "n"}, [][]string{{"aa01", "2"}, {"zz01", "1"}})
	out := buf.String()
	assert.Contains(t, out, "aa01")
	assert.True(t, strings.HasSuffix(out, "\n(2 rows)\n"))

	buf.Reset()
	PrintQueryResult(&buf, []string{"n"}, nil)
	assert.Equal(t, "(no rows)\n", buf.String())
}

func TestPrintHeader(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	PrintHeader(&buf, "career", cfg, scoring.Diagnostics{Population: 4800, InputRows: 31000}, 50)
	out := buf.String()
	assert.Contains(t, out, "Mode: career")
	assert.Contains(t, out, "Ranked: 4,800")
	assert.Contains(t, out, "Input rows: 31,000")
	assert.Contains(t, out, "points=0.35")
	assert.Contains(t, out, "turnovers=-0.1")
	assert.Contains(t, out, "triple_doubles=0.005")

	buf.Reset()
	PrintHeader(&buf, "season", cfg, scoring.Diagnostics{}, 0)
	assert.NotContains(t, buf.String(), "triple_doubles")
}
