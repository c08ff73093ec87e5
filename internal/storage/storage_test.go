package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/nba-rankings/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleDataset() model.Dataset {
	return model.Dataset{
		Players: []model.PlayerRecord{
			{PlayerID: "zz01", Player: "Zed", Season: 2024, Pos: "C", Team: "BOS", Games: 60, Stats: model.StatLine{10, 2, 11, 0.5, 2.1, 1.2}},
			{PlayerID: "aa01", Player: "Ann", Season: 2023, Pos: "PG", Team: "TOT", Games: 70, Stats: model.StatLine{25, 8, 4, 1.5, 0.3, 3.1}},
			{PlayerID: "aa01", Player: "Ann", Season: 2023, Pos: "PG", Team: "LAL", Games: 30, Stats: model.StatLine{24, 7, 4, 1.4, 0.2, 3}},
		},
		PlayerStats: model.AllPresent,
		Totals: []model.TotalsRecord{
			{PlayerID: "aa01", Player: "Ann", Season: 2023, Team: "TOT", Games: 70, Stats: model.StatLine{1750, 560, 280, 105, 21, 217}, TripleDoubles: 4},
		},
		TotalsStats: model.StatSet(0).With(model.Points).With(model.Assists),
		Awards: []model.AwardRecord{
			{PlayerID: "aa01", Season: 2023, Award: "nba mvp", Share: 0.4},
		},
		AllStars: []model.AllStarRecord{
			{PlayerID: "zz01", Season: 2024},
			{PlayerID: "aa01", Season: 2023},
		},
	}
}

func TestImportAndLoadSeason(t *testing.T) {
	db := openMemDB(t)
	ds := sampleDataset()
	require.NoError(t, db.ImportDataset(ds))

	got, err := db.LoadSeasonDataset()
	require.NoError(t, err)
	assert.Equal(t, ds.Players, got.Players, "rows come back in import order")
	assert.Equal(t, ds.PlayerStats, got.PlayerStats)
	assert.Equal(t, ds.Awards, got.Awards)
	assert.Equal(t, ds.AllStars, got.AllStars)
	assert.Nil(t, got.Totals)
}

func TestImportAndLoadCareer(t *testing.T) {
	db := openMemDB(t)
	ds := sampleDataset()
	require.NoError(t, db.ImportDataset(ds))

	got, err := db.LoadCareerDataset()
	require.NoError(t, err)
	assert.Equal(t, ds.Totals, got.Totals)
	assert.Equal(t, ds.TotalsStats, got.TotalsStats)
	assert.Equal(t, []model.Stat{model.Rebounds, model.Steals, model.Blocks, model.Turnovers}, got.TotalsStats.Missing())
	assert.Nil(t, got.Players)
}

func TestImportReplaces(t *testing.T) {
	db := openMemDB(t)
	require.NoError(t, db.ImportDataset(sampleDataset()))
	require.NoError(t, db.ImportDataset(sampleDataset()))

	players, err := db.GetPlayerSeasons()
	require.NoError(t, err)
	assert.Len(t, players, 3, "re-import must not duplicate rows")

	// Collections left nil are not touched.
	require.NoError(t, db.ImportDataset(model.Dataset{AllStars: []model.AllStarRecord{}}))
	players, err = db.GetPlayerSeasons()
	require.NoError(t, err)
	assert.Len(t, players, 3)
	stars, err := db.GetAllStarSelections()
	require.NoError(t, err)
	assert.Empty(t, stars)
}

func TestLoadBeforeImportIsInputUnavailable(t *testing.T) {
	db := openMemDB(t)
	_, err := db.LoadSeasonDataset()
	assert.ErrorIs(t, err, model.ErrInputUnavailable)

	// Bonus tables alone are not enough for a career ranking.
	ds := sampleDataset()
	ds.Totals = nil
	require.NoError(t, db.ImportDataset(ds))
	_, err = db.LoadCareerDataset()
	assert.ErrorIs(t, err, model.ErrInputUnavailable)
	_, err = db.LoadSeasonDataset()
	assert.NoError(t, err)
}

func TestSummary(t *testing.T) {
	db := openMemDB(t)
	require.NoError(t, db.ImportDataset(sampleDataset()))

	sum, err := db.Summary()
	require.NoError(t, err)
	require.Len(t, sum, 4)

	byTable := map[string]TableSummary{}
	for _, s := range sum {
		byTable[s.Table] = s
	}
	ps := byTable[TablePlayerSeasons]
	assert.Equal(t, 3, ps.Rows)
	assert.Equal(t, 2, ps.Players)
	assert.Equal(t, 2023, ps.MinSeason)
	assert.Equal(t, 2024, ps.MaxSeason)
	assert.Equal(t, 1, byTable[TableAwardShares].Rows)
}

func TestSummary_Empty(t *testing.T) {
	db := openMemDB(t)
	sum, err := db.Summary()
	require.NoError(t, err)
	for _, s := range sum {
		assert.Zero(t, s.Rows, s.Table)
		assert.Zero(t, s.MinSeason, s.Table)
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	require.NoError(t, db.ImportDataset(sampleDataset()))

	cols, rows, err := db.QueryRaw(`SELECT player_id, COUNT(*) AS n FROM player_seasons GROUP BY player_id ORDER BY player_id`)
	require.NoError(t, err)
	assert.Equal(t, []string{"player_id", "n"}, cols)
	assert.Equal(t, [][]string{{"aa01", "2"}, {"zz01", "1"}}, rows)

	_, _, err = db.QueryRaw(`SELECT * FROM no_such_table`)
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	lite := &DB{}
	assert.Equal(t, "a = ? AND b = ?", lite.rebind("a = ? AND b = ?"))

	pg := &DB{postgres: true}
	assert.Equal(t, "a = $1 AND b = $2", pg.rebind("a = ? AND b = ?"))
}

func TestIsPostgresDSN(t *testing.T) {
	assert.True(t, IsPostgresDSN("postgres://u@localhost/nba"))
	assert.True(t, IsPostgresDSN("postgresql://u@localhost/nba"))
	assert.False(t, IsPostgresDSN("/home/u/.nbarank/datasets.db"))
	assert.False(t, IsPostgresDSN(":memory:"))
}
