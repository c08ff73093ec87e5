package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/nba-rankings/internal/model"
)

// Table names, also used as dataset_columns.source.
const (
	TablePlayerSeasons = "player_seasons"
	TablePlayerTotals  = "player_totals"
	TableAwardShares   = "award_shares"
	TableAllStars      = "all_star_selections"
)

// ImportDataset replaces the stored contents of every non-nil collection in
// ds. Rows are numbered in input order so loads return them unchanged.
func (db *DB) ImportDataset(ds model.Dataset) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if ds.Players != nil {
		if err := db.replacePlayers(tx, ds.Players, ds.PlayerStats); err != nil {
			return fmt.Errorf("import %s: %w", TablePlayerSeasons, err)
		}
	}
	if ds.Totals != nil {
		if err := db.replaceTotals(tx, ds.Totals, ds.TotalsStats); err != nil {
			return fmt.Errorf("import %s: %w", TablePlayerTotals, err)
		}
	}
	if ds.Awards != nil {
		if err := db.replaceAwards(tx, ds.Awards); err != nil {
			return fmt.Errorf("import %s: %w", TableAwardShares, err)
		}
	}
	if ds.AllStars != nil {
		if err := db.replaceAllStars(tx, ds.AllStars); err != nil {
			return fmt.Errorf("import %s: %w", TableAllStars, err)
		}
	}
	return tx.Commit()
}

func (db *DB) clear(tx *sql.Tx, table string) error {
	_, err := tx.Exec("DELETE FROM " + table)
	return err
}

func (db *DB) setColumns(tx *sql.Tx, source string, stats model.StatSet) error {
	if _, err := tx.Exec(db.rebind(`DELETE FROM dataset_columns WHERE source = ?`), source); err != nil {
		return err
	}
	_, err := tx.Exec(db.rebind(`INSERT INTO dataset_columns(source, stats) VALUES (?, ?)`), source, int(stats))
	return err
}

func (db *DB) replacePlayers(tx *sql.Tx, rows []model.PlayerRecord, stats model.StatSet) error {
	if err := db.clear(tx, TablePlayerSeasons); err != nil {
		return err
	}
	if err := db.setColumns(tx, TablePlayerSeasons, stats); err != nil {
		return err
	}
	stmt, err := tx.Prepare(db.rebind(`
		INSERT INTO player_seasons(
			row_num, player_id, player, season, pos, team, g,
			pts, ast, trb, stl, blk, tov
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range rows {
		s := r.Stats
		_, err = stmt.Exec(
			i, r.PlayerID, r.Player, r.Season, r.Pos, r.Team, r.Games,
			s[model.Points], s[model.Assists], s[model.Rebounds],
			s[model.Steals], s[model.Blocks], s[model.Turnovers],
		)
		if err != nil {
			return fmt.Errorf("insert row %d (%s): %w", i, r.PlayerID, err)
		}
	}
	return nil
}

func (db *DB) replaceTotals(tx *sql.Tx, rows []model.TotalsRecord, stats model.StatSet) error {
	if err := db.clear(tx, TablePlayerTotals); err != nil {
		return err
	}
	if err := db.setColumns(tx, TablePlayerTotals, stats); err != nil {
		return err
	}
	stmt, err := tx.Prepare(db.rebind(`
		INSERT INTO player_totals(
			row_num, player_id, player, season, team, g,
			pts, ast, trb, stl, blk, tov, trp_dbl
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range rows {
		s := r.Stats
		_, err = stmt.Exec(
			i, r.PlayerID, r.Player, r.Season, r.Team, r.Games,
			s[model.Points], s[model.Assists], s[model.Rebounds],
			s[model.Steals], s[model.Blocks], s[model.Turnovers],
			r.TripleDoubles,
		)
		if err != nil {
			return fmt.Errorf("insert row %d (%s): %w", i, r.PlayerID, err)
		}
	}
	return nil
}

func (db *DB) replaceAwards(tx *sql.Tx, rows []model.AwardRecord) error {
	if err := db.clear(tx, TableAwardShares); err != nil {
		return err
	}
	if err := db.setColumns(tx, TableAwardShares, 0); err != nil {
		return err
	}
	stmt, err := tx.Prepare(db.rebind(`
		INSERT INTO award_shares(row_num, player_id, season, award, share) VALUES (?,?,?,?,?)`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.Exec(i, r.PlayerID, r.Season, r.Award, r.Share); err != nil {
			return fmt.Errorf("insert row %d (%s): %w", i, r.PlayerID, err)
		}
	}
	return nil
}

func (db *DB) replaceAllStars(tx *sql.Tx, rows []model.AllStarRecord) error {
	if err := db.clear(tx, TableAllStars); err != nil {
		return err
	}
	if err := db.setColumns(tx, TableAllStars, 0); err != nil {
		return err
	}
	stmt, err := tx.Prepare(db.rebind(`
		INSERT INTO all_star_selections(row_num, player_id, season) VALUES (?,?,?)`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.Exec(i, r.PlayerID, r.Season); err != nil {
			return fmt.Errorf("insert row %d (%s): %w", i, r.PlayerID, err)
		}
	}
	return nil
}

// ---- Loading ----

// LoadSeasonDataset returns the per-game rows plus both bonus tables.
func (db *DB) LoadSeasonDataset() (model.Dataset, error) {
	return db.loadDataset(true, false)
}

// LoadCareerDataset returns the totals rows plus both bonus tables.
func (db *DB) LoadCareerDataset() (model.Dataset, error) {
	return db.loadDataset(false, true)
}

// loadDataset fails with model.ErrInputUnavailable when a required table was
// never imported.
func (db *DB) loadDataset(players, totals bool) (model.Dataset, error) {
	imported, err := db.importedSources()
	if err != nil {
		return model.Dataset{}, err
	}
	need := []string{TableAwardShares, TableAllStars}
	if players {
		need = append(need, TablePlayerSeasons)
	}
	if totals {
		need = append(need, TablePlayerTotals)
	}
	for _, t := range need {
		if _, ok := imported[t]; !ok {
			return model.Dataset{}, fmt.Errorf("%w: table %s has not been imported", model.ErrInputUnavailable, t)
		}
	}

	var ds model.Dataset
	if players {
		if ds.Players, err = db.GetPlayerSeasons(); err != nil {
			return model.Dataset{}, fmt.Errorf("load %s: %w", TablePlayerSeasons, err)
		}
		ds.PlayerStats = imported[TablePlayerSeasons]
	}
	if totals {
		if ds.Totals, err = db.GetPlayerTotals(); err != nil {
			return model.Dataset{}, fmt.Errorf("load %s: %w", TablePlayerTotals, err)
		}
		ds.TotalsStats = imported[TablePlayerTotals]
	}
	if ds.Awards, err = db.GetAwardShares(); err != nil {
		return model.Dataset{}, fmt.Errorf("load %s: %w", TableAwardShares, err)
	}
	if ds.AllStars, err = db.GetAllStarSelections(); err != nil {
		return model.Dataset{}, fmt.Errorf("load %s: %w", TableAllStars, err)
	}
	return ds, nil
}

// importedSources maps each imported table to its stat column set. Bonus
// tables count as imported once they have been written at least once, even
// if empty.
func (db *DB) importedSources() (map[string]model.StatSet, error) {
	out := make(map[string]model.StatSet)
	rows, err := db.conn.Query(`SELECT source, stats FROM dataset_columns`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var source string
		var stats int
		if err := rows.Scan(&source, &stats); err != nil {
			return nil, err
		}
		out[source] = model.StatSet(stats)
	}
	return out, rows.Err()
}

// GetPlayerSeasons returns every per-game row in import order.
func (db *DB) GetPlayerSeasons() ([]model.PlayerRecord, error) {
	rows, err := db.conn.Query(`
		SELECT player_id, player, season, pos, team, g, pts, ast, trb, stl, blk, tov
		FROM player_seasons ORDER BY row_num`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.PlayerRecord{}
	for rows.Next() {
		var r model.PlayerRecord
		s := &r.Stats
		if err := rows.Scan(&r.PlayerID, &r.Player, &r.Season, &r.Pos, &r.Team, &r.Games,
			&s[model.Points], &s[model.Assists], &s[model.Rebounds],
			&s[model.Steals], &s[model.Blocks], &s[model.Turnovers]); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetPlayerTotals returns every season-totals row in import order.
func (db *DB) GetPlayerTotals() ([]model.TotalsRecord, error) {
	rows, err := db.conn.Query(`
		SELECT player_id, player, season, team, g, pts, ast, trb, stl, blk, tov, trp_dbl
		FROM player_totals ORDER BY row_num`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TotalsRecord{}
	for rows.Next() {
		var r model.TotalsRecord
		s := &r.Stats
		if err := rows.Scan(&r.PlayerID, &r.Player, &r.Season, &r.Team, &r.Games,
			&s[model.Points], &s[model.Assists], &s[model.Rebounds],
			&s[model.Steals], &s[model.Blocks], &s[model.Turnovers],
			&r.TripleDoubles); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetAwardShares returns every award row in import order.
func (db *DB) GetAwardShares() ([]model.AwardRecord, error) {
	rows, err := db.conn.Query(`
		SELECT player_id, season, award, share FROM award_shares ORDER BY row_num`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.AwardRecord{}
	for rows.Next() {
		var r model.AwardRecord
		if err := rows.Scan(&r.PlayerID, &r.Season, &r.Award, &r.Share); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetAllStarSelections returns every all-star row in import order.
func (db *DB) GetAllStarSelections() ([]model.AllStarRecord, error) {
	rows, err := db.conn.Query(`
		SELECT player_id, season FROM all_star_selections ORDER BY row_num`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.AllStarRecord{}
	for rows.Next() {
		var r model.AllStarRecord
		if err := rows.Scan(&r.PlayerID, &r.Season); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ---- Inspection ----

// TableSummary describes the stored contents of one table.
type TableSummary struct {
	Table     string
	Rows      int
	MinSeason int
	MaxSeason int
	Players   int
}

// Summary returns row counts, season span and distinct players per table.
func (db *DB) Summary() ([]TableSummary, error) {
	var out []TableSummary
	for _, t := range []string{TablePlayerSeasons, TablePlayerTotals, TableAwardShares, TableAllStars} {
		s := TableSummary{Table: t}
		var minSeason, maxSeason sql.NullInt64
		err := db.conn.QueryRow(`
			SELECT COUNT(1), MIN(season), MAX(season), COUNT(DISTINCT player_id) FROM ` + t).
			Scan(&s.Rows, &minSeason, &maxSeason, &s.Players)
		if err != nil {
			return nil, fmt.Errorf("summarize %s: %w", t, err)
		}
		s.MinSeason = int(minSeason.Int64)
		s.MaxSeason = int(maxSeason.Int64)
		out = append(out, s)
	}
	return out, nil
}

// QueryRaw runs an arbitrary query and returns column names and rows
// rendered as strings. NULLs render as empty strings.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = ""
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
