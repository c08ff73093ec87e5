package model

import (
	"errors"
	"strings"
)

// ErrInputUnavailable is returned when one of the required input collections
// could not be supplied at all. It is the only fatal error of a ranking run.
var ErrInputUnavailable = errors.New("required input unavailable")

// Stat identifies one scored statistic category.
type Stat int

const (
	Points Stat = iota
	Assists
	Rebounds
	Steals
	Blocks
	Turnovers

	NumStats int = iota
)

// AllStats lists every category in display order.
var AllStats = [NumStats]Stat{Points, Assists, Rebounds, Steals, Blocks, Turnovers}

var statNames = [NumStats]string{"points", "assists", "rebounds", "steals", "blocks", "turnovers"}

func (s Stat) String() string {
	if s < 0 || int(s) >= NumStats {
		return "?"
	}
	return statNames[s]
}

// ParseStat resolves a category name such as "points" (case-insensitive).
func ParseStat(name string) (Stat, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range statNames {
		if n == name {
			return Stat(i), true
		}
	}
	return 0, false
}

// StatLine holds one value per category, indexed by Stat.
type StatLine [NumStats]float64

// Add returns the element-wise sum of two lines.
func (l StatLine) Add(o StatLine) StatLine {
	for i := range l {
		l[i] += o[i]
	}
	return l
}

// StatSet records which categories were present in the input schema.
type StatSet uint8

// AllPresent is a StatSet containing every category.
const AllPresent StatSet = 1<<NumStats - 1

func (s StatSet) Has(st Stat) bool { return s&(1<<st) != 0 }

func (s StatSet) With(st Stat) StatSet { return s | 1<<st }

// Missing returns the categories not in the set, in display order.
func (s StatSet) Missing() []Stat {
	var out []Stat
	for _, st := range AllStats {
		if !s.Has(st) {
			out = append(out, st)
		}
	}
	return out
}

// ---- Join keys ----

// SeasonKey joins bonus rows to season-mode records.
type SeasonKey struct {
	PlayerID string
	Season   int
}

// CareerKey joins bonus rows to career-mode records.
type CareerKey struct {
	PlayerID string
}

// ---- Input records ----

// PlayerRecord is one per-game row: a player's season with one team, or the
// combined row for a traded player.
type PlayerRecord struct {
	PlayerID string
	Player   string
	Season   int
	Pos      string
	Team     string
	Games    int
	Stats    StatLine // per-game rates
}

func (r PlayerRecord) Key() SeasonKey { return SeasonKey{r.PlayerID, r.Season} }

// TotalsRecord is one season-totals row, the source for career mode.
type TotalsRecord struct {
	PlayerID      string
	Player        string
	Season        int
	Team          string
	Games         int
	Stats         StatLine // season totals
	TripleDoubles float64
}

// CareerRecord is the sum of all totals rows for a player.
type CareerRecord struct {
	PlayerID      string
	Player        string
	Seasons       int
	Games         int
	Stats         StatLine
	TripleDoubles float64
}

func (r CareerRecord) Key() CareerKey { return CareerKey{r.PlayerID} }

// AwardRecord is one award-voting row.
type AwardRecord struct {
	PlayerID string
	Season   int
	Award    string
	Share    float64
}

// AllStarRecord marks a single all-star selection.
type AllStarRecord struct {
	PlayerID string
	Season   int
}

// IsAggregateTeam reports whether team is a combined multi-team row
// ("TOT", or "2TM", "3TM", ...).
func IsAggregateTeam(team string) bool {
	team = strings.ToUpper(strings.TrimSpace(team))
	if team == "TOT" {
		return true
	}
	if len(team) < 3 || !strings.HasSuffix(team, "TM") {
		return false
	}
	for _, c := range team[:len(team)-2] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Dataset is the full, in-memory input of one ranking run. A nil slice means
// the collection could not be supplied; an empty slice is a valid empty table.
type Dataset struct {
	Players  []PlayerRecord
	Totals   []TotalsRecord
	Awards   []AwardRecord
	AllStars []AllStarRecord

	// Columns present in the per-game and totals schemas.
	PlayerStats StatSet
	TotalsStats StatSet
}
