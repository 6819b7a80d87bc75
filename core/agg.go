package core

import (
	"strings"

	"github.com/dugoutlab/trackstat/internal/table"
	"github.com/dugoutlab/trackstat/schema"
)

// practiceLeagueTag marks a scrimmage export. One tagged row anywhere in
// a file reclassifies the whole file as practice.
const practiceLeagueTag = "team"

// Accumulator collects stat lines for one profile while aggregation
// passes walk an event table. Lines are created on first touch.
type Accumulator struct {
	profile *schema.StatProfile
	lines   map[schema.EntityKey]*schema.StatLine
}

// NewAccumulator returns an empty accumulator for a profile.
func NewAccumulator(profile *schema.StatProfile) *Accumulator {
	return &Accumulator{
		profile: profile,
		lines:   make(map[schema.EntityKey]*schema.StatLine),
	}
}

// Line returns the stat line for a key, creating it when absent.
func (a *Accumulator) Line(key schema.EntityKey) *schema.StatLine {
	if line, ok := a.lines[key]; ok {
		return line
	}
	line := schema.NewStatLine(key)
	a.lines[key] = line
	return line
}

// Lines exposes the collected lines.
func (a *Accumulator) Lines() map[schema.EntityKey]*schema.StatLine {
	return a.lines
}

// Finalize computes every derivable rate on every line and stamps the
// source-date marker.
func (a *Accumulator) Finalize(dateMarker string) {
	for _, line := range a.lines {
		FinalizeRates(a.profile, line)
		line.MarkProcessed(dateMarker)
	}
}

// FinalizeRates fills the rate fields that derive from counting fields:
// plain ratios first, then spray percentages from the five-way slice
// total, then composites over other finalized rates. Rates with no
// definition here (means, expected stats) are set directly by the
// aggregation passes and left untouched.
func FinalizeRates(profile *schema.StatProfile, line *schema.StatLine) {
	for _, def := range profile.Rates {
		if def.Func == nil && def.Num != "" && def.Den != "" {
			line.SetRate(def.Key, schema.Ratio(line.Count(def.Num), line.Count(def.Den)))
		}
	}

	if len(profile.Spray) > 0 {
		total := 0
		for _, sp := range profile.Spray {
			total += line.Count(sp.Count)
		}
		for _, sp := range profile.Spray {
			line.SetRate(sp.Rate, schema.Ratio(line.Count(sp.Count), total))
		}
	}

	for _, def := range profile.Rates {
		if def.Func != nil {
			line.SetRate(def.Key, def.Func(line))
		}
	}
}

// IsPracticeFile reports whether any row in the table carries the
// practice league tag.
func IsPracticeFile(tbl *table.EventTable) bool {
	if !tbl.HasColumns(table.ColLeague) {
		return false
	}
	for i := 0; i < tbl.Len(); i++ {
		if strings.EqualFold(tbl.Row(i).Str(table.ColLeague), practiceLeagueTag) {
			return true
		}
	}
	return false
}

// RemapTeam applies the practice suffix to a team code when the file
// was classified as practice.
func RemapTeam(team string, practice bool) string {
	if practice && team != "" {
		return team + schema.PracticeTeamSuffix
	}
	return team
}

// identity builds the composite key for one event row, or ok=false when
// the player or team cell is blank.
func identity(row table.Row, playerCol, teamCol string, year int, practice bool) (schema.EntityKey, bool) {
	player := row.Str(playerCol)
	team := row.Str(teamCol)
	if player == "" || team == "" {
		return schema.EntityKey{}, false
	}
	return schema.EntityKey{
		Player: player,
		Team:   RemapTeam(team, practice),
		Year:   year,
	}, true
}
