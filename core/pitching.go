package core

import (
	"fmt"

	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/dugoutlab/trackstat/internal/table"
	"github.com/dugoutlab/trackstat/schema"
)

// pitcherRequired is the column set without which pitching aggregation
// degrades to an empty result.
var pitcherRequired = []string{
	table.ColPitcher, table.ColPitcherTeam, table.ColPlayResult,
	table.ColKorBB, table.ColPitchCall,
}

// fastballTracker extends the shared contact tracking with the
// release-speed mean over fastballs.
type fastballTracker struct {
	contactTracker
	fbSum float64
	fbN   int
}

// AggregatePitching reduces one event table to per-pitcher stat lines.
// The counting predicates mirror batting with contact-against semantics,
// plus outs, fastball counts and WHIP inputs.
func AggregatePitching(tbl *table.EventTable, sourceID string, models *Models) (map[schema.EntityKey]*schema.StatLine, error) {
	date, err := contract.ParseSourceDate(sourceID)
	if err != nil {
		return nil, fmt.Errorf("cannot derive period for %s: %w", sourceID, err)
	}
	year, marker := date.Year(), contract.SourceDateMarker(date)

	if missing := tbl.MissingColumns(pitcherRequired...); len(missing) > 0 {
		contract.LogWarn("pitching aggregation skipped", fmt.Errorf("%s lacks columns %v", sourceID, missing))
		return map[schema.EntityKey]*schema.StatLine{}, nil
	}

	practice := IsPracticeFile(tbl)
	acc := NewAccumulator(schema.PitchingProfile)
	trackers := make(map[schema.EntityKey]*fastballTracker)

	for i := 0; i < tbl.Len(); i++ {
		row := tbl.Row(i)
		key, ok := identity(row, table.ColPitcher, table.ColPitcherTeam, year, practice)
		if !ok {
			continue
		}
		line := acc.Line(key)

		countPlateOutcome(line, row)
		countOuts(line, row)
		countZonePitch(line, row)

		tr := trackers[key]
		if tr == nil {
			tr = &fastballTracker{}
			trackers[key] = tr
		}
		if IsFastball(NormalizePitchType(row.Str(table.ColTaggedPitchType))) {
			line.AddCount(schema.CountFastballs, 1)
			if rel, ok := row.Float(table.ColRelSpeed); ok {
				tr.fbSum += rel
				tr.fbN++
			}
		}

		if row.Str(table.ColPitchCall) != callInPlay {
			continue
		}
		line.AddCount(schema.CountBattedBalls, 1)
		countContactQuality(line, row)

		if ev, ok := row.Float(table.ColExitSpeed); ok {
			tr.evSum += ev
			tr.evN++
		}
		if br, complete := completeBattedRow(row, row.Str(table.ColBatterSide)); complete {
			tr.rows = append(tr.rows, br)
		}
	}

	for key, line := range acc.Lines() {
		finishPitchingLine(line, trackers[key], models)
	}
	acc.Finalize(marker)
	return acc.Lines(), nil
}

// countOuts credits recorded outs: strikeouts, fielded outs and
// sacrifices. Innings pitched derive from this as outs/3.
func countOuts(line *schema.StatLine, row table.Row) {
	result := row.Str(table.ColPlayResult)
	if row.Str(table.ColKorBB) == korbbStrikeout || result == playOut || result == playSacrifice {
		line.AddCount(schema.CountOuts, 1)
	}
}

// finishPitchingLine fills the mean-based and model-backed rates plus
// WHIP, which has an innings denominator instead of a counting field.
func finishPitchingLine(line *schema.StatLine, tr *fastballTracker, models *Models) {
	var shared *contactTracker
	if tr != nil {
		shared = &tr.contactTracker
		line.SetRate(schema.RateAvgFBVelo, schema.MeanOf(tr.fbSum, tr.fbN))
		line.SetRate(schema.RateAvgExitVelo, schema.MeanOf(tr.evSum, tr.evN))
	}

	if outs := line.Count(schema.CountOuts); outs > 0 {
		innings := float64(outs) / 3
		whip := float64(line.Count(schema.CountHits)+line.Count(schema.CountWalks)) / innings
		line.SetRate(schema.RateWHIP, schema.Float(whip))
	}

	applyExpectedStats(line, shared, models)
}
