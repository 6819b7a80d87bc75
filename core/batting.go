package core

import (
	"fmt"

	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/dugoutlab/trackstat/internal/table"
	"github.com/dugoutlab/trackstat/schema"
)

// Categorical outcome values fixed by the export contract.
const (
	playSingle    = "Single"
	playDouble    = "Double"
	playTriple    = "Triple"
	playHomeRun   = "HomeRun"
	playOut       = "Out"
	playError     = "Error"
	playFC        = "FieldersChoice"
	playSacrifice = "Sacrifice"

	korbbStrikeout = "Strikeout"
	korbbWalk      = "Walk"

	callInPlay         = "InPlay"
	callHitByPitch     = "HitByPitch"
	callStrikeSwinging = "StrikeSwinging"
	callFoulBall       = "FoulBall"

	hitGroundBall = "GroundBall"
)

// Contact-quality thresholds in mph and degrees.
const (
	hardHitMinSpeed   = 95.0
	sweetSpotMinAngle = 8.0
	sweetSpotMaxAngle = 32.0
)

// Spray slice edges in degrees of batted-ball direction.
var sprayEdges = [4]float64{-27, -9, 9, 27}

// battedRow carries one complete batted ball through the expected-outcome
// pass.
type battedRow struct {
	ExitSpeed float64
	Angle     float64
	Direction float64
	Side      string
}

// contactTracker holds the per-entity running state the counting pass
// collects for the rate fields that are means or model outputs rather
// than count ratios.
type contactTracker struct {
	evSum float64
	evN   int
	rows  []battedRow
}

// batterRequired is the column set without which batting aggregation
// degrades to an empty result.
var batterRequired = []string{
	table.ColBatter, table.ColBatterTeam, table.ColPlayResult,
	table.ColKorBB, table.ColPitchCall,
}

// AggregateBatting reduces one event table to per-batter stat lines for
// the season extracted from the source filename. Missing required
// columns degrade to an empty result; an unparseable filename date is an
// error because the season is part of the identity key.
func AggregateBatting(tbl *table.EventTable, sourceID string, models *Models) (map[schema.EntityKey]*schema.StatLine, error) {
	date, err := contract.ParseSourceDate(sourceID)
	if err != nil {
		return nil, fmt.Errorf("cannot derive period for %s: %w", sourceID, err)
	}
	year, marker := date.Year(), contract.SourceDateMarker(date)
	if missing := tbl.MissingColumns(batterRequired...); len(missing) > 0 {
		contract.LogWarn("batting aggregation skipped", fmt.Errorf("%s lacks columns %v", sourceID, missing))
		return map[schema.EntityKey]*schema.StatLine{}, nil
	}

	practice := IsPracticeFile(tbl)
	acc := NewAccumulator(schema.BattingProfile)
	trackers := make(map[schema.EntityKey]*contactTracker)

	for i := 0; i < tbl.Len(); i++ {
		row := tbl.Row(i)
		key, ok := identity(row, table.ColBatter, table.ColBatterTeam, year, practice)
		if !ok {
			continue
		}
		line := acc.Line(key)

		countPlateOutcome(line, row)
		countZonePitch(line, row)

		if row.Str(table.ColPitchCall) != callInPlay {
			continue
		}
		line.AddCount(schema.CountBattedBalls, 1)
		countContactQuality(line, row)

		tr := trackers[key]
		if tr == nil {
			tr = &contactTracker{}
			trackers[key] = tr
		}
		if ev, ok := row.Float(table.ColExitSpeed); ok {
			tr.evSum += ev
			tr.evN++
		}
		if br, complete := completeBattedRow(row, row.Str(table.ColBatterSide)); complete {
			tr.rows = append(tr.rows, br)
		}
	}

	for key, line := range acc.Lines() {
		finishBattingLine(line, trackers[key], models)
	}
	acc.Finalize(marker)
	return acc.Lines(), nil
}

// countPlateOutcome applies the plate-appearance predicates for one row.
// At-bats exclude walks, hit-by-pitch and sacrifices.
func countPlateOutcome(line *schema.StatLine, row table.Row) {
	result := row.Str(table.ColPlayResult)
	korbb := row.Str(table.ColKorBB)
	call := row.Str(table.ColPitchCall)

	atBat := korbb == korbbStrikeout
	switch result {
	case playSingle, playDouble, playTriple, playHomeRun, playOut, playError, playFC:
		atBat = true
	}
	walk := korbb == korbbWalk
	hbp := call == callHitByPitch
	sac := result == playSacrifice

	if atBat {
		line.AddCount(schema.CountAtBats, 1)
	}
	if atBat || walk || hbp || sac {
		line.AddCount(schema.CountPlateApp, 1)
	}
	if walk {
		line.AddCount(schema.CountWalks, 1)
	}
	if hbp {
		line.AddCount(schema.CountHitByPitch, 1)
	}
	if sac {
		line.AddCount(schema.CountSacrifices, 1)
	}
	if korbb == korbbStrikeout {
		line.AddCount(schema.CountStrikeouts, 1)
	}

	switch result {
	case playSingle:
		line.AddCount(schema.CountHits, 1)
		line.AddCount(schema.CountSingles, 1)
	case playDouble:
		line.AddCount(schema.CountHits, 1)
		line.AddCount(schema.CountDoubles, 1)
	case playTriple:
		line.AddCount(schema.CountHits, 1)
		line.AddCount(schema.CountTriples, 1)
	case playHomeRun:
		line.AddCount(schema.CountHits, 1)
		line.AddCount(schema.CountHomeRuns, 1)
	}
}

// countZonePitch applies the in-zone/out-of-zone counting for one row.
// Rows with missing or malformed plate coordinates count neither way.
func countZonePitch(line *schema.StatLine, row table.Row) {
	height, hok := row.Float(table.ColPlateLocHeight)
	side, sok := row.Float(table.ColPlateLocSide)
	if !hok || !sok {
		return
	}

	call := row.Str(table.ColPitchCall)
	swing := call == callStrikeSwinging || call == callFoulBall || call == callInPlay

	if IsInStrikeZone(height, side) {
		line.AddCount(schema.CountInZonePitches, 1)
		if call == callStrikeSwinging {
			line.AddCount(schema.CountInZoneWhiffs, 1)
		}
	} else {
		line.AddCount(schema.CountOutZonePitches, 1)
		if swing {
			line.AddCount(schema.CountChases, 1)
		}
	}
}

// countContactQuality applies the batted-ball sub-counts for one
// in-play row. Each measurement contributes independently; a missing
// exit speed still allows the angle-based counts.
func countContactQuality(line *schema.StatLine, row table.Row) {
	if row.Str(table.ColTaggedHitType) == hitGroundBall {
		line.AddCount(schema.CountGroundBalls, 1)
	}
	if ev, ok := row.Float(table.ColExitSpeed); ok && ev >= hardHitMinSpeed {
		line.AddCount(schema.CountHardHits, 1)
	}
	if la, ok := row.Float(table.ColAngle); ok && la >= sweetSpotMinAngle && la <= sweetSpotMaxAngle {
		line.AddCount(schema.CountSweetSpots, 1)
	}
	if dir, ok := row.Float(table.ColDirection); ok {
		line.AddCount(sprayCountFor(dir), 1)
	}
}

// sprayCountFor buckets a batted-ball direction into one of the five
// slice counts.
func sprayCountFor(dir float64) schema.CountKey {
	switch {
	case dir < sprayEdges[0]:
		return schema.CountSprayFarLeft
	case dir < sprayEdges[1]:
		return schema.CountSprayLeft
	case dir <= sprayEdges[2]:
		return schema.CountSprayCenter
	case dir <= sprayEdges[3]:
		return schema.CountSprayRight
	default:
		return schema.CountSprayFarRight
	}
}

// completeBattedRow extracts the feature vector for the expected-outcome
// pass. All four features must be present.
func completeBattedRow(row table.Row, rawSide string) (battedRow, bool) {
	ev, ok1 := row.Float(table.ColExitSpeed)
	la, ok2 := row.Float(table.ColAngle)
	dir, ok3 := row.Float(table.ColDirection)
	if !ok1 || !ok2 || !ok3 || rawSide == "" {
		return battedRow{}, false
	}
	return battedRow{ExitSpeed: ev, Angle: la, Direction: dir, Side: NormalizeSide(rawSide)}, true
}

// finishBattingLine fills the rate fields the counting pass cannot
// derive from count ratios: the exit-velocity mean, on-base and
// slugging, and the expected-outcome stats.
func finishBattingLine(line *schema.StatLine, tr *contactTracker, models *Models) {
	if tr != nil {
		line.SetRate(schema.RateAvgExitVelo, schema.MeanOf(tr.evSum, tr.evN))
	}

	pa := line.Count(schema.CountPlateApp)
	ab := line.Count(schema.CountAtBats)
	onBase := line.Count(schema.CountHits) + line.Count(schema.CountWalks) + line.Count(schema.CountHitByPitch)
	line.SetRate(schema.RateOnBase, schema.Ratio(onBase, pa))

	totalBases := line.Count(schema.CountSingles) + 2*line.Count(schema.CountDoubles) +
		3*line.Count(schema.CountTriples) + 4*line.Count(schema.CountHomeRuns)
	line.SetRate(schema.RateSlugging, schema.Ratio(totalBases, ab))

	applyExpectedStats(line, tr, models)
}

// applyExpectedStats computes xBA, xSLG, xwOBA and the barrel count for
// one entity. A model failure logs the entity and zeroes that entity's
// model-backed stats without aborting the batch.
func applyExpectedStats(line *schema.StatLine, tr *contactTracker, models *Models) {
	ab := line.Count(schema.CountAtBats)
	bb := line.Count(schema.CountBattedBalls)
	pa := line.Count(schema.CountPlateApp)

	var rows []battedRow
	if tr != nil {
		rows = tr.rows
	}

	// Row-level xBA always resolves through the grid path.
	xbaRows := make([]float64, len(rows))
	var xbaSum float64
	for i, r := range rows {
		evBin, laBin, dirBin := BinBattedBall(r.ExitSpeed, r.Angle, r.Direction, r.Side)
		xbaRows[i] = models.Grid.LookupXBA(evBin, laBin, dirBin)
		xbaSum += xbaRows[i]
	}

	if ab > 0 {
		v := 0.0
		if len(rows) > 0 {
			v = xbaSum / float64(len(rows)) * float64(bb) / float64(ab)
		}
		line.SetRate(schema.RateXBA, schema.ClampNonNegative(schema.Float(v)))
	}

	inputs := make([]contract.BattedBallInput, len(rows))
	for i, r := range rows {
		side := contract.SideRight
		if r.Side == "L" {
			side = contract.SideLeft
		}
		inputs[i] = contract.BattedBallInput{
			ExitSpeed: r.ExitSpeed, Angle: r.Angle, Direction: r.Direction, BatterSide: side,
		}
	}

	xslgRows, xslgErr := predictRows(models.XSLG, inputs)
	if xslgErr != nil {
		contract.LogWarn(fmt.Sprintf("xSLG defaulted to 0 for %s (%s)", line.Key.Player, line.Key.Team), xslgErr)
	}
	if ab > 0 {
		v := 0.0
		if xslgErr == nil && len(rows) > 0 {
			v = meanFloats(xslgRows) * float64(bb) / float64(ab)
		}
		line.SetRate(schema.RateXSLG, schema.ClampNonNegative(schema.Float(v)))
	}

	xwobaRows, xwobaErr := predictRows(models.XWOBA, inputs)
	if xwobaErr != nil {
		contract.LogWarn(fmt.Sprintf("xwOBA defaulted to 0 for %s (%s)", line.Key.Player, line.Key.Team), xwobaErr)
	}
	if pa > 0 || ab > 0 {
		num := 0.0
		if xwobaErr == nil {
			for _, v := range xwobaRows {
				num += v
			}
			num += schema.WOBAWeightWalk * float64(line.Count(schema.CountWalks))
			num += schema.WOBAWeightHitByPitch * float64(line.Count(schema.CountHitByPitch))
		}
		den := pa
		if den < 1 {
			den = 1
		}
		line.SetRate(schema.RateXWOBA, schema.ClampNonNegative(schema.Float(num/float64(den))))
	}

	// A barrel needs both expected outcomes above threshold, so a failed
	// xSLG model means no barrels can be credited.
	if xslgErr == nil {
		for i := range rows {
			if xbaRows[i] >= schema.BarrelXBAMin && xslgRows[i] >= schema.BarrelXSLGMin {
				line.AddCount(schema.CountBarrels, 1)
			}
		}
	}
}

// predictRows invokes a scorer over a batch, normalizing a short result
// into an error so callers have one failure path.
func predictRows(scorer contract.BattedBallScorer, inputs []contract.BattedBallInput) ([]float64, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	out, err := scorer.Predict(inputs)
	if err != nil {
		return nil, err
	}
	if len(out) != len(inputs) {
		return nil, fmt.Errorf("scorer returned %d values for %d rows", len(out), len(inputs))
	}
	return out, nil
}

func meanFloats(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
