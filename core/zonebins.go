package core

import (
	"fmt"

	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/dugoutlab/trackstat/internal/table"
	"github.com/dugoutlab/trackstat/schema"
)

// zoneRequired is the column set without which zone-bin aggregation
// degrades to an empty result.
var zoneRequired = []string{
	table.ColPitcher, table.ColPitcherTeam, table.ColPitchCall,
	table.ColPlateLocHeight, table.ColPlateLocSide,
}

// AggregateZoneBins reduces one event table to per-pitcher zone-bin
// lines keyed by (pitcher, team, year, zone). Bins hold only counts, so
// their merge is purely additive. Rows with missing or malformed plate
// coordinates are skipped and count toward no bin, which means the
// sum over a pitcher's bins equals that pitcher's located pitches.
func AggregateZoneBins(tbl *table.EventTable, sourceID string) (map[schema.EntityKey]*schema.StatLine, error) {
	date, err := contract.ParseSourceDate(sourceID)
	if err != nil {
		return nil, fmt.Errorf("cannot derive period for %s: %w", sourceID, err)
	}
	year, marker := date.Year(), contract.SourceDateMarker(date)

	if missing := tbl.MissingColumns(zoneRequired...); len(missing) > 0 {
		contract.LogWarn("zone-bin aggregation skipped", fmt.Errorf("%s lacks columns %v", sourceID, missing))
		return map[schema.EntityKey]*schema.StatLine{}, nil
	}

	practice := IsPracticeFile(tbl)
	acc := NewAccumulator(schema.ZoneProfile)

	for i := 0; i < tbl.Len(); i++ {
		row := tbl.Row(i)
		key, ok := identity(row, table.ColPitcher, table.ColPitcherTeam, year, practice)
		if !ok {
			continue
		}
		height, hok := row.Float(table.ColPlateLocHeight)
		side, sok := row.Float(table.ColPlateLocSide)
		if !hok || !sok {
			continue
		}

		key.Zone = ClassifyZone(side, height).ZoneID
		line := acc.Line(key)
		line.AddCount(schema.CountZonePitches, 1)

		call := row.Str(table.ColPitchCall)
		switch call {
		case callStrikeSwinging:
			line.AddCount(schema.CountZoneSwings, 1)
			line.AddCount(schema.CountZoneWhiffs, 1)
		case callFoulBall:
			line.AddCount(schema.CountZoneSwings, 1)
		case callInPlay:
			line.AddCount(schema.CountZoneSwings, 1)
			line.AddCount(schema.CountZoneInPlay, 1)
		}

		if IsFastball(NormalizePitchType(row.Str(table.ColTaggedPitchType))) {
			line.AddCount(schema.CountFastballs, 1)
		}
		if NormalizeSide(row.Str(table.ColBatterSide)) == "L" {
			line.AddCount(schema.CountZoneVsLeft, 1)
		} else {
			line.AddCount(schema.CountZoneVsRight, 1)
		}
	}

	acc.Finalize(marker)
	return acc.Lines(), nil
}
