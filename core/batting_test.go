package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/trackstat/internal/table"
	"github.com/dugoutlab/trackstat/schema"
)

var eventHeader = []string{
	"Batter", "BatterTeam", "BatterSide", "Pitcher", "PitcherTeam",
	"PlayResult", "KorBB", "PitchCall", "TaggedPitchType", "TaggedHitType",
	"PlateLocHeight", "PlateLocSide", "ExitSpeed", "Angle", "Direction",
	"RelSpeed", "League",
}

// threeRowScenario is one batter's micro-game: a batted single on an
// in-zone pitch, a strikeout and a walk on out-of-zone pitches.
func threeRowScenario() *table.EventTable {
	return table.New(eventHeader, [][]string{
		{"Soto, Juan", "WAS", "Right", "Cole, Gerrit", "NYY",
			"Single", "Undefined", "InPlay", "Fastball", "LineDrive",
			"2.5", "0.0", "95", "20", "10", "96.5", "A10"},
		{"Soto, Juan", "WAS", "Right", "Cole, Gerrit", "NYY",
			"Undefined", "Strikeout", "StrikeCalled", "Slider", "",
			"4.0", "0.0", "", "", "", "88.0", "A10"},
		{"Soto, Juan", "WAS", "Right", "Cole, Gerrit", "NYY",
			"Undefined", "Walk", "BallCalled", "Fastball", "",
			"4.0", "1.0", "", "", "", "95.0", "A10"},
	})
}

// TestAggregateBattingScenario pins the counting predicates over the
// three-row scenario.
func TestAggregateBattingScenario(t *testing.T) {
	lines, err := AggregateBatting(threeRowScenario(), "20240501-Field-1.csv", LoadModels("", "", ""))
	require.NoError(t, err)
	require.Len(t, lines, 1)

	key := schema.EntityKey{Player: "Soto, Juan", Team: "WAS", Year: 2024}
	line := lines[key]
	require.NotNil(t, line)

	assert.Equal(t, 3, line.Count(schema.CountPlateApp))
	assert.Equal(t, 2, line.Count(schema.CountAtBats))
	assert.Equal(t, 1, line.Count(schema.CountBattedBalls))
	assert.Equal(t, 1, line.Count(schema.CountHits))
	assert.Equal(t, 1, line.Count(schema.CountSingles))
	assert.Equal(t, 1, line.Count(schema.CountStrikeouts))
	assert.Equal(t, 1, line.Count(schema.CountWalks))
	assert.Equal(t, 1, line.Count(schema.CountInZonePitches))
	assert.Equal(t, 2, line.Count(schema.CountOutZonePitches))
	assert.Equal(t, 0, line.Count(schema.CountChases)) // no out-of-zone swings
	assert.Equal(t, 1, line.Count(schema.CountHardHits))
	assert.Equal(t, 1, line.Count(schema.CountSweetSpots))

	require.NotNil(t, line.Rate(schema.RateStrikeout))
	assert.InDelta(t, 0.333, *line.Rate(schema.RateStrikeout), 0.001)
	require.NotNil(t, line.Rate(schema.RateWalk))
	assert.InDelta(t, 0.333, *line.Rate(schema.RateWalk), 0.001)
	require.NotNil(t, line.Rate(schema.RateBattingAvg))
	assert.InDelta(t, 0.5, *line.Rate(schema.RateBattingAvg), 0.001)
	require.NotNil(t, line.Rate(schema.RateOnBase))
	assert.InDelta(t, 2.0/3, *line.Rate(schema.RateOnBase), 0.001)
	require.NotNil(t, line.Rate(schema.RateAvgExitVelo))
	assert.InDelta(t, 95.0, *line.Rate(schema.RateAvgExitVelo), 0.001)

	// OPS composes on-base and slugging.
	require.NotNil(t, line.Rate(schema.RateOPS))
	assert.InDelta(t, 2.0/3+0.5, *line.Rate(schema.RateOPS), 0.001)

	// With no grid loaded the batted ball scores the default mean,
	// scaled by the in-play share of at-bats.
	require.NotNil(t, line.Rate(schema.RateXBA))
	assert.InDelta(t, DefaultXBAMean*1/2, *line.Rate(schema.RateXBA), 0.001)

	// Model-backed stats default to zero when no model is configured.
	require.NotNil(t, line.Rate(schema.RateXSLG))
	assert.InDelta(t, 0.0, *line.Rate(schema.RateXSLG), 0.001)
	require.NotNil(t, line.Rate(schema.RateXWOBA))
	assert.InDelta(t, 0.0, *line.Rate(schema.RateXWOBA), 0.001)

	assert.Contains(t, line.ProcessedDates, "2024-05-01")
}

// TestAggregateBattingZeroDenominators verifies rates stay nil when
// their denominators never move.
func TestAggregateBattingZeroDenominators(t *testing.T) {
	tbl := table.New(eventHeader, [][]string{
		{"Soto, Juan", "WAS", "Right", "Cole, Gerrit", "NYY",
			"Undefined", "Walk", "BallCalled", "Fastball", "",
			"4.0", "1.0", "", "", "", "95.0", "A10"},
	})
	lines, err := AggregateBatting(tbl, "20240501-Field-1.csv", LoadModels("", "", ""))
	require.NoError(t, err)

	line := lines[schema.EntityKey{Player: "Soto, Juan", Team: "WAS", Year: 2024}]
	require.NotNil(t, line)
	assert.Nil(t, line.Rate(schema.RateBattingAvg))  // no at-bats
	assert.Nil(t, line.Rate(schema.RateWhiff))       // no in-zone pitches
	assert.Nil(t, line.Rate(schema.RateHardHit))     // no batted balls
	assert.Nil(t, line.Rate(schema.RateAvgExitVelo)) // no measured contact
	assert.Nil(t, line.Rate(schema.RateXBA))         // no at-bats
}

// TestAggregateBattingPracticeRemap verifies one practice-flagged row
// remaps the whole file's team codes.
func TestAggregateBattingPracticeRemap(t *testing.T) {
	rows := [][]string{
		{"Soto, Juan", "WAS", "Right", "Cole, Gerrit", "NYY",
			"Single", "Undefined", "InPlay", "Fastball", "LineDrive",
			"2.5", "0.0", "95", "20", "10", "96.5", "A10"},
		{"Betts, Mookie", "LAD", "Right", "Cole, Gerrit", "NYY",
			"Out", "Undefined", "InPlay", "Fastball", "GroundBall",
			"2.0", "0.2", "88", "-5", "-20", "94.0", "Team"},
	}
	lines, err := AggregateBatting(table.New(eventHeader, rows), "20240501-Field-1.csv", LoadModels("", "", ""))
	require.NoError(t, err)

	assert.Contains(t, lines, schema.EntityKey{Player: "Soto, Juan", Team: "WAS-P", Year: 2024})
	assert.Contains(t, lines, schema.EntityKey{Player: "Betts, Mookie", Team: "LAD-P", Year: 2024})
	assert.NotContains(t, lines, schema.EntityKey{Player: "Soto, Juan", Team: "WAS", Year: 2024})
}

// TestAggregateBattingDegrades covers the two input failure modes:
// missing required columns degrade to empty, an undatable filename is
// an error.
func TestAggregateBattingDegrades(t *testing.T) {
	t.Run("missing columns", func(t *testing.T) {
		tbl := table.New([]string{"Batter", "BatterTeam"}, [][]string{{"Soto, Juan", "WAS"}})
		lines, err := AggregateBatting(tbl, "20240501-Field-1.csv", LoadModels("", "", ""))
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("no date in filename", func(t *testing.T) {
		_, err := AggregateBatting(threeRowScenario(), "notes.csv", LoadModels("", "", ""))
		assert.Error(t, err)
	})

	t.Run("blank identity rows dropped", func(t *testing.T) {
		tbl := table.New(eventHeader, [][]string{
			{"", "WAS", "Right", "Cole, Gerrit", "NYY", "Single", "Undefined",
				"InPlay", "Fastball", "", "2.5", "0.0", "95", "20", "10", "96.5", "A10"},
		})
		lines, err := AggregateBatting(tbl, "20240501-Field-1.csv", LoadModels("", "", ""))
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}
