package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/trackstat/internal/table"
	"github.com/dugoutlab/trackstat/schema"
)

// TestAggregateZoneBins verifies the per-zone split and the invariant
// that bin totals sum to the pitcher's located pitches.
func TestAggregateZoneBins(t *testing.T) {
	rows := [][]string{
		// Dead center, swinging strike on a four-seamer.
		{"Soto, Juan", "WAS", "Left", "Cole, Gerrit", "NYY",
			"Undefined", "Undefined", "StrikeSwinging", "Fastball", "",
			"2.5", "0.0", "", "", "", "97.0", "A10"},
		// Same cell, ball in play.
		{"Betts, Mookie", "LAD", "Right", "Cole, Gerrit", "NYY",
			"Out", "Undefined", "InPlay", "Slider", "GroundBall",
			"2.6", "0.1", "85", "-10", "5", "86.0", "A10"},
		// High and away, taken.
		{"Betts, Mookie", "LAD", "Right", "Cole, Gerrit", "NYY",
			"Undefined", "Undefined", "BallCalled", "Fastball", "",
			"4.0", "1.0", "", "", "", "96.0", "A10"},
		// Missing location, contributes to no bin.
		{"Betts, Mookie", "LAD", "Right", "Cole, Gerrit", "NYY",
			"Undefined", "Undefined", "BallCalled", "Fastball", "",
			"", "", "", "", "", "95.0", "A10"},
	}

	lines, err := AggregateZoneBins(table.New(eventHeader, rows), "20240501-Field-1.csv")
	require.NoError(t, err)

	center := lines[schema.EntityKey{Player: "Cole, Gerrit", Team: "NYY", Year: 2024, Zone: 5}]
	require.NotNil(t, center)
	assert.Equal(t, 2, center.Count(schema.CountZonePitches))
	assert.Equal(t, 2, center.Count(schema.CountZoneSwings))
	assert.Equal(t, 1, center.Count(schema.CountZoneWhiffs))
	assert.Equal(t, 1, center.Count(schema.CountZoneInPlay))
	assert.Equal(t, 1, center.Count(schema.CountFastballs))
	assert.Equal(t, 1, center.Count(schema.CountZoneVsLeft))
	assert.Equal(t, 1, center.Count(schema.CountZoneVsRight))

	highAway := lines[schema.EntityKey{Player: "Cole, Gerrit", Team: "NYY", Year: 2024, Zone: 11}]
	require.NotNil(t, highAway)
	assert.Equal(t, 1, highAway.Count(schema.CountZonePitches))
	assert.Equal(t, 0, highAway.Count(schema.CountZoneSwings))

	// Bin totals cover exactly the located pitches.
	total := 0
	for _, line := range lines {
		total += line.Count(schema.CountZonePitches)
	}
	assert.Equal(t, 3, total)
}

// TestAggregateZoneBinsDegrades mirrors the shared input policies.
func TestAggregateZoneBinsDegrades(t *testing.T) {
	t.Run("missing columns", func(t *testing.T) {
		tbl := table.New([]string{"Pitcher", "PitcherTeam"}, [][]string{{"Cole, Gerrit", "NYY"}})
		lines, err := AggregateZoneBins(tbl, "20240501-Field-1.csv")
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("no date in filename", func(t *testing.T) {
		_, err := AggregateZoneBins(table.New(eventHeader, nil), "notes.csv")
		assert.Error(t, err)
	})
}
