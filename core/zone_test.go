package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestClassifyZoneCenter pins the middle of the rectangle to zone 5.
func TestClassifyZoneCenter(t *testing.T) {
	res := ClassifyZone(0.0, 2.5)
	assert.Equal(t, 5, res.ZoneID)
	assert.True(t, res.InZone)
	assert.Equal(t, 2, res.Row)
	assert.Equal(t, 2, res.Col)
	assert.Equal(t, "NA", res.OuterLabel)
}

// TestClassifyZoneCorners checks all four rectangle corners land in the
// expected inner cells with rows counted bottom-up.
func TestClassifyZoneCorners(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		zone int
	}{
		{"bottom left", -0.83, 1.50, 1},
		{"bottom right", 0.83, 1.50, 3},
		{"top left", -0.83, 3.50, 7},
		{"top right", 0.83, 3.50, 9},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := ClassifyZone(tc.x, tc.y)
			assert.Equal(t, tc.zone, res.ZoneID)
			assert.True(t, res.InZone)
		})
	}
}

// TestClassifyZoneOuterQuadrants checks points outside the rectangle map
// to quadrants 10-13, including the midpoint and x=0 tie rules.
func TestClassifyZoneOuterQuadrants(t *testing.T) {
	tests := []struct {
		name  string
		x, y  float64
		zone  int
		label string
	}{
		{"above left", -1.0, 4.0, 10, "OTL"},
		{"above right", 1.0, 4.0, 11, "OTR"},
		{"below left", -1.0, 1.0, 12, "OBL"},
		{"below right", 1.0, 1.0, 13, "OBR"},
		{"exact midpoint falls bottom", 1.0, 2.5, 13, "OBR"},
		{"exact center line falls right", 0.9, 4.0, 11, "OTR"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := ClassifyZone(tc.x, tc.y)
			assert.Equal(t, tc.zone, res.ZoneID)
			assert.False(t, res.InZone)
			assert.Equal(t, tc.label, res.OuterLabel)
		})
	}
}

// TestClassifyZoneGridEdges exercises the left-inclusive bucketing on
// internal grid edges.
func TestClassifyZoneGridEdges(t *testing.T) {
	// x exactly on the first internal edge belongs to the middle column.
	res := ClassifyZone(-0.83/3, 2.5)
	assert.Equal(t, 5, res.ZoneID)

	// y exactly on the second internal edge belongs to the top row.
	res = ClassifyZone(0.0, 1.50+2*(3.50-1.50)/3)
	assert.Equal(t, 8, res.ZoneID)
}
