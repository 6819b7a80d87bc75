package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dugoutlab/trackstat/schema"
)

// TestNormalizePitchType covers alias spellings, case folding and the
// Other fallback.
func TestNormalizePitchType(t *testing.T) {
	tests := []struct {
		raw  string
		want schema.PitchType
	}{
		{"Fastball", schema.FourSeam},
		{"ff", schema.FourSeam},
		{"4-Seam", schema.FourSeam},
		{"  Four Seam Fastball ", schema.FourSeam},
		{"Two-Seam", schema.Sinker},
		{"SI", schema.Sinker},
		{"Sweeper", schema.Slider},
		{"curve", schema.Curveball},
		{"KC", schema.Curveball},
		{"ChangeUp", schema.Changeup},
		{"FC", schema.Cutter},
		{"split", schema.Splitter},
		{"Eephus", schema.OtherPitch},
		{"", schema.OtherPitch},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePitchType(tc.raw))
		})
	}
}

// TestNormalizeSide checks the lossy right-handed default.
func TestNormalizeSide(t *testing.T) {
	assert.Equal(t, "L", NormalizeSide("Left"))
	assert.Equal(t, "L", NormalizeSide("  l "))
	assert.Equal(t, "R", NormalizeSide("Right"))
	assert.Equal(t, "R", NormalizeSide("Switch"))
	assert.Equal(t, "R", NormalizeSide(""))
}

// TestIsInStrikeZone probes the band boundaries, which are inclusive on
// both ends.
func TestIsInStrikeZone(t *testing.T) {
	assert.True(t, IsInStrikeZone(2.5, 0.0))
	assert.True(t, IsInStrikeZone(1.77, -0.86))
	assert.True(t, IsInStrikeZone(3.55, 0.86))
	assert.False(t, IsInStrikeZone(1.76, 0.0))
	assert.False(t, IsInStrikeZone(3.56, 0.0))
	assert.False(t, IsInStrikeZone(2.5, -0.87))
	assert.False(t, IsInStrikeZone(2.5, 0.87))
}

// TestIsFastball confirms only four-seamers and sinkers feed the
// fastball velocity aggregate.
func TestIsFastball(t *testing.T) {
	assert.True(t, IsFastball(schema.FourSeam))
	assert.True(t, IsFastball(schema.Sinker))
	assert.False(t, IsFastball(schema.Slider))
	assert.False(t, IsFastball(schema.OtherPitch))
}
