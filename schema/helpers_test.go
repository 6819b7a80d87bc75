package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRatio verifies the zero-denominator invariant.
func TestRatio(t *testing.T) {
	tests := []struct {
		name     string
		num, den int
		expected *float64
	}{
		{name: "zero denominator", num: 5, den: 0, expected: nil},
		{name: "simple ratio", num: 1, den: 3, expected: Float(1.0 / 3.0)},
		{name: "zero numerator", num: 0, den: 10, expected: Float(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ratio(tt.num, tt.den)
			if tt.expected == nil {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
				assert.InDelta(t, *tt.expected, *got, 0.0001)
			}
		})
	}
}

// TestMeanOf verifies the nil-on-empty behavior for measured means.
func TestMeanOf(t *testing.T) {
	assert.Nil(t, MeanOf(0, 0))
	got := MeanOf(190.0, 2)
	assert.NotNil(t, got)
	assert.InDelta(t, 95.0, *got, 0.0001)
}

// TestClampNonNegative verifies negative rates floor at zero and nil
// passes through.
func TestClampNonNegative(t *testing.T) {
	assert.Nil(t, ClampNonNegative(nil))
	assert.Equal(t, 0.0, *ClampNonNegative(Float(-0.2)))
	assert.Equal(t, 0.4, *ClampNonNegative(Float(0.4)))
}

// TestRound3 verifies display precision.
func TestRound3(t *testing.T) {
	assert.Equal(t, 0.333, Round3(1.0/3.0))
	assert.Equal(t, 92.0, Round3(92.0))
}
