package schema

import "math"

// Float returns a pointer to v. Handy for literal rate values.
func Float(v float64) *float64 {
	return &v
}

// Ratio divides two counting fields, returning nil when the denominator
// is zero. This is the zero-denominator invariant for every rate field:
// undefined rather than NaN or zero.
func Ratio(num, den int) *float64 {
	if den == 0 {
		return nil
	}
	v := float64(num) / float64(den)
	return &v
}

// MeanOf returns the mean of sum over n observations, nil when n is zero.
func MeanOf(sum float64, n int) *float64 {
	if n == 0 {
		return nil
	}
	v := sum / float64(n)
	return &v
}

// Round3 rounds to three decimal digits, the precision the persisted
// tables and reports present rates at.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// ClampNonNegative floors a rate pointer at zero. Rates are shares or
// physical measurements and can never be negative, even when the inputs
// carry noise.
func ClampNonNegative(v *float64) *float64 {
	if v == nil {
		return nil
	}
	if *v < 0 {
		zero := 0.0
		return &zero
	}
	return v
}
