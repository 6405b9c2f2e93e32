package windowing

import "math"

// triangular builds a ramp of floor(m)+1 points, m = (n-1)/2, and mirrors
// it back down from index ceil(m)-1. Both ends are zero for n > 1.
func triangular(n int) []float64 {
	if n == 1 {
		return []float64{1.0}
	}

	m := float64(n-1) / 2
	ramp := make([]float64, int(math.Floor(m))+1)
	for k := range ramp {
		ramp[k] = float64(k) / m
	}

	coeffs := make([]float64, 0, n)
	coeffs = append(coeffs, ramp...)
	for k := int(math.Ceil(m)) - 1; k >= 0; k-- {
		coeffs = append(coeffs, ramp[k])
	}
	return coeffs
}
