package windowing

// rectangular returns the boxcar window: all ones
func rectangular(n int) []float64 {
	coeffs := make([]float64, n)
	for i := range coeffs {
		coeffs[i] = 1.0
	}
	return coeffs
}
