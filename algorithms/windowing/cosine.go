package windowing

import "math"

// cosineSum evaluates a0 - a1*cos(x) + a2*cos(2x) with x = 2*pi*i/(n-1),
// the symmetric form shared by Hann, Hamming and Blackman.
func cosineSum(n int, a0, a1, a2 float64) []float64 {
	coeffs := make([]float64, n)
	if n == 1 {
		coeffs[0] = 1.0
		return coeffs
	}

	denominator := float64(n - 1)
	for i := 0; i < n; i++ {
		x := 2 * math.Pi * float64(i) / denominator
		coeffs[i] = a0 - a1*math.Cos(x) + a2*math.Cos(2*x)
	}
	return coeffs
}

func hann(n int) []float64 {
	return cosineSum(n, 0.5, 0.5, 0)
}

func hamming(n int) []float64 {
	return cosineSum(n, 0.54, 0.46, 0)
}

func blackman(n int) []float64 {
	return cosineSum(n, 0.42, 0.5, 0.08)
}
