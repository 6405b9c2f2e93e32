package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// RemoveDC returns a copy of data with its mean subtracted
func RemoveDC(data []float64) []float64 {
	out := make([]float64, len(data))
	if len(data) == 0 {
		return out
	}
	copy(out, data)
	floats.AddConst(-Mean(data), out)
	return out
}

// PeakNormalize scales data in place so that max |x| == 1.
// An all-zero signal is left untouched.
func PeakNormalize(data []float64) {
	peak := 0.0
	for _, v := range data {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak == 0 {
		return
	}
	floats.Scale(1/peak, data)
}

// MaxInRange returns the maximum of data[lo..hi] (inclusive) and the index
// of its first occurrence. The bounds must satisfy 0 <= lo <= hi < len(data).
func MaxInRange(data []float64, lo, hi int) (float64, int) {
	idx := floats.MaxIdx(data[lo:hi+1]) + lo
	return data[idx], idx
}

// FirstAtOrAbove returns the first index i with data[i] >= threshold, or -1.
// data is expected to be ascending.
func FirstAtOrAbove(data []float64, threshold float64) int {
	for i, v := range data {
		if v >= threshold {
			return i
		}
	}
	return -1
}

// Round rounds half away from zero and converts to int
func Round(x float64) int {
	return int(math.Round(x))
}

// IsPowerOfTwo checks if n is a power of 2
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// NextPowerOfTwo finds the next power of 2 >= n
func NextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}

	power := 1
	for power < n {
		power <<= 1
	}
	return power
}

// ClampInt constrains an integer to [lo, hi]
func ClampInt(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
