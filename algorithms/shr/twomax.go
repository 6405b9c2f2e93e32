package shr

import (
	"math"

	"github.com/RyanBlaney/sonido-shrp/algorithms/common"
)

// TwoMax finds the largest value of curve within [lowerBound, upperBound]
// and, when that value is positive, the largest value in a window around one
// octave above it. unitLen is the log2-frequency spacing of curve.
//
// Magnitudes come back in discovery order: the global maximum first, the
// octave candidate second if it is positive. Ties resolve to the lowest
// index. A first magnitude <= 0 is returned alone.
func TwoMax(curve []float64, lowerBound, upperBound int, unitLen float64) ([]float64, []int) {
	if len(curve) == 0 || lowerBound > upperBound {
		return nil, nil
	}
	lowerBound = common.ClampInt(lowerBound, 0, len(curve)-1)
	upperBound = common.ClampInt(upperBound, 0, len(curve)-1)

	mag, idx := common.MaxInRange(curve, lowerBound, upperBound)
	mags := []float64{mag}
	indices := []int{idx}
	if mag <= 0 || unitLen <= 0 {
		return mags, indices
	}

	bound := upperBound // already clamped to len(curve)-1
	start := idx + common.Round(math.Log2(octaveHarmonic-searchLimit)/unitLen)
	if start > bound {
		return mags, indices
	}
	end := idx + common.Round(math.Log2(octaveHarmonic+searchLimit)/unitLen)
	if end > bound {
		end = bound
	}
	if end < start {
		return mags, indices
	}

	mag2, idx2 := common.MaxInRange(curve, start, end)
	if mag2 > 0 {
		mags = append(mags, mag2)
		indices = append(indices, idx2)
	}
	return mags, indices
}
