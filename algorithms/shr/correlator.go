package shr

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Result is the outcome of the subharmonic-shift correlation of one frame
type Result struct {
	// PeakIndex is the selected position on the log-frequency grid, or
	// Unvoiced when no positive peak exists.
	PeakIndex int

	// SHR is the subharmonic-to-harmonic ratio, zero unless two
	// candidates were found.
	SHR float64

	// Difference is the even-harmonic sum minus the odd-harmonic sum
	Difference []float64

	// Candidates and Magnitudes are the peaks reported by TwoMax
	Candidates []int
	Magnitudes []float64

	// ShiftMatrix has one row per harmonic number: row r holds the
	// log-spectrum compressed by a factor r+1, so column j reads the
	// spectrum at (r+1) times the frequency of grid point j.
	ShiftMatrix *mat.Dense
}

// Voiced reports whether a peak was selected
func (r Result) Voiced() bool {
	return r.PeakIndex != Unvoiced
}

// ComputeSHR correlates logSpectrum with its shifted copies for harmonics
// 1..n and picks the pitch peak.
//
// startPos[i-1] and endPos[i-1] (inclusive, 0-origin) locate the copy for
// harmonic i+1 within a row of length shiftUnits+len(logSpectrum); the
// unshifted copy for harmonic 1 sits at the right end of that row. The
// first shiftUnits columns only exist to hold the largest shift and are
// dropped before summation.
func ComputeSHR(logSpectrum []float64, minBin float64, startPos, endPos []int,
	lowerBound, upperBound, n, shiftUnits int, threshold float64) (Result, error) {

	specLen := len(logSpectrum)
	if specLen == 0 || n < 1 || shiftUnits < 0 {
		return Result{}, fmt.Errorf("%w: spectrum length %d, %d harmonics, %d shift units", ErrInvalidInput, specLen, n, shiftUnits)
	}
	if len(startPos) < n-1 || len(endPos) < n-1 {
		return Result{}, fmt.Errorf("%w: %d/%d shift positions for %d harmonics", ErrInvalidInput, len(startPos), len(endPos), n)
	}

	totalLen := shiftUnits + specLen
	shifted := mat.NewDense(n, totalLen, nil)
	copy(shifted.RawRowView(0)[shiftUnits:], logSpectrum)
	for i := 1; i < n; i++ {
		start, end := startPos[i-1], endPos[i-1]
		if start < 0 || end >= totalLen || end < start || end-start+1 > specLen {
			return Result{}, fmt.Errorf("%w: shift window [%d, %d] for harmonic %d", ErrInvalidInput, start, end, i+1)
		}
		copy(shifted.RawRowView(i)[start:end+1], logSpectrum[:end-start+1])
	}
	shiftMatrix := shifted.Slice(0, n, shiftUnits, totalLen).(*mat.Dense)

	// Row r holds harmonic number r+1, so odd rows carry even harmonics.
	evenHarmonics := make([]float64, specLen)
	oddHarmonics := make([]float64, specLen)
	for r := 0; r < n; r++ {
		if (r+1)%2 == 0 {
			floats.Add(evenHarmonics, shiftMatrix.RawRowView(r))
		} else {
			floats.Add(oddHarmonics, shiftMatrix.RawRowView(r))
		}
	}
	difference := make([]float64, specLen)
	floats.SubTo(difference, evenHarmonics, oddHarmonics)

	mags, indices := TwoMax(difference, lowerBound, upperBound, minBin)
	peak, ratio := selectPeak(mags, indices, threshold)

	return Result{
		PeakIndex:   peak,
		SHR:         ratio,
		Difference:  difference,
		Candidates:  indices,
		Magnitudes:  mags,
		ShiftMatrix: shiftMatrix,
	}, nil
}

// selectPeak applies the SHR decision rule. With two candidates the first
// (lower, subharmonic) one wins only when SHR exceeds threshold; at or
// below threshold the harmonic is favored.
func selectPeak(mags []float64, indices []int, threshold float64) (int, float64) {
	switch len(mags) {
	case 1:
		if mags[0] > 0 {
			return indices[0], 0
		}
		return Unvoiced, 0
	case 2:
		ratio := (mags[0] - mags[1]) / (mags[0] + mags[1])
		if ratio <= threshold {
			return indices[1], ratio
		}
		return indices[0], ratio
	default:
		return Unvoiced, 0
	}
}
