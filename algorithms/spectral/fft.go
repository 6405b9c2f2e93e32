package spectral

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT computes fixed-length transforms of real signals
type FFT struct {
	size int
}

// NewFFT creates an n-point FFT calculator
func NewFFT(n int) *FFT {
	return &FFT{size: n}
}

// Size returns the transform length
func (f *FFT) Size() int {
	return f.size
}

// Compute zero-pads or truncates x to the transform length and returns its
// spectrum via mjibson/go-dsp
func (f *FFT) Compute(x []float64) []complex128 {
	if f.size <= 0 {
		return []complex128{}
	}

	padded := make([]float64, f.size)
	copy(padded, x)
	return fft.FFTReal(padded)
}

// Magnitude returns |X[k]| for k in [from, to] (inclusive)
func Magnitude(spectrum []complex128, from, to int) []float64 {
	if from < 0 || to >= len(spectrum) || from > to {
		return []float64{}
	}

	mag := make([]float64, to-from+1)
	for i := range mag {
		mag[i] = cmplx.Abs(spectrum[from+i])
	}
	return mag
}
