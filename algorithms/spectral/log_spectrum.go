package spectral

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

var (
	// ErrInvalidFFTLength is returned for FFT lengths that are not positive and even
	ErrInvalidFFTLength = errors.New("fft length must be positive and even")

	// ErrInvalidLimit is returned when the bin limit falls outside the half spectrum
	ErrInvalidLimit = errors.New("frequency bin limit out of range")

	// ErrInvalidGrid is returned when a log-frequency grid cannot be built
	ErrInvalidGrid = errors.New("invalid log-frequency grid")
)

// gridTolerance absorbs the rounding error accumulated when stepping the
// interpolation grid up to the last linear bin.
const gridTolerance = 1e-10

// LogFrequencyGrid maps linear FFT bins 1..Limit onto an evenly spaced
// log2-frequency axis. DC is excluded since log2(0) is undefined.
type LogFrequencyGrid struct {
	SampleRate float64
	FFTLength  int

	// Limit is the number of linear bins kept: bin Limit is the first one
	// at or above the ceiling frequency.
	Limit int

	// LogFreq holds log2 of the linear bin frequencies 1..Limit
	LogFreq []float64

	// MinBin is the spacing of the interpolated grid, the distance between
	// the two highest linear bins on the log axis.
	MinBin float64

	// InterpLogFreq is LogFreq[0], LogFreq[0]+MinBin, ... up to LogFreq[Limit-1]
	InterpLogFreq []float64
}

// NewLogFrequencyGrid builds the grid for an fftLength-point spectrum of a
// signal sampled at sampleRate, keeping bins up to the first one at or
// above ceiling Hz.
func NewLogFrequencyGrid(sampleRate float64, fftLength int, ceiling float64) (*LogFrequencyGrid, error) {
	if fftLength <= 0 || fftLength%2 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTLength, fftLength)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %g", ErrInvalidGrid, sampleRate)
	}

	half := fftLength / 2
	limit := 0
	for k := 1; k <= half; k++ {
		if sampleRate*float64(k)/float64(fftLength) >= ceiling {
			limit = k
			break
		}
	}
	if limit == 0 {
		return nil, fmt.Errorf("%w: ceiling %g Hz is above the Nyquist frequency %g Hz", ErrInvalidGrid, ceiling, sampleRate/2)
	}
	if limit < 2 {
		return nil, fmt.Errorf("%w: ceiling %g Hz leaves fewer than two bins", ErrInvalidGrid, ceiling)
	}

	logf := make([]float64, limit)
	for k := range logf {
		logf[k] = math.Log2(sampleRate * float64(k+1) / float64(fftLength))
	}
	minBin := logf[limit-1] - logf[limit-2]

	count := int(math.Floor((logf[limit-1]-logf[0])/minBin+gridTolerance)) + 1
	interpLogf := make([]float64, count)
	for i := range interpLogf {
		interpLogf[i] = logf[0] + float64(i)*minBin
	}

	return &LogFrequencyGrid{
		SampleRate:    sampleRate,
		FFTLength:     fftLength,
		Limit:         limit,
		LogFreq:       logf,
		MinBin:        minBin,
		InterpLogFreq: interpLogf,
	}, nil
}

// Frequencies returns the interpolated grid in Hz
func (g *LogFrequencyGrid) Frequencies() []float64 {
	freqs := make([]float64, len(g.InterpLogFreq))
	for i, lf := range g.InterpLogFreq {
		freqs[i] = math.Exp2(lf)
	}
	return freqs
}

// Len returns the number of points on the interpolated grid
func (g *LogFrequencyGrid) Len() int {
	return len(g.InterpLogFreq)
}

// Spectrum computes the log-spectrum of segment on this grid
func (g *LogFrequencyGrid) Spectrum(segment []float64) ([]float64, error) {
	return LogSpectrum(segment, g.FFTLength, g.Limit, g.LogFreq, g.InterpLogFreq)
}

// LogSpectrum computes the fftLen-point magnitude spectrum of segment, keeps
// bins 1..limit, interpolates them from logFreq onto interpLogFreq and shifts
// the result so its minimum is zero.
func LogSpectrum(segment []float64, fftLen, limit int, logFreq, interpLogFreq []float64) ([]float64, error) {
	if fftLen <= 0 || fftLen%2 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTLength, fftLen)
	}
	if limit < 2 || limit > fftLen/2 {
		return nil, fmt.Errorf("%w: %d for fft length %d", ErrInvalidLimit, limit, fftLen)
	}
	if len(logFreq) != limit {
		return nil, fmt.Errorf("%w: %d log frequencies for %d bins", ErrInvalidGrid, len(logFreq), limit)
	}
	if len(interpLogFreq) == 0 {
		return nil, fmt.Errorf("%w: empty interpolation grid", ErrInvalidGrid)
	}

	spectrum := NewFFT(fftLen).Compute(segment)
	amplitude := Magnitude(spectrum, 1, limit)

	var pl interp.PiecewiseLinear
	if err := pl.Fit(logFreq, amplitude); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGrid, err)
	}

	out := make([]float64, len(interpLogFreq))
	for i, x := range interpLogFreq {
		out[i] = pl.Predict(x)
	}
	floats.AddConst(-floats.Min(out), out)

	return out, nil
}
