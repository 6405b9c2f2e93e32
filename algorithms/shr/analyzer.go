package shr

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/RyanBlaney/sonido-shrp/algorithms/common"
	"github.com/RyanBlaney/sonido-shrp/algorithms/spectral"
	"github.com/RyanBlaney/sonido-shrp/logging"
)

// Analyzer runs SHRP over signals of one sample rate.
//
// Everything that does not depend on frame content (frame geometry, the
// log-frequency grid, shift positions and search bounds) is derived once
// in NewAnalyzer. An Analyzer is safe for concurrent use.
//
// Reference:
//   - Sun, X. (2002). "Pitch determination and voice quality analysis using
//     subharmonic-to-harmonic ratio". Proc. ICASSP 2002.
type Analyzer struct {
	params     Params
	sampleRate float64

	segmentLen int
	increment  int

	grid  *spectral.LogFrequencyGrid
	freqs []float64

	harmonics  int
	shiftUnits int
	startPos   []int
	endPos     []int
	lowerBound int
	upperBound int

	logger logging.Logger
}

// NewAnalyzer validates params and prepares an analyzer for sampleRate Hz
func NewAnalyzer(sampleRate float64, params Params) (*Analyzer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: sample rate %g", ErrInvalidParams, sampleRate)
	}

	segmentLen := common.Round(params.FrameLength * sampleRate / 1000)
	if segmentLen < 2 {
		return nil, fmt.Errorf("%w: frame length %g ms is %d samples at %g Hz", ErrInvalidParams, params.FrameLength, segmentLen, sampleRate)
	}
	increment := common.Round(params.FrameShift * sampleRate / 1000)
	if increment < 1 {
		return nil, fmt.Errorf("%w: frame shift %g ms is below one sample at %g Hz", ErrInvalidParams, params.FrameShift, sampleRate)
	}

	fftLen := common.NextPowerOfTwo(int(math.Ceil(float64(segmentLen) * (1 + interpolationDepth))))
	grid, err := spectral.NewLogFrequencyGrid(sampleRate, fftLen, params.Ceiling)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	a := &Analyzer{
		params:     params,
		sampleRate: sampleRate,
		segmentLen: segmentLen,
		increment:  increment,
		grid:       grid,
		freqs:      grid.Frequencies(),
		harmonics:  params.harmonics(),
		logger:     logging.WithFields(logging.Fields{"component": "shrp"}),
	}

	interpLen := grid.Len()
	a.shiftUnits = common.Round(math.Log2(float64(a.harmonics)) / grid.MinBin)
	totalLen := a.shiftUnits + interpLen
	a.startPos = make([]int, a.harmonics-1)
	a.endPos = make([]int, a.harmonics-1)
	for h := 2; h <= a.harmonics; h++ {
		start := a.shiftUnits - common.Round(math.Log2(float64(h))/grid.MinBin)
		if start < 0 {
			start = 0
		}
		end := start + interpLen - 1
		if end > totalLen-1 {
			end = totalLen - 1
		}
		a.startPos[h-2] = start
		a.endPos[h-2] = end
	}

	// The difference curve peaks at F0/2, so the search covers half the F0 range
	a.upperBound = common.FirstAtOrAbove(grid.InterpLogFreq, math.Log2(params.MaxF0/2))
	if a.upperBound < 0 {
		return nil, fmt.Errorf("%w: max F0 %g Hz is beyond the analyzed spectrum (ceiling %g Hz)", ErrInvalidParams, params.MaxF0, params.Ceiling)
	}
	a.lowerBound = common.FirstAtOrAbove(grid.InterpLogFreq, math.Log2(params.MinF0/2))

	a.logger.Debug("SHRP analyzer ready", logging.Fields{
		"sample_rate": sampleRate,
		"segment_len": segmentLen,
		"increment":   increment,
		"fft_len":     fftLen,
		"harmonics":   a.harmonics,
		"shift_units": a.shiftUnits,
		"grid_len":    interpLen,
		"lower_bound": a.lowerBound,
		"upper_bound": a.upperBound,
	})

	return a, nil
}

// Params returns the parameters the analyzer was built with
func (a *Analyzer) Params() Params {
	return a.params
}

// FFTLength returns the FFT size used per frame
func (a *Analyzer) FFTLength() int {
	return a.grid.FFTLength
}

// SegmentLength returns the frame length in samples
func (a *Analyzer) SegmentLength() int {
	return a.segmentLen
}

// Harmonics returns the number of shifted spectra per frame
func (a *Analyzer) Harmonics() int {
	return a.harmonics
}

// Bounds returns the inclusive search range on the log-frequency grid
func (a *Analyzer) Bounds() (lower, upper int) {
	return a.lowerBound, a.upperBound
}

// Frequency returns the frequency in Hz of log-frequency grid point i
func (a *Analyzer) Frequency(i int) float64 {
	return a.freqs[i]
}

// NumFrames returns the number of analysis frames for a signal of
// numSamples samples.
func (a *Analyzer) NumFrames(numSamples int) int {
	n := numSamples - a.segmentLen + a.increment
	if n < a.increment {
		return 0
	}
	return n / a.increment
}

// FrameTimes returns the center time (ms) of each frame
func (a *Analyzer) FrameTimes(numFrames int) []float64 {
	times := make([]float64, numFrames)
	for n := range times {
		times[n] = float64(n)*a.params.FrameShift + a.params.FrameLength/2
	}
	return times
}

// AnalyzeFrame runs the log-spectrum and shift correlation on one
// windowed frame of SegmentLength samples.
func (a *Analyzer) AnalyzeFrame(frame []float64) (Result, error) {
	spectrum, err := a.grid.Spectrum(frame)
	if err != nil {
		return Result{}, err
	}
	return ComputeSHR(spectrum, a.grid.MinBin, a.startPos, a.endPos,
		a.lowerBound, a.upperBound, a.harmonics, a.shiftUnits, a.params.Threshold)
}

// toF0 converts a grid frequency to F0. The grid covers F0/2; a doubled
// value above MaxF0 is folded back down an octave.
func (a *Analyzer) toF0(freq float64) float64 {
	f0 := freq * 2
	if f0 > a.params.MaxF0 {
		f0 /= 2
	}
	return f0
}

// Analyze runs SHRP over samples. The signal is DC-removed and peak
// normalized before framing. A signal shorter than one frame yields an
// empty Track.
func (a *Analyzer) Analyze(samples []float64) (*Track, error) {
	numFrames := a.NumFrames(len(samples))
	track := newTrack(a.FrameTimes(numFrames))
	if numFrames == 0 {
		a.logger.Warn("signal shorter than one analysis frame", logging.Fields{
			"samples":     len(samples),
			"segment_len": a.segmentLen,
		})
		return track, nil
	}

	y := common.RemoveDC(samples)
	common.PeakNormalize(y)

	centers := make([]int, numFrames)
	for n, t := range track.Times {
		centers[n] = common.Round(t * a.sampleRate / 1000)
	}
	frames, err := common.ToFrames(y, centers, a.segmentLen, analysisWindow)
	if err != nil {
		return nil, err
	}

	workers := a.params.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for n := 0; n < numFrames; n++ {
		n := n
		g.Go(func() error {
			res, err := a.AnalyzeFrame(frames.RawRowView(n))
			if err != nil {
				return fmt.Errorf("frame %d: %w", n, err)
			}
			a.store(track, n, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := track.Summarize()
	a.logger.Info("SHRP analysis complete", logging.Fields{
		"frames":    summary.Frames,
		"voiced":    summary.Voiced,
		"median_f0": summary.MedianF0,
	})
	return track, nil
}

// store writes frame n of res into track. Each frame owns its index, so
// concurrent calls for distinct n do not conflict.
func (a *Analyzer) store(track *Track, n int, res Result) {
	if !res.Voiced() {
		return // newTrack already filled NaN
	}

	track.F0[n] = a.toF0(a.freqs[res.PeakIndex])
	track.SHR[n] = res.SHR
	if len(res.Candidates) == 1 {
		track.Candidates[n][1] = a.toF0(a.freqs[res.Candidates[0]])
	} else {
		track.Candidates[n][0] = a.toF0(a.freqs[res.Candidates[0]])
		track.Candidates[n][1] = a.toF0(a.freqs[res.Candidates[1]])
	}
}

// Analyze runs SHRP over samples recorded at sampleRate Hz
func Analyze(samples []float64, sampleRate float64, params Params) (*Track, error) {
	a, err := NewAnalyzer(sampleRate, params)
	if err != nil {
		return nil, err
	}
	return a.Analyze(samples)
}
