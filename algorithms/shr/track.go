package shr

import (
	"math"
	"sort"

	"github.com/RyanBlaney/sonido-shrp/algorithms/common"
)

// Track holds the per-frame output of an SHRP run. Unvoiced frames carry
// NaN in F0, SHR and both candidate slots.
type Track struct {
	// Times are frame center times in ms
	Times []float64 `json:"times"`

	F0  []float64 `json:"f0"`
	SHR []float64 `json:"shr"`

	// Candidates holds the subharmonic and harmonic F0 candidates of each
	// frame. Slot 0 is NaN when only one candidate was found.
	Candidates [][2]float64 `json:"candidates"`
}

func newTrack(times []float64) *Track {
	n := len(times)
	t := &Track{
		Times:      times,
		F0:         make([]float64, n),
		SHR:        make([]float64, n),
		Candidates: make([][2]float64, n),
	}
	nan := math.NaN()
	for i := 0; i < n; i++ {
		t.F0[i] = nan
		t.SHR[i] = nan
		t.Candidates[i] = [2]float64{nan, nan}
	}
	return t
}

// Len returns the number of frames
func (t *Track) Len() int {
	return len(t.Times)
}

// VoicedCount returns the number of frames with a defined F0
func (t *Track) VoicedCount() int {
	count := 0
	for _, f := range t.F0 {
		if !math.IsNaN(f) {
			count++
		}
	}
	return count
}

// Align resamples the track onto the measurement grid 0, frameShift,
// 2*frameShift, ... ms of length dataLen. Each grid point takes the frame
// whose center time, rounded to whole ms, is nearest; points further than
// precision*frameShift from every frame stay NaN.
func (t *Track) Align(dataLen int, frameShift float64, precision int) (f0, shr []float64) {
	f0 = make([]float64, max(dataLen, 0))
	shr = make([]float64, max(dataLen, 0))
	for i := range f0 {
		f0[i] = math.NaN()
		shr[i] = math.NaN()
	}
	if t.Len() == 0 || dataLen <= 0 || frameShift <= 0 {
		return f0, shr
	}

	rounded := make([]float64, t.Len())
	for i, tm := range t.Times {
		rounded[i] = float64(common.Round(tm))
	}

	last := rounded[len(rounded)-1]
	stop := last
	if math.Mod(last, frameShift) == 0 {
		stop = last + frameShift
	}
	tolerance := float64(precision) * frameShift

	for idx := 0; idx < dataLen; idx++ {
		tf := float64(idx) * frameShift
		if tf >= stop {
			break
		}
		nearest := nearestIndex(rounded, tf)
		if math.Abs(rounded[nearest]-tf) > tolerance {
			continue
		}
		f0[idx] = t.F0[nearest]
		shr[idx] = t.SHR[nearest]
	}
	return f0, shr
}

// nearestIndex returns the lowest index of the value in sorted closest to x
func nearestIndex(sorted []float64, x float64) int {
	i := sort.SearchFloat64s(sorted, x)
	if i == len(sorted) {
		i--
	} else if i > 0 && x-sorted[i-1] <= sorted[i]-x {
		i--
	}
	for i > 0 && sorted[i-1] == sorted[i] {
		i--
	}
	return i
}

// DataLen returns the number of measurement grid points for a signal of
// numSamples samples at sampleRate Hz with frameShift ms spacing.
func DataLen(numSamples int, sampleRate, frameShift float64) int {
	if sampleRate <= 0 || frameShift <= 0 {
		return 0
	}
	return int(math.Floor(float64(numSamples) / sampleRate / frameShift * 1000))
}

// Pitch runs SHRP and aligns F0 and SHR onto a measurement grid of dataLen
// points spaced params.FrameShift ms apart. precision is the alignment
// tolerance in multiples of the frame shift.
func Pitch(samples []float64, sampleRate float64, dataLen, precision int, params Params) (f0, shr []float64, err error) {
	track, err := Analyze(samples, sampleRate, params)
	if err != nil {
		return nil, nil, err
	}
	f0, shr = track.Align(dataLen, params.FrameShift, precision)
	return f0, shr, nil
}
