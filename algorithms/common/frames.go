package common

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/RyanBlaney/sonido-shrp/algorithms/windowing"
)

// ErrInvalidFrame is returned when frames cannot be cut from a signal
var ErrInvalidFrame = errors.New("invalid frame request")

// FrameStart returns the first sample of a frame of length frameLength
// centered at center. The frame is shifted inward at either signal edge
// so it always spans exactly frameLength samples.
func FrameStart(center, frameLength, numSamples int) int {
	start := center - Round(float64(frameLength)/2)
	if start < 0 {
		start = 0
	}
	if start+frameLength > numSamples {
		start = numSamples - frameLength
	}
	return start
}

// ToFrames slices samples into windowed frames, one row per center
// position (0-origin sample indices). Every row has frameLength columns
// regardless of how close the center is to the signal bounds.
func ToFrames(samples []float64, centers []int, frameLength int, windowName string) (*mat.Dense, error) {
	if len(centers) == 0 {
		return nil, fmt.Errorf("%w: no center positions", ErrInvalidFrame)
	}
	if frameLength < 1 || frameLength > len(samples) {
		return nil, fmt.Errorf("%w: frame length %d for %d samples", ErrInvalidFrame, frameLength, len(samples))
	}

	win, err := windowing.NewByName(frameLength, windowName)
	if err != nil {
		return nil, err
	}

	frames := mat.NewDense(len(centers), frameLength, nil)
	for i, c := range centers {
		start := FrameStart(c, frameLength, len(samples))
		row := frames.RawRowView(i)
		copy(row, samples[start:start+frameLength])
		if err := win.ApplyInPlace(row); err != nil {
			return nil, err
		}
	}

	return frames, nil
}
