package shr

import (
	"fmt"
	"math"
)

// Params configures an SHRP analysis
type Params struct {
	// Search range for F0 (Hz)
	MinF0 float64 `json:"min_f0"`
	MaxF0 float64 `json:"max_f0"`

	// Frame geometry (ms)
	FrameLength float64 `json:"frame_length"`
	FrameShift  float64 `json:"frame_shift"`

	// Threshold above which the subharmonic is taken as F0
	Threshold float64 `json:"threshold"`

	// Ceiling is the highest spectral frequency considered (Hz)
	Ceiling float64 `json:"ceiling"`

	// Unsupported post-processing; any non-zero value is rejected
	MedianSmooth int  `json:"median_smooth"`
	CheckVoicing bool `json:"check_voicing"`

	// Workers bounds concurrent frame analysis. 0 uses GOMAXPROCS.
	Workers int `json:"workers"`
}

// DefaultParams returns the analysis defaults from Sun (2002)
func DefaultParams() Params {
	return Params{
		MinF0:       50,
		MaxF0:       500,
		FrameLength: 40,
		FrameShift:  10,
		Threshold:   0.4,
		Ceiling:     1250,
	}
}

// Validate checks p before any frame is processed
func (p Params) Validate() error {
	if p.CheckVoicing {
		return fmt.Errorf("voicing detection: %w", ErrNotImplemented)
	}
	if p.MedianSmooth > 0 {
		return fmt.Errorf("median smoothing (order %d): %w", p.MedianSmooth, ErrNotImplemented)
	}

	switch {
	case p.MedianSmooth < 0:
		return fmt.Errorf("%w: median smoothing order %d", ErrInvalidParams, p.MedianSmooth)
	case !(p.MinF0 > 0):
		return fmt.Errorf("%w: min F0 %g must be positive", ErrInvalidParams, p.MinF0)
	case !(p.MaxF0 > p.MinF0):
		return fmt.Errorf("%w: max F0 %g must exceed min F0 %g", ErrInvalidParams, p.MaxF0, p.MinF0)
	case !(p.FrameLength > 0):
		return fmt.Errorf("%w: frame length %g ms", ErrInvalidParams, p.FrameLength)
	case !(p.FrameShift > 0):
		return fmt.Errorf("%w: frame shift %g ms", ErrInvalidParams, p.FrameShift)
	case math.IsNaN(p.Threshold) || math.IsInf(p.Threshold, 0):
		return fmt.Errorf("%w: threshold %g", ErrInvalidParams, p.Threshold)
	case !(p.Ceiling > 0) || math.IsInf(p.Ceiling, 0):
		return fmt.Errorf("%w: ceiling %g Hz", ErrInvalidParams, p.Ceiling)
	case p.Workers < 0:
		return fmt.Errorf("%w: %d workers", ErrInvalidParams, p.Workers)
	case p.harmonics() < 2:
		return fmt.Errorf("%w: ceiling %g Hz must be at least twice min F0 %g Hz", ErrInvalidParams, p.Ceiling, p.MinF0)
	}

	return nil
}

// harmonics is the number of shifted spectra: floor(ceiling/minF0)
// rounded down to even, times harmonicsMultiplier.
func (p Params) harmonics() int {
	n := int(math.Floor(p.Ceiling / p.MinF0))
	n -= n % 2
	return n * harmonicsMultiplier
}
