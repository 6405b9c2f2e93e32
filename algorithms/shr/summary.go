package shr

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds descriptive statistics over the voiced frames of a Track
type Summary struct {
	Frames      int     `json:"frames"`
	Voiced      int     `json:"voiced"`
	VoicedRatio float64 `json:"voiced_ratio"`

	// F0 statistics (Hz); NaN when no frame is voiced
	MeanF0   float64 `json:"mean_f0"`
	MedianF0 float64 `json:"median_f0"`
	StdF0    float64 `json:"std_f0"`
	MinF0    float64 `json:"min_f0"`
	MaxF0    float64 `json:"max_f0"`

	MeanSHR float64 `json:"mean_shr"`
}

// Summarize computes statistics over the voiced frames of t
func (t *Track) Summarize() Summary {
	s := Summary{
		Frames:   t.Len(),
		MeanF0:   math.NaN(),
		MedianF0: math.NaN(),
		StdF0:    math.NaN(),
		MinF0:    math.NaN(),
		MaxF0:    math.NaN(),
		MeanSHR:  math.NaN(),
	}

	f0 := voiced(t.F0)
	s.Voiced = len(f0)
	if s.Frames > 0 {
		s.VoicedRatio = float64(s.Voiced) / float64(s.Frames)
	}
	if s.Voiced == 0 {
		return s
	}

	sort.Float64s(f0)
	s.MeanF0 = stat.Mean(f0, nil)
	s.MedianF0 = stat.Quantile(0.5, stat.Empirical, f0, nil)
	s.MinF0 = floats.Min(f0)
	s.MaxF0 = floats.Max(f0)
	if s.Voiced > 1 {
		s.StdF0 = stat.StdDev(f0, nil)
	}

	if ratios := voiced(t.SHR); len(ratios) > 0 {
		s.MeanSHR = stat.Mean(ratios, nil)
	}
	return s
}

func voiced(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
