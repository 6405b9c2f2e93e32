package common

import (
	"errors"
	"math"
	"testing"

	"github.com/RyanBlaney/sonido-shrp/algorithms/windowing"
)

func ramp(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = float64(i)
	}
	return s
}

func TestToFramesShapeAtBoundaries(t *testing.T) {
	samples := ramp(100)
	centers := []int{-20, 0, 1, 5, 50, 97, 99, 150}

	for _, frameLength := range []int{1, 10, 11, 100} {
		frames, err := ToFrames(samples, centers, frameLength, "rect")
		if err != nil {
			t.Fatalf("frameLength %d: %v", frameLength, err)
		}
		rows, cols := frames.Dims()
		if rows != len(centers) || cols != frameLength {
			t.Fatalf("frameLength %d: dims %dx%d", frameLength, rows, cols)
		}
	}
}

func TestToFramesClamping(t *testing.T) {
	samples := ramp(100)
	frames, err := ToFrames(samples, []int{0, 50, 99}, 10, "rectangular")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		row       int
		wantFirst float64
	}{
		{0, 0},  // shifted right to the first sample
		{1, 45}, // 50 - round(10/2)
		{2, 90}, // shifted left to end at the last sample
	}
	for _, tt := range tests {
		row := frames.RawRowView(tt.row)
		if row[0] != tt.wantFirst {
			t.Errorf("row %d starts at %v, want %v", tt.row, row[0], tt.wantFirst)
		}
		for j := 1; j < len(row); j++ {
			if row[j] != row[j-1]+1 {
				t.Fatalf("row %d not contiguous at %d: %v", tt.row, j, row)
			}
		}
	}
}

func TestToFramesAppliesWindow(t *testing.T) {
	samples := make([]float64, 20)
	for i := range samples {
		samples[i] = 1
	}
	frames, err := ToFrames(samples, []int{10}, 10, "hamming")
	if err != nil {
		t.Fatal(err)
	}
	want, _ := windowing.Generate(10, "hamming")
	for j, w := range want {
		if math.Abs(frames.At(0, j)-w) > 1e-15 {
			t.Errorf("column %d = %v, want %v", j, frames.At(0, j), w)
		}
	}
}

func TestToFramesErrors(t *testing.T) {
	samples := ramp(10)

	if _, err := ToFrames(samples, []int{5}, 4, "bogus"); !errors.Is(err, windowing.ErrUnknownWindow) {
		t.Errorf("unknown window: got %v", err)
	}
	if _, err := ToFrames(samples, []int{5}, 11, "rect"); !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("frame longer than signal: got %v", err)
	}
	if _, err := ToFrames(samples, nil, 4, "rect"); !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("no centers: got %v", err)
	}
}
