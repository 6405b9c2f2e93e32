package windowing

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateKnownValues(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  []float64
	}{
		{"rect", 10, []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
		{"rectangular", 3, []float64{1, 1, 1}},
		{"rectan", 4, []float64{1, 1, 1, 1}},
		{"tria", 10, []float64{
			0.00000, 0.22222, 0.44444, 0.66667, 0.88889,
			0.88889, 0.66667, 0.44444, 0.22222, 0.00000}},
		{"triangular", 3, []float64{0, 1, 0}},
		{"hann", 10, []float64{
			0.00000, 0.11698, 0.41318, 0.75000, 0.96985,
			0.96985, 0.75000, 0.41318, 0.11698, 0.00000}},
		{"hanning", 3, []float64{0, 1, 0}},
		{"hamm", 10, []float64{
			0.080000, 0.187620, 0.460122, 0.770000, 0.972259,
			0.972259, 0.770000, 0.460122, 0.187620, 0.080000}},
		{"hamming", 3, []float64{0.08, 1, 0.08}},
		{"blac", 10, []float64{
			-1.3878e-17, 5.0870e-02, 2.5800e-01, 6.3000e-01, 9.5113e-01,
			9.5113e-01, 6.3000e-01, 2.5800e-01, 5.0870e-02, -1.3878e-17}},
		{"blackman", 3, []float64{-1.3878e-17, 1, -1.3878e-17}},
		{"HAMMING", 3, []float64{0.08, 1, 0.08}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.width, tt.name)
			if err != nil {
				t.Fatalf("Generate(%d, %q): %v", tt.width, tt.name, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 5e-6 {
					t.Errorf("index %d: got %.6f, want %.6f", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestHannEndpointsAreZero(t *testing.T) {
	w, err := Generate(10, "hann")
	if err != nil {
		t.Fatal(err)
	}
	if w[0] != 0.0 || w[len(w)-1] != 0.0 {
		t.Fatalf("hann endpoints = %v, %v; want exact zeros", w[0], w[len(w)-1])
	}
}

func TestRectangularIsAllOnes(t *testing.T) {
	for _, n := range []int{1, 2, 7, 64, 401} {
		w, err := Generate(n, "rect")
		if err != nil {
			t.Fatal(err)
		}
		if len(w) != n {
			t.Fatalf("n=%d: len %d", n, len(w))
		}
		for i, v := range w {
			if v != 1.0 {
				t.Fatalf("n=%d: w[%d] = %v", n, i, v)
			}
		}
	}
}

func TestSymmetry(t *testing.T) {
	for _, name := range []string{"tria", "hann", "hamm", "blac"} {
		for _, n := range []int{2, 9, 10, 400} {
			w, err := Generate(n, name)
			if err != nil {
				t.Fatal(err)
			}
			for i := 0; i < n/2; i++ {
				if math.Abs(w[i]-w[n-1-i]) > 1e-12 {
					t.Fatalf("%s n=%d not symmetric at %d: %v vs %v", name, n, i, w[i], w[n-1-i])
				}
			}
		}
	}
}

func TestWidthOne(t *testing.T) {
	for _, name := range []string{"rect", "tria", "hann", "hamm", "blac"} {
		w, err := Generate(1, name)
		if err != nil {
			t.Fatal(err)
		}
		if len(w) != 1 || w[0] != 1.0 {
			t.Errorf("%s: got %v, want [1]", name, w)
		}
	}
}

func TestUnknownWindow(t *testing.T) {
	for _, name := range []string{"bogus", "bad", "longerbad", "rec", ""} {
		_, err := Generate(10, name)
		if !errors.Is(err, ErrUnknownWindow) {
			t.Errorf("Generate(10, %q) error = %v, want ErrUnknownWindow", name, err)
		}
	}
}

func TestKaiserNotImplemented(t *testing.T) {
	for _, name := range []string{"kais", "kaiser"} {
		_, err := Generate(10, name, 0)
		if !errors.Is(err, ErrNotImplemented) {
			t.Errorf("Generate(10, %q) error = %v, want ErrNotImplemented", name, err)
		}
	}
}

func TestInvalidWidth(t *testing.T) {
	_, err := New(0, Hann)
	if !errors.Is(err, ErrInvalidWidth) {
		t.Fatalf("New(0) error = %v, want ErrInvalidWidth", err)
	}
}

func TestApply(t *testing.T) {
	w, err := New(3, Hamming)
	if err != nil {
		t.Fatal(err)
	}
	if w.Type() != Hamming || w.Size() != 3 {
		t.Fatalf("type %v size %d", w.Type(), w.Size())
	}

	got := w.Apply([]float64{2, 2, 2})
	want := []float64{0.16, 2, 0.16}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("Apply[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if w.Apply([]float64{1}) != nil {
		t.Error("Apply with mismatched length should return nil")
	}

	sig := []float64{1, 1, 1}
	if err := w.ApplyInPlace(sig); err != nil {
		t.Fatal(err)
	}
	if math.Abs(sig[0]-0.08) > 1e-12 {
		t.Errorf("ApplyInPlace[0] = %v", sig[0])
	}
	if err := w.ApplyInPlace([]float64{1, 2}); err == nil {
		t.Error("ApplyInPlace with mismatched length should fail")
	}

	c := w.Coefficients()
	c[1] = 42
	if w.Coefficients()[1] == 42 {
		t.Error("Coefficients must return a copy")
	}
}
