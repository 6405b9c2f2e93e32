package windowing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownWindow is returned for window names that match no known type
	ErrUnknownWindow = errors.New("unknown window type")

	// ErrNotImplemented is returned for recognized window types without an implementation
	ErrNotImplemented = errors.New("window type not implemented")

	// ErrInvalidWidth is returned when a window is requested with width < 1
	ErrInvalidWidth = errors.New("invalid window width")
)

// Type identifies a window function
type Type int

const (
	Rectangular Type = iota
	Triangular
	Hann
	Hamming
	Blackman
	Kaiser
)

// prefixLen is the number of leading characters that select a window type
const prefixLen = 4

var typeByPrefix = map[string]Type{
	"rect": Rectangular,
	"tria": Triangular,
	"hann": Hann,
	"hamm": Hamming,
	"blac": Blackman,
	"kais": Kaiser,
}

func (t Type) String() string {
	switch t {
	case Rectangular:
		return "rectangular"
	case Triangular:
		return "triangular"
	case Hann:
		return "hann"
	case Hamming:
		return "hamming"
	case Blackman:
		return "blackman"
	case Kaiser:
		return "kaiser"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType resolves a window name by its first four characters,
// case-insensitively. "rect", "rectangular" and "RECTAN" all name the
// rectangular window; "rec" names nothing.
func ParseType(name string) (Type, error) {
	if len(name) < prefixLen {
		return 0, fmt.Errorf("%w %q", ErrUnknownWindow, name)
	}
	t, ok := typeByPrefix[strings.ToLower(name[:prefixLen])]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownWindow, name)
	}
	return t, nil
}

// Window holds the coefficients of a symmetric window function
type Window struct {
	kind         Type
	coefficients []float64
}

// New creates a window of the given type and width. beta is only meaningful
// for Kaiser windows.
func New(width int, t Type, beta ...float64) (*Window, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}

	var coeffs []float64
	switch t {
	case Rectangular:
		coeffs = rectangular(width)
	case Triangular:
		coeffs = triangular(width)
	case Hann:
		coeffs = hann(width)
	case Hamming:
		coeffs = hamming(width)
	case Blackman:
		coeffs = blackman(width)
	case Kaiser:
		b := 0.0
		if len(beta) > 0 {
			b = beta[0]
		}
		return nil, kaiser(width, b)
	default:
		return nil, fmt.Errorf("%w %v", ErrUnknownWindow, t)
	}

	return &Window{kind: t, coefficients: coeffs}, nil
}

// NewByName creates a window from a name accepted by ParseType
func NewByName(width int, name string, beta ...float64) (*Window, error) {
	t, err := ParseType(name)
	if err != nil {
		return nil, err
	}
	return New(width, t, beta...)
}

// Generate returns the coefficients of the named window of length width
func Generate(width int, name string, beta ...float64) ([]float64, error) {
	w, err := NewByName(width, name, beta...)
	if err != nil {
		return nil, err
	}
	return w.coefficients, nil
}

// Apply applies the window to a signal (creates new array)
func (w *Window) Apply(signal []float64) []float64 {
	if len(signal) != len(w.coefficients) {
		return nil
	}

	windowed := make([]float64, len(signal))
	for i, c := range w.coefficients {
		windowed[i] = signal[i] * c
	}
	return windowed
}

// ApplyInPlace applies the window to a signal in-place
func (w *Window) ApplyInPlace(signal []float64) error {
	if len(signal) != len(w.coefficients) {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), len(w.coefficients))
	}

	for i, c := range w.coefficients {
		signal[i] *= c
	}
	return nil
}

// Coefficients returns a copy of the window coefficients
func (w *Window) Coefficients() []float64 {
	coeffs := make([]float64, len(w.coefficients))
	copy(coeffs, w.coefficients)
	return coeffs
}

// Size returns the window size
func (w *Window) Size() int {
	return len(w.coefficients)
}

// Type returns the window type
func (w *Window) Type() Type {
	return w.kind
}
