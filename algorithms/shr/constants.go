package shr

// Fixed parameters of the SHRP algorithm (Sun 2002).
const (
	// Unvoiced is the peak index reported for frames without a positive peak
	Unvoiced = -1

	// octaveHarmonic is the harmonic ratio where the second peak is
	// expected: one octave above the first.
	octaveHarmonic = 2.0

	// searchLimit bounds the second-peak search window around the octave,
	// 1/16 of a harmonic on either side.
	searchLimit = 0.0625

	// interpolationDepth sets the minimum FFT length as a multiple of the
	// frame length: fftLen >= segmentLen * (1 + interpolationDepth).
	interpolationDepth = 0.5

	// harmonicsMultiplier scales the number of shifted spectra beyond
	// ceiling/minF0.
	harmonicsMultiplier = 4

	// analysisWindow is the window applied to every frame
	analysisWindow = "hamming"
)
