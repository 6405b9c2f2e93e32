package shr

import "errors"

var (
	// ErrInvalidParams is returned for parameter sets that cannot drive an analysis
	ErrInvalidParams = errors.New("invalid SHR parameters")

	// ErrNotImplemented is returned when voicing detection or median smoothing
	// is requested. Neither exists, so they fail instead of being ignored.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvalidInput is returned for malformed arguments to the correlator
	ErrInvalidInput = errors.New("invalid SHR input")
)
