package windowing

import "fmt"

// kaiser is recognized by name so that configurations naming it fail
// loudly instead of being reported as an unknown window.
func kaiser(n int, beta float64) error {
	return fmt.Errorf("%w: kaiser (width %d, beta %g)", ErrNotImplemented, n, beta)
}
