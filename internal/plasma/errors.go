package plasma

import "errors"

// Domain errors for simulation setup and stepping.
var (
	// ErrBadShape indicates a truncation or array length whose element
	// count cannot tile the spectral grid. Detected at construction;
	// not recoverable.
	ErrBadShape = errors.New("plasma: shape mismatch")

	// ErrBadParameters indicates a physically invalid parameter set.
	ErrBadParameters = errors.New("plasma: invalid parameters")
)
