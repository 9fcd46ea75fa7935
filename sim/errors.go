package sim

import "errors"

// Error kinds surfaced by the facility. Callers match them with errors.Is;
// the facility wraps them with its name and the failing operation.
var (
	// ErrBufferUnderflow: a pop asked for more than a buffer holds.
	ErrBufferUnderflow = errors.New("buffer underflow")
	// ErrConfiguration: a required field is missing or a value is out of range.
	ErrConfiguration = errors.New("invalid facility configuration")
	// ErrInvariantViolation: a phase or buffer invariant does not hold after a step.
	ErrInvariantViolation = errors.New("facility invariant violated")
)
