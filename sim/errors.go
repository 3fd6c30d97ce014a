package sim

import "errors"

// Faults reported by model operations. Callers match them with errors.Is and
// decide whether to halt the simulation or skip the tick.
var (
	// ErrInvariantViolation is returned when an operation would push a value
	// outside its valid range, e.g. removing more lines than exist.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrDivisionByZero is returned when a formula would divide by zero.
	ErrDivisionByZero = errors.New("division by zero")
)
