package cubesim

import "errors"

// Sentinel errors for the cubesim package.
var (
	// ErrRejectedMove reports that the simulator is busy animating a move.
	// Callers should drop the request.
	ErrRejectedMove = errors.New("cubesim: move rejected, a rotation is in flight")

	// ErrInvariantViolation reports a broken lattice invariant. It indicates
	// a programming error and must not be recovered from.
	ErrInvariantViolation = errors.New("cubesim: lattice invariant violated")

	// Parsing errors
	ErrInvalidNotation = errors.New("cubesim: invalid move notation")
)
