package engine

import "errors"

// Error kinds returned across the boundary API. All are recoverable:
// a failed call leaves state unchanged and the caller may retry with a
// corrected action.
var (
	// ErrIllegalMove is returned when a played card is not in the
	// acting seat's legal-move set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidPass is returned when a pass selection has the wrong
	// count, duplicates, or cards not in the selecting seat's hand.
	ErrInvalidPass = errors.New("invalid pass")

	// ErrInvalidState is returned when an operation is requested out
	// of turn or out of phase.
	ErrInvalidState = errors.New("invalid state")

	// ErrMatchOver is returned for any action submitted after the
	// match has terminated.
	ErrMatchOver = errors.New("match already over")
)
