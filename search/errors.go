package search

import "errors"

var (
	// ErrNoLegalMoves is returned when the root position has no move to
	// choose. Callers should check for a finished game first.
	ErrNoLegalMoves = errors.New("no legal moves at root")
	// ErrInvariantViolation means the position was not restored or a move
	// could not be applied or undone. It indicates a bug, not bad input.
	ErrInvariantViolation = errors.New("search invariant violated")
	ErrUnknownStrategy    = errors.New("unknown search strategy")
	ErrInvalidDepth       = errors.New("max depth must be at least 1")
)
