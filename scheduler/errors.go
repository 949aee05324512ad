package scheduler

import "errors"

var (
	// ErrInvalidInput is returned before a run starts when the jobs or the
	// policy parameters are unusable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvariantViolation means an algorithm produced an inconsistent
	// schedule. It points at a bug in this package, never at the input.
	ErrInvariantViolation = errors.New("internal invariant violation")
)
