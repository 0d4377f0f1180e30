package models

import "errors"

// Error taxonomy for the reporting core. Validation and precondition errors
// resolve locally; transport errors are surfaced verbatim and never retried
// automatically.
var (
	// ErrInvalidMedia rejects an upload with the wrong type or size
	ErrInvalidMedia = errors.New("invalid media")
	// ErrPreconditionNotMet flags a submit without an image or location.
	// UI gating should make this unreachable; it is logged as an invariant
	// violation when it happens.
	ErrPreconditionNotMet = errors.New("precondition not met")
	// ErrNotAuthenticated refuses a submit from an unauthenticated session
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNotFound reports an unknown issue id
	ErrNotFound = errors.New("issue not found")
	// ErrDuplicateID rejects an insert whose id already exists
	ErrDuplicateID = errors.New("duplicate issue id")
	// ErrInvalidTransition rejects a backward status move
	ErrInvalidTransition = errors.New("invalid status transition")
)
