package domain

import "errors"

// Sentinel errors shared across repositories, the reconcile engine, and
// the HTTP layer.
var (
	// ErrNotFound is returned when an entity is not found in the database.
	ErrNotFound = errors.New("entity not found")

	// ErrContentNotFound is returned when a callback references an unknown
	// content id.
	ErrContentNotFound = errors.New("content not found")

	// ErrInvalidCallback is returned when a callback payload is malformed
	// (missing content id or unrecognized result status).
	ErrInvalidCallback = errors.New("invalid callback payload")

	// ErrInvalidTransition is returned when a callback would move a content
	// item outside the lifecycle state machine.
	ErrInvalidTransition = errors.New("invalid content status transition")

	// ErrAlreadyExists is returned when a uniqueness constraint would be
	// violated (platform reference pair, content-place link).
	ErrAlreadyExists = errors.New("entity already exists")
)
