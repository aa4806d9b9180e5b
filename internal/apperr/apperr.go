package apperr

import "errors"

var (
	// ErrInvalidInput covers user-correctable failures: empty or unsanitizable
	// text, malformed dates, missing user ids.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrStorageFailure wraps persistence-layer errors. The core never retries
	// these; retry policy belongs to the store.
	ErrStorageFailure = errors.New("storage failure")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
)
