// Package apperrors defines the error kinds shared by services and
// repositories. Handlers map them to HTTP statuses with errors.Is, so
// callers wrap them with fmt.Errorf and %w rather than matching strings.
package apperrors

import "errors"

var (
	// ErrValidation marks a request rejected for missing or invalid fields.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a lookup that matched no record.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a write rejected by a unique constraint.
	ErrConflict = errors.New("conflict")

	// ErrIdentifierExhausted marks invoice identifier generation that kept
	// colliding past its retry budget. It signals identifier-space pressure,
	// not a store outage, so it is distinct from a plain store failure.
	ErrIdentifierExhausted = errors.New("identifier generation exhausted")
)
