package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when the caller is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation is returned when an intake submission fails validation.
	// The accompanying field errors carry the details.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidStatus is returned when a status outside the closed set is requested
	ErrInvalidStatus = errors.New("invalid status")

	// ErrLegacyDisabled is returned when the legacy import is triggered
	// without a configured legacy connection
	ErrLegacyDisabled = errors.New("legacy system connection not enabled")
)
