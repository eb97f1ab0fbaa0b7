// Package apperr defines the error classes shared by every feature.
// Feature packages wrap one of these with %w so the HTTP layer can map
// any error to a status code in a single place.
package apperr

import "errors"

var (
	// ErrNotFound indicates that a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPersistence indicates that a store write failed and was rolled back.
	ErrPersistence = errors.New("persistence failure")

	// ErrProvider indicates that the external AI provider call failed or returned nothing.
	ErrProvider = errors.New("provider failure")

	// ErrSchemaValidation indicates that the AI provider answered with a malformed payload.
	ErrSchemaValidation = errors.New("schema validation failure")

	// ErrAuthentication indicates a missing, invalid or revoked credential.
	ErrAuthentication = errors.New("authentication failure")

	// ErrForbidden indicates an authenticated caller without the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation indicates a malformed or semantically invalid request.
	ErrValidation = errors.New("validation failure")

	// ErrConflict indicates a uniqueness violation.
	ErrConflict = errors.New("conflict")
)
