// Package usecase implements essay scoring against the user's stored credential.
package usecase

import (
	"errors"
	"fmt"

	"ielts_backend/internal/shared/apperr"
)

var (
	// ErrScoringFailed matches every *ScoringError.
	ErrScoringFailed = errors.New("scoring failed")

	// ErrCredentialMissing is returned when the user has not stored an API key.
	ErrCredentialMissing = fmt.Errorf("no api key stored: %w", apperr.ErrValidation)

	// ErrEmptyResponse is returned by scorers when the model produced no text.
	ErrEmptyResponse = fmt.Errorf("empty model response: %w", apperr.ErrProvider)
)

// Failure reasons carried by ScoringError.
const (
	ReasonProvider      = "provider_error"
	ReasonTimeout       = "timeout"
	ReasonEmptyResponse = "empty_response"
	ReasonSchemaInvalid = "schema_invalid"
)

// ScoringError reports why a scoring call failed.
// It matches ErrScoringFailed and the underlying error with errors.Is.
type ScoringError struct {
	Reason string
	Err    error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring failed (%s): %v", e.Reason, e.Err)
}

func (e *ScoringError) Unwrap() []error {
	return []error{ErrScoringFailed, e.Err}
}
