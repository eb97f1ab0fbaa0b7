// Package usecase implements essay publishing and topic rankings.
package usecase

import (
	"fmt"

	"ielts_backend/internal/shared/apperr"
)

var (
	// ErrTopicNotFound is returned when a topic id is unknown.
	ErrTopicNotFound = fmt.Errorf("topic %w", apperr.ErrNotFound)

	// ErrAuthorNotFound is returned when the publishing user no longer exists.
	ErrAuthorNotFound = fmt.Errorf("author %w", apperr.ErrNotFound)

	// ErrNoTopics is returned when no topic has been created yet.
	ErrNoTopics = fmt.Errorf("no topics: %w", apperr.ErrNotFound)

	// ErrEmptyContent is returned when an essay has no text.
	ErrEmptyContent = fmt.Errorf("essay content is empty: %w", apperr.ErrValidation)

	// ErrInvalidScore is returned when a self-reported score is outside 0..9.
	ErrInvalidScore = fmt.Errorf("score must be between 0 and 9: %w", apperr.ErrValidation)

	// ErrEmptyTopic is returned when a topic has no text.
	ErrEmptyTopic = fmt.Errorf("topic text is empty: %w", apperr.ErrValidation)
)
