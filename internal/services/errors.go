package services

import (
	"errors"

	apperrors "github.com/selection-crew/selection-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")

	// Pipeline specific errors
	ErrNoQuestions      = errors.New("no quiz questions available")
	ErrNoResults        = errors.New("no quiz results available")
	ErrNoShortlist      = errors.New("no shortlisted students available")
	ErrStudentNotFound  = errors.New("student not found")
	ErrMissingDriveLink = errors.New("drive link is required for shortlist notifications")
	ErrOracleDisabled   = errors.New("transcript scoring oracle is not configured")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared error types from the errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors
type ConfigurationError = apperrors.ConfigurationError
type MalformedRecordError = apperrors.MalformedRecordError

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrStudentNotFound)
}

// IsEmptyInput checks if error represents a missing-input condition: a stage
// was invoked before the stage that produces its input.
func IsEmptyInput(err error) bool {
	return errors.Is(err, ErrNoQuestions) ||
		errors.Is(err, ErrNoResults) ||
		errors.Is(err, ErrNoShortlist)
}
