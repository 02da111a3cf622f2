package model

import "errors"

var (
	// ErrValidation marks bad input shape or range.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidEpisodeID is returned for episode ids outside the configured bounds.
	ErrInvalidEpisodeID = errors.New("invalid episode id")
	// ErrNotFound means there is no data for the requested scope.
	ErrNotFound = errors.New("not found")
	// ErrUpstreamFetch wraps failures talking to the spreadsheet source.
	ErrUpstreamFetch = errors.New("upstream fetch failed")
	// ErrDataIntegrity marks a malformed catalog row or question.
	ErrDataIntegrity = errors.New("data integrity")
)

// ValidationError carries a user-facing message for a rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
