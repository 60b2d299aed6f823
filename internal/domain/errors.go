package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLegacyField is matched by every MalformedLegacyFieldError.
	ErrMalformedLegacyField = errors.New("malformed legacy field")
	// ErrInvalidTransition is returned when a session operation is not allowed in its current state.
	ErrInvalidTransition = errors.New("invalid session transition")
	// ErrCorruptSession indicates a stored session snapshot breaks the session invariants.
	ErrCorruptSession = errors.New("corrupt session snapshot")
	// ErrSessionNotFound is returned when a quiz session does not exist or has expired.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrURLRequired is returned when generation is requested without a source URL.
	ErrURLRequired = errors.New("url is required")
	// ErrInvalidSourceURL is returned when the source URL lacks the recognized site marker.
	ErrInvalidSourceURL = errors.New("url is not a recognized source article")
)

// MalformedLegacyFieldError reports which serialized record field failed to parse.
type MalformedLegacyFieldError struct {
	Field string
	Err   error
}

func (e *MalformedLegacyFieldError) Error() string {
	return fmt.Sprintf("malformed legacy field %q: %v", e.Field, e.Err)
}

func (e *MalformedLegacyFieldError) Unwrap() error { return e.Err }

func (e *MalformedLegacyFieldError) Is(target error) bool {
	return target == ErrMalformedLegacyField
}
