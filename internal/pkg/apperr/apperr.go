package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
)

// NotFound wraps ErrNotFound with a resource description so callers can match
// with errors.Is.
func NotFound(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// ValidationError marks bad input shape or range. Terminal: retrying the same
// input can never succeed.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConflictError marks a business-rule conflict, e.g. a duplicate email.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func Conflict(format string, args ...interface{}) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// StateTransitionError marks an operation that is illegal for the aggregate's
// current status.
type StateTransitionError struct {
	Msg string
}

func (e *StateTransitionError) Error() string { return e.Msg }

func StateTransition(format string, args ...interface{}) error {
	return &StateTransitionError{Msg: fmt.Sprintf(format, args...)}
}

func IsStateTransition(err error) bool {
	var se *StateTransitionError
	return errors.As(err, &se)
}

// Terminal reports whether err belongs to a failure class that must never be
// retried (validation, conflict, illegal transition). Infrastructure errors
// fall outside all three and stay retryable.
func Terminal(err error) bool {
	return IsValidation(err) || IsConflict(err) || IsStateTransition(err)
}
