package liftlog

import (
	"errors"
	"fmt"
	"time"
)

// Error codes
const (
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeStorage    = "STORAGE_ERROR"
	ErrCodeAuth       = "AUTH_ERROR"
)

// Error is a typed error carrying a stable code so callers can decide how to
// surface it: validation errors become corrective prompts, storage errors a
// generic "try again", auth errors a silent rejection.
type Error struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Cause     error     `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewValidationError creates an error for bad user input
func NewValidationError(message string) *Error {
	return &Error{
		Code:      ErrCodeValidation,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewStorageError wraps a backend failure
func NewStorageError(message string, cause error) *Error {
	return &Error{
		Code:      ErrCodeStorage,
		Message:   message,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// NewAuthError creates an error for a malformed or unauthenticated invocation
func NewAuthError(message string) *Error {
	return &Error{
		Code:      ErrCodeAuth,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func hasCode(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsValidationError checks if an error stems from bad user input
func IsValidationError(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

// IsStorageError checks if an error stems from a backend failure
func IsStorageError(err error) bool {
	return hasCode(err, ErrCodeStorage)
}

// IsAuthError checks if an error stems from a rejected invocation
func IsAuthError(err error) bool {
	return hasCode(err, ErrCodeAuth)
}
