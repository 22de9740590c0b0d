package models

import (
	"errors"
	"fmt"
)

// ValidationError is bad user input. It never mutates state.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AuthError is a credential mismatch or a missing session. The message is
// deliberately generic.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

var (
	// ErrInvalidCredentials does not say whether the email or the password was wrong.
	ErrInvalidCredentials = &AuthError{Message: "Invalid email or password"}
	// ErrLoginRequired is returned when an operation needs a session user.
	ErrLoginRequired = &AuthError{Message: "Login required"}
)

// NotFoundError means a referenced product no longer resolves.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// StorageError wraps a key-value store failure for key.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsAuth reports whether err is (or wraps) an AuthError.
func IsAuth(err error) bool {
	var a *AuthError
	return errors.As(err, &a)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}
