// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the umbrella error for every rule a user record can fail
// before it is written. Every ValidationError matches it with errors.Is.
var ErrValidation = errors.New("validation failed")

// Name rule violations.
var (
	// ErrNameTooShort is returned when a name is shorter than the policy minimum.
	ErrNameTooShort = errors.New("name too short")

	// ErrNameForbiddenWord is returned when a name contains a forbidden substring.
	ErrNameForbiddenWord = errors.New("name contains a forbidden word")

	// ErrNameExists is returned when an active record already uses the name.
	ErrNameExists = errors.New("name already exists")
)

// Email rule violations.
var (
	// ErrEmailInvalidFormat is returned when an email is not syntactically valid.
	ErrEmailInvalidFormat = errors.New("email has invalid format")

	// ErrEmailBannedDomain is returned when the domain part of an email
	// contains a banned (disposable mail) substring.
	ErrEmailBannedDomain = errors.New("email domain is banned")

	// ErrEmailExists is returned when an active record already uses the email.
	ErrEmailExists = errors.New("email already exists")
)

// ErrAlreadyPersisted is returned when creating a record that already carries
// a store-assigned ID.
var ErrAlreadyPersisted = errors.New("user already has an id")

// ValidationError reports which field of a user record failed which rule.
// It unwraps to the specific rule error (ErrNameTooShort, ErrEmailExists, ...)
// and also matches ErrValidation.
type ValidationError struct {
	Field string // "name", "email" or "id"
	Value string // offending value, as supplied by the caller
	Err   error  // one of the rule errors above
}

// NewValidationError creates a ValidationError for the given field and rule.
func NewValidationError(field, value string, err error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrValidation, e.Field, e.Err)
}

// Unwrap returns the rule error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
