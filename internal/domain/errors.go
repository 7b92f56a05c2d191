package domain

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Every typed error below unwraps to one of them,
// and the HTTP layer maps them to status codes.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation failed")
	ErrUnavailable     = errors.New("unavailable")
	ErrInvalidMaterial = errors.New("invalid material")
)

// InvalidMaterialError reports a material outside the price table. It
// matches both ErrInvalidMaterial and ErrValidation.
type InvalidMaterialError struct {
	Material string
}

func (e *InvalidMaterialError) Error() string {
	return fmt.Sprintf("invalid material %q: expected one of %s", e.Material, materialList())
}

func (e *InvalidMaterialError) Unwrap() []error {
	return []error{ErrInvalidMaterial, ErrValidation}
}

// NewInvalidMaterialError creates an invalid material error.
func NewInvalidMaterialError(material string) error {
	return &InvalidMaterialError{Material: material}
}

// NotFoundError names the missing entity and the key it was looked up by,
// which is an id or a slug.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return e.Entity + " not found"
	}

	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError creates a not found error.
func NewNotFoundError(entity, key string) error {
	return &NotFoundError{Entity: entity, Key: key}
}

// ConflictError reports a uniqueness violation, such as a taken slug.
type ConflictError struct {
	Entity string
	Reason string

	// Key is the conflicting value, when known.
	Key string
}

func (e *ConflictError) Error() string {
	msg := e.Entity + " conflict: " + e.Reason
	if e.Key != "" {
		msg += fmt.Sprintf(" (%s)", e.Key)
	}

	return msg
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NewConflictError creates a conflict error.
func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// NewConflictErrorWithDetails creates a conflict error naming the
// conflicting key.
func NewConflictErrorWithDetails(entity, reason, key string) error {
	return &ConflictError{Entity: entity, Reason: reason, Key: key}
}

// ValidationError is a business rule violation. Field uses the JSON name of
// the offending input so clients can highlight it.
type ValidationError struct {
	Field   string
	Message string

	// Value is the rejected input. It is kept for logs and never rendered.
	Value any
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}

	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error carrying the
// rejected value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// UnavailableError reports a dependency that cannot serve the request: the
// database, DynamoDB or the e-mail provider. Reason is for logs only.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return e.Service + " unavailable"
	}

	return fmt.Sprintf("%s unavailable: %s", e.Service, e.Reason)
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

// NewUnavailableError creates an unavailable error.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// IsNotFound reports whether err is a not found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err is a conflict error.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsValidation reports whether err is a validation error, invalid materials
// included.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsUnavailable reports whether err is an unavailable error.
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }

// IsInvalidMaterial reports whether err names an unsupported material.
func IsInvalidMaterial(err error) bool { return errors.Is(err, ErrInvalidMaterial) }
