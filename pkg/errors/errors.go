package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind names a class of application error. It is the only part of an
// internal failure that is shown to clients.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindAlreadyExists Kind = "already_exists"
	KindInternal      Kind = "internal"
)

// HTTPStatuser is implemented by errors that know their HTTP status.
type HTTPStatuser interface {
	HTTPStatus() int
	Kind() Kind
}

// ValidationError represents a validation failure with field-level details.
// Fields maps a field name to the message of its first failing rule.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

// NewValidationError creates a new validation error
func NewValidationError(message string, fields map[string]string) *ValidationError {
	if fields == nil {
		fields = map[string]string{}
	}
	return &ValidationError{
		Message: message,
		Fields:  fields,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s (%d fields)", e.Message, len(e.Fields))
}

// HTTPStatus returns 400 Bad Request
func (e *ValidationError) HTTPStatus() int { return http.StatusBadRequest }

// Kind returns KindValidation
func (e *ValidationError) Kind() Kind { return KindValidation }

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns 404 Not Found
func (e *NotFoundError) HTTPStatus() int { return http.StatusNotFound }

// Kind returns KindNotFound
func (e *NotFoundError) Kind() Kind { return KindNotFound }

// AlreadyExistsError represents a duplicate unique key.
type AlreadyExistsError struct {
	Resource string
	Message  string
}

// NewAlreadyExistsError creates a new already exists error
func NewAlreadyExistsError(resource, message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *AlreadyExistsError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

// HTTPStatus returns 401. Existing clients of the users API match on this
// code for duplicate emails, so it is kept instead of 409.
func (e *AlreadyExistsError) HTTPStatus() int { return http.StatusUnauthorized }

// Kind returns KindAlreadyExists
func (e *AlreadyExistsError) Kind() Kind { return KindAlreadyExists }

// InternalError represents an internal server error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns 500 Internal Server Error
func (e *InternalError) HTTPStatus() int { return http.StatusInternalServerError }

// Kind returns KindInternal
func (e *InternalError) Kind() Kind { return KindInternal }

// StatusOf returns the HTTP status and kind carried by err.
// Errors without one are internal.
func StatusOf(err error) (int, Kind) {
	var s HTTPStatuser
	if errors.As(err, &s) {
		return s.HTTPStatus(), s.Kind()
	}
	return http.StatusInternalServerError, KindInternal
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsAlreadyExists reports whether err is an AlreadyExistsError.
func IsAlreadyExists(err error) bool {
	var ae *AlreadyExistsError
	return errors.As(err, &ae)
}
