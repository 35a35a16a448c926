// Package apperror defines the domain error taxonomy.
//
// Services return these errors; the HTTP layer is the only place they are
// translated into status codes. errors.Is against the sentinels works
// through any number of fmt.Errorf("%w") wrappings because AppError
// implements Unwrap.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrExternal     = errors.New("external service failure")
)

type AppError struct {
	Err     error  // sentinel category
	Message string // human-readable, safe to return to clients
	Field   string // optional: field causing a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Unauthorized indicates a missing or invalid credential.
// HTTP handlers map this to 401.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Forbidden indicates the caller is authenticated but not the owner of the
// resource. HTTP handlers map this to 403.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// InvalidState indicates an operation that is illegal in the entity's
// current state (e.g. transitioning an application out of a terminal
// status). Per the API convention this is NOT an HTTP error — handlers
// answer 200 with success:false.
func InvalidState(message string) *AppError {
	return &AppError{
		Err:     ErrInvalidState,
		Message: message,
	}
}

// External wraps a failure from a collaborator we don't control (object
// store, database). The original error stays on the chain for logs; the
// Message is what clients see.
func External(op string, err error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %s: %v", ErrExternal, op, err),
		Message: fmt.Sprintf("%s is temporarily unavailable", op),
	}
}
