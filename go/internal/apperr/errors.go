// Package apperr holds the error taxonomy shared by the roster apps and the
// transport boundary that translates it into status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError is returned when input is missing, malformed or out of range.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError is returned when a referenced team or player does not exist.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// ConflictError is returned when a write would break a uniqueness rule.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// Validation builds a ValidationError.
func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFound builds a NotFoundError.
func NotFound(format string, args ...any) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// Conflict builds a ConflictError.
func Conflict(format string, args ...any) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// Kind names the taxonomy bucket of err: "validation", "not_found",
// "conflict" or "internal".
func Kind(err error) string {
	switch {
	case IsValidation(err):
		return "validation"
	case IsNotFound(err):
		return "not_found"
	case IsConflict(err):
		return "conflict"
	default:
		return "internal"
	}
}

// HTTPStatus maps err onto the status code plain HTTP handlers answer with.
// Validation and conflict share 400.
func HTTPStatus(err error) int {
	switch Kind(err) {
	case "validation", "conflict":
		return http.StatusBadRequest
	case "not_found":
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text a caller is shown for err: the innermost taxonomy
// message, or a generic one for internal failures.
func Message(err error) string {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Msg
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return notFound.Msg
	}
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict.Msg
	}
	return "internal error"
}
