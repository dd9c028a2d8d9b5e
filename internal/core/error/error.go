package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
	// UnknownCategoryMessage is returned when a marketplace category has no registered config.
	UnknownCategoryMessage = "unknown marketplace category"
	// InvalidFilterStateMessage is returned by strict filter validation.
	InvalidFilterStateMessage = "invalid filter selection"
	// InvalidInputMessage describes malformed caller input.
	InvalidInputMessage = "invalid input"
)

// Sentinel causes. Callers match them with errors.Is through an AppError.
var (
	ErrUnknownCategory    = errors.New("unknown category")
	ErrMappingFailure     = errors.New("raw record missing or unusable")
	ErrTimelineParse      = errors.New("timeline payload is not a weeks object")
	ErrInvalidFilterState = errors.New("child filter value not allowed by parent selection")
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// UnknownCategory reports a registry miss for the given category id.
func UnknownCategory(category string) *AppError {
	return New(fmt.Errorf("%w: %q", ErrUnknownCategory, category), http.StatusNotFound, UnknownCategoryMessage)
}

// InvalidFilterState reports child filter values rejected by the parent selection.
func InvalidFilterState(filterID string, values []string) *AppError {
	return New(fmt.Errorf("%w: %s=%v", ErrInvalidFilterState, filterID, values), http.StatusUnprocessableEntity, InvalidFilterStateMessage)
}

// InvalidInput wraps a decoding or validation failure of caller input.
func InvalidInput(err error) *AppError {
	return New(err, http.StatusBadRequest, InvalidInputMessage)
}

// StatusOf returns the HTTP status carried by err, or 500 when err is not an AppError.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
