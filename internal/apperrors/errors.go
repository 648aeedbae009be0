package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
// Resources owned by another account are reported the same way.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrMalformedReference indicates that an identifier is not a structurally valid entity reference.
var ErrMalformedReference = errors.New("malformed reference")

// ErrPersistence indicates that the underlying storage failed.
var ErrPersistence = errors.New("persistence failure")

// ErrConflict indicates that the request collides with another request in flight.
var ErrConflict = errors.New("conflict")

// AppError carries an HTTP-flavoured status alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError. Codes >= 500 are treated as persistence failures.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError reports that an entity of the given kind does not exist for the caller.
func NewNotFoundError(kind, id string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%s %s not found", kind, id),
		Err:     ErrNotFound,
	}
}

// NewValidationError reports a business-rule violation.
func NewValidationError(format string, args ...any) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf(format, args...),
		Err:     ErrValidation,
	}
}

func (e *AppError) Error() string {
	if e.Err == nil || e.Err == ErrNotFound || e.Err == ErrValidation {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets callers match an AppError against the category implied by its code.
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrPersistence:
		return e.Code >= http.StatusInternalServerError
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrValidation:
		return e.Code == http.StatusBadRequest || e.Code == http.StatusUnprocessableEntity
	case ErrConflict:
		return e.Code == http.StatusConflict
	}
	return false
}

// Category is the machine-readable error class returned to API clients.
type Category string

const (
	CategoryMalformedReference Category = "malformed_reference"
	CategoryNotFound           Category = "not_found"
	CategoryValidation         Category = "validation"
	CategoryDuplicate          Category = "duplicate"
	CategoryConflict           Category = "conflict"
	CategoryPersistence        Category = "persistence"
)

// Classify maps an error to its category and HTTP status.
func Classify(err error) (Category, int) {
	switch {
	case errors.Is(err, ErrMalformedReference):
		return CategoryMalformedReference, http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return CategoryNotFound, http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return CategoryValidation, http.StatusBadRequest
	case errors.Is(err, ErrDuplicate):
		return CategoryDuplicate, http.StatusConflict
	case errors.Is(err, ErrConflict):
		return CategoryConflict, http.StatusConflict
	default:
		return CategoryPersistence, http.StatusInternalServerError
	}
}
