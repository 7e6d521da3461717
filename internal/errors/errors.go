package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrCategoryNotFound is returned when a category lookup finds nothing.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrMissingFields is returned when a required form field is empty.
	ErrMissingFields = errors.New("missing required fields")
	// ErrForbidden is returned when the current identity lacks the required role.
	ErrForbidden = errors.New("forbidden")
)

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized
// becomes a generic 500 so internal detail never reaches the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, "Category not found")
	case errors.Is(err, ErrMissingFields):
		return NewHTTPError(http.StatusBadRequest, "All fields are required")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, "Forbidden: Admins only")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Server error")
	}
}
