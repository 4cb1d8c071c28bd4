package errs

import (
	"net/http"
)

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
func NewUnauthorizedError(message string) *HTTPError {
	return New(http.StatusUnauthorized, message)
}

// NewForbiddenError creates a 403 Forbidden HTTPError.
func NewForbiddenError(message string) *HTTPError {
	return New(http.StatusForbidden, message)
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// fieldErrors is optional and carries per-field validation detail.
func NewBadRequestError(message string, fieldErrors []FieldError) *HTTPError {
	err := New(http.StatusBadRequest, message)
	err.Errors = fieldErrors
	return err
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return New(http.StatusNotFound, message)
}

// NewUnprocessableEntityError creates a 422 Unprocessable Entity HTTPError.
//
// Used when a payload parses but is semantically incomplete, such as a
// pet submitted without a name or photo URLs.
func NewUnprocessableEntityError(message string, fieldErrors []FieldError) *HTTPError {
	err := New(http.StatusUnprocessableEntity, message)
	err.Errors = fieldErrors
	return err
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The underlying error text is embedded in the message. Exposing it to
// the client is a documented characteristic of this API, not an accident.
func NewInternalServerError(message string) *HTTPError {
	if message == "" {
		message = http.StatusText(http.StatusInternalServerError)
	}
	return New(http.StatusInternalServerError, message)
}
