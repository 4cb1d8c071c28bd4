package errs

import "strconv"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "name", "error": "is required" }
type FieldError struct {
	// Field is the field name/key the error relates to (e.g. "name").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the error envelope for API responses.
//
// It implements the `error` interface via Error() and is serialized
// directly to JSON. Code carries the HTTP status as a string ("404"),
// mirroring what the API has always returned; Status holds the numeric
// value for the response writer but stays out of the body.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`

	// Errors holds field-level validation errors, typically for request payloads.
	Errors []FieldError `json:"errors,omitempty"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is customizes how errors.Is treats HTTPError: any *HTTPError matches
// any other *HTTPError, regardless of status or message.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
		Errors:  e.Errors,
	}
}

// New creates an HTTPError for an arbitrary status code.
func New(status int, message string) *HTTPError {
	return &HTTPError{
		Code:    strconv.Itoa(status),
		Message: message,
		Status:  status,
	}
}
