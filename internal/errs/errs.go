// Package errs defines the error types returned to API clients.
//
// Every failed request ends up serialized as an HTTPError so clients
// always see the same envelope: a code carrying the HTTP status and a
// human-readable message, optionally with field-level validation errors.
package errs
