// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// CORS/preflight short-circuiting, API-key authentication, request
// logging, correlation IDs, and panic recovery.
package middleware
