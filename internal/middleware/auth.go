package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/pawmart/petstore/internal/errs"
	"github.com/pawmart/petstore/internal/server"
)

// AuthMiddleware enforces the API-key gate.
//
// The gate applies only to pet-scoped routes and the inventory route;
// everything else is unauthenticated. That asymmetry is the documented
// contract of this API, not an oversight.
type AuthMiddleware struct {
	server *server.Server

	// allowed is the key allow-list from config, indexed for O(1) lookup.
	allowed map[string]struct{}
}

// NewAuthMiddleware constructs an AuthMiddleware from the configured
// header name and key allow-list.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	allowed := make(map[string]struct{}, len(s.Config.Auth.Keys))
	for _, key := range s.Config.Auth.Keys {
		allowed[key] = struct{}{}
	}

	return &AuthMiddleware{
		server:  s,
		allowed: allowed,
	}
}

// RequireAPIKey is an Echo middleware that checks the API-key header.
//
// Missing header -> 401. Present but not in the allow-list -> 403.
// Either way the request never reaches a handler, so no store access
// happens for unauthenticated callers.
func (auth *AuthMiddleware) RequireAPIKey(next echo.HandlerFunc) echo.HandlerFunc {
	header := auth.server.Config.Auth.KeyHeader

	return func(c echo.Context) error {
		key := c.Request().Header.Get(header)
		if key == "" {
			GetLogger(c).Warn().
				Str("function", "RequireAPIKey").
				Msg("missing API key")
			return errs.NewUnauthorizedError("API key required")
		}

		if _, ok := auth.allowed[key]; !ok {
			GetLogger(c).Warn().
				Str("function", "RequireAPIKey").
				Msg("invalid API key")
			return errs.NewForbiddenError("Invalid API key")
		}

		return next(c)
	}
}
