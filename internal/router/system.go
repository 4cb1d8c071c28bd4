package router

import (
	"github.com/labstack/echo/v4"
	"github.com/pawmart/petstore/internal/handler"
)

// registerSystemRoutes registers endpoints outside the business API:
// the health status, static assets, and the docs UI.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers) {
	e.GET("/status", h.Health.CheckHealth)

	// openapi.json and openapi.html (and any future docs assets).
	e.Static("/static", "static")

	e.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
