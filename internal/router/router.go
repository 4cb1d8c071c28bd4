// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pawmart/petstore/internal/handler"
	"github.com/pawmart/petstore/internal/middleware"
	"github.com/pawmart/petstore/internal/server"
)

// New builds the Echo instance: global middleware, the error handler,
// system routes, and the /api/v3 business routes.
func New(s *server.Server, m *middleware.Middlewares, h *handler.Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = m.Global.GlobalErrorHandler

	// CORS runs first so preflights are answered before anything else;
	// RequestID must precede the context enhancer that logs it.
	e.Use(m.Global.CORS())
	e.Use(m.Global.Recover())
	e.Use(middleware.RequestID())
	e.Use(m.ContextEnhancer.EnhanceContext())
	e.Use(m.Global.RequestLogger())
	e.Use(m.Global.Secure())

	registerSystemRoutes(e, h)
	registerAPIRoutes(e, m, h)

	return e
}

// registerAPIRoutes registers the business routes under /api/v3.
//
// The API-key gate guards the pet lookup/mutation-by-id routes and the
// inventory report; pet creation, orders, and users stay open. That
// split mirrors the API's published security contract.
func registerAPIRoutes(e *echo.Echo, m *middleware.Middlewares, h *handler.Handlers) {
	api := e.Group("/api/v3")
	auth := m.Auth.RequireAPIKey

	// Pets.
	api.POST("/pet", handler.Handle(h.Pet.Handler, h.Pet.CreatePet, http.StatusOK,
		func() *handler.CreatePetRequest { return &handler.CreatePetRequest{} }))
	api.PUT("/pet", handler.Handle(h.Pet.Handler, h.Pet.UpdatePet, http.StatusOK,
		func() *handler.UpdatePetRequest { return &handler.UpdatePetRequest{} }))
	api.GET("/pet/findByStatus", handler.Handle(h.Pet.Handler, h.Pet.FindByStatus, http.StatusOK,
		func() *handler.FindByStatusRequest { return &handler.FindByStatusRequest{} }), auth)
	api.GET("/pet/findByTags", handler.Handle(h.Pet.Handler, h.Pet.FindByTags, http.StatusOK,
		func() *handler.FindByTagsRequest { return &handler.FindByTagsRequest{} }), auth)
	api.GET("/pet/:id", handler.Handle(h.Pet.Handler, h.Pet.GetPet, http.StatusOK,
		func() *handler.GetPetRequest { return &handler.GetPetRequest{} }), auth)
	api.POST("/pet/:id", handler.Handle(h.Pet.Handler, h.Pet.UpdatePetWithForm, http.StatusOK,
		func() *handler.UpdatePetFormRequest { return &handler.UpdatePetFormRequest{} }), auth)
	api.DELETE("/pet/:id", handler.HandleNoContent(h.Pet.Handler, h.Pet.DeletePet, http.StatusOK,
		func() *handler.DeletePetRequest { return &handler.DeletePetRequest{} }), auth)
	api.POST("/pet/:id/uploadImage", h.Pet.UploadImage, auth)

	// Store.
	api.GET("/store/inventory", h.Store.GetInventory, auth)
	api.POST("/store/order", handler.Handle(h.Store.Handler, h.Store.PlaceOrder, http.StatusOK,
		func() *handler.PlaceOrderRequest { return &handler.PlaceOrderRequest{} }))
	api.GET("/store/order/:id", handler.Handle(h.Store.Handler, h.Store.GetOrder, http.StatusOK,
		func() *handler.OrderIDRequest { return &handler.OrderIDRequest{} }))
	api.DELETE("/store/order/:id", handler.HandleNoContent(h.Store.Handler, h.Store.DeleteOrder, http.StatusOK,
		func() *handler.OrderIDRequest { return &handler.OrderIDRequest{} }))

	// Users.
	api.POST("/user", handler.Handle(h.User.Handler, h.User.CreateUser, http.StatusOK,
		func() *handler.CreateUserRequest { return &handler.CreateUserRequest{} }))
	api.POST("/user/createWithList", h.User.CreateUsersWithList)
	api.GET("/user/login", handler.Handle(h.User.Handler, h.User.Login, http.StatusOK,
		func() *handler.LoginRequest { return &handler.LoginRequest{} }))
	api.GET("/user/logout", h.User.Logout)
	api.GET("/user/:username", handler.Handle(h.User.Handler, h.User.GetUser, http.StatusOK,
		func() *handler.UsernameRequest { return &handler.UsernameRequest{} }))
	api.PUT("/user/:username", handler.HandleNoContent(h.User.Handler, h.User.UpdateUser, http.StatusOK,
		func() *handler.UpdateUserRequest { return &handler.UpdateUserRequest{} }))
	api.DELETE("/user/:username", handler.HandleNoContent(h.User.Handler, h.User.DeleteUser, http.StatusOK,
		func() *handler.UsernameRequest { return &handler.UsernameRequest{} }))
}
