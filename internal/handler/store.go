package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pawmart/petstore/internal/errs"
	"github.com/pawmart/petstore/internal/model"
	"github.com/pawmart/petstore/internal/server"
	"github.com/pawmart/petstore/internal/service"
)

// StoreHandler exposes the store endpoints: inventory and orders.
type StoreHandler struct {
	Handler
	store *service.StoreService
}

// NewStoreHandler constructs a StoreHandler.
func NewStoreHandler(s *server.Server, store *service.StoreService) *StoreHandler {
	return &StoreHandler{
		Handler: NewHandler(s),
		store:   store,
	}
}

// GetInventory handles GET /store/inventory. Untyped: there is no
// request payload at all.
func (h *StoreHandler) GetInventory(c echo.Context) error {
	counts, err := h.store.Inventory(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, counts)
}

// PlaceOrderRequest is the JSON order payload for POST /store/order.
type PlaceOrderRequest struct {
	model.Order
}

// Validate enforces the order contract: petId must be present.
func (r *PlaceOrderRequest) Validate() error {
	if r.PetID == 0 {
		return errs.NewBadRequestError("Pet id is required", nil)
	}
	return nil
}

// PlaceOrder handles POST /store/order.
func (h *StoreHandler) PlaceOrder(c echo.Context, req *PlaceOrderRequest) (*model.Order, error) {
	return h.store.PlaceOrder(c.Request().Context(), &req.Order)
}

// OrderIDRequest carries the order id path parameter.
type OrderIDRequest struct {
	ID string `param:"id" json:"-"`
}

func (r *OrderIDRequest) Validate() error { return nil }

// parseOrderID converts the {id} path segment to an integer,
// answering 404 for non-numeric segments just like the pet routes.
func parseOrderID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewNotFoundError("Not Found")
	}
	return id, nil
}

// GetOrder handles GET /store/order/{id}.
func (h *StoreHandler) GetOrder(c echo.Context, req *OrderIDRequest) (*model.Order, error) {
	id, err := parseOrderID(req.ID)
	if err != nil {
		return nil, err
	}
	return h.store.GetOrder(c.Request().Context(), id)
}

// DeleteOrder handles DELETE /store/order/{id} and answers with an
// empty 200.
func (h *StoreHandler) DeleteOrder(c echo.Context, req *OrderIDRequest) error {
	id, err := parseOrderID(req.ID)
	if err != nil {
		return err
	}
	return h.store.DeleteOrder(c.Request().Context(), id)
}
