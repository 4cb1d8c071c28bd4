package model

// OrderStatus is the fulfillment status of an order.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusDelivered OrderStatus = "delivered"
)

// Order is a purchase of a pet.
//
// ShipDate is kept as the ISO-8601 string the client submitted (or the
// server-assigned "now"); the store never interprets it.
type Order struct {
	ID       int64       `json:"id"`
	PetID    int64       `json:"petId"`
	Quantity int32       `json:"quantity"`
	ShipDate string      `json:"shipDate"`
	Status   OrderStatus `json:"status"`
	Complete bool        `json:"complete"`
}
