package domain

import "time"

// OrderLine is the immutable snapshot of one grocery line at the moment an
// order was placed. Remaining records the stock level left after the
// decrement. Monetary fields are in minor currency units.
type OrderLine struct {
	GroceryID    int64  `json:"id"`
	Name         string `json:"name"`
	Ordered      int    `json:"ordered"`
	Remaining    int    `json:"remaining"`
	PricePerUnit int64  `json:"pricePerUnit"`
	Total        int64  `json:"total"`
}

// Order is a placed order with its line snapshots and precomputed total.
type Order struct {
	ID        int64       `json:"orderId"`
	UserID    string      `json:"userId"`
	Items     []OrderLine `json:"items"`
	TotalCost int64       `json:"totalCost"`
	CreatedAt time.Time   `json:"createdAt"`
}

// OrderItemRequest is one requested line in a place-order call.
type OrderItemRequest struct {
	GroceryID int64 `json:"id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// PlaceOrderRequest is the payload for placing an order.
type PlaceOrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}
