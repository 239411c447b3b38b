// Package queries contains read-only operations for the query side of the
// CQRS architecture. Query handlers bypass the domain model and read
// denormalized rows straight from the database for performance.
package queries

import (
	"errors"
	"time"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its items and full status history.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve a single order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	query := GetOrderQuery{guard: guard.NewConstructorGuard()}
	if err := query.setOrderID(orderID); err != nil {
		return GetOrderQuery{}, err
	}
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to retrieve.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// OrderItemResponse is one order line in a read model. The product ID stays
// in its string form; read models feed the HTTP layer directly.
type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Washing   bool    `json:"washing"`
}

// StatusChangeResponse is one status history entry in a read model.
type StatusChangeResponse struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

// GetOrderQueryResponse represents the full order read model.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	BuyerID         kernel.UUID
	SellerID        kernel.UUID
	WasherID        *kernel.UUID
	DriverID        *kernel.UUID
	Items           []OrderItemResponse
	RequiresWashing bool
	Address         string
	DeliveryTime    string
	Subtotal        float64
	WashingTotal    float64
	DeliveryFee     float64
	Total           float64
	Status          string
	StatusHistory   []StatusChangeResponse
	SaleCode        string
	PaymentMethod   string
	CreatedAt       time.Time
	Version         int
}
