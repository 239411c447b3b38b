package http

import (
	"time"

	"qatmarket/internal/core/application/usecases/queries"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderItemRequest is one order line in a create order request.
type OrderItemRequest struct {
	ProductID string  `json:"product_id"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Washing   bool    `json:"washing"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	SellerID      string             `json:"seller_id"`
	WasherID      *string            `json:"washer_id,omitempty"`
	Items         []OrderItemRequest `json:"items"`
	Address       string             `json:"address"`
	DeliveryTime  string             `json:"delivery_time"`
	PaymentMethod string             `json:"payment_method"`
}

// ChangeOrderStatusRequest is the body of POST /api/v1/orders/:id/status.
type ChangeOrderStatusRequest struct {
	Status string `json:"status"`
}

// TopUpWalletRequest is the body of POST /api/v1/wallet/topup.
type TopUpWalletRequest struct {
	Amount float64 `json:"amount"`
}

// WithdrawWalletRequest is the body of POST /api/v1/wallet/withdraw.
type WithdrawWalletRequest struct {
	Amount float64 `json:"amount"`
}

// CreateDriverRequest is the body of POST /api/v1/drivers.
type CreateDriverRequest struct {
	Name        string `json:"name"`
	VehicleType string `json:"vehicle_type"`
}

// CreateOrderResponse confirms a placed order.
type CreateOrderResponse struct {
	ID       string  `json:"id"`
	Status   string  `json:"status"`
	SaleCode string  `json:"sale_code"`
	Total    float64 `json:"total"`
}

// OrderResponse is the full order read model returned by order queries.
type OrderResponse struct {
	ID              string                         `json:"id"`
	BuyerID         string                         `json:"buyer_id"`
	SellerID        string                         `json:"seller_id"`
	WasherID        *string                        `json:"washer_id,omitempty"`
	DriverID        *string                        `json:"driver_id,omitempty"`
	Items           []queries.OrderItemResponse    `json:"items"`
	RequiresWashing bool                           `json:"requires_washing"`
	Address         string                         `json:"address"`
	DeliveryTime    string                         `json:"delivery_time"`
	Subtotal        float64                        `json:"subtotal"`
	WashingTotal    float64                        `json:"washing_total"`
	DeliveryFee     float64                        `json:"delivery_fee"`
	Total           float64                        `json:"total"`
	Status          string                         `json:"status"`
	StatusHistory   []queries.StatusChangeResponse `json:"status_history"`
	SaleCode        string                         `json:"sale_code"`
	PaymentMethod   string                         `json:"payment_method"`
	CreatedAt       time.Time                      `json:"created_at"`
}

// WalletResponse is the body of GET /api/v1/wallet.
type WalletResponse struct {
	UserID  string  `json:"user_id"`
	Balance float64 `json:"balance"`
}

// TransactionResponse is one ledger entry in the wallet history.
type TransactionResponse struct {
	ID        string    `json:"id"`
	Delta     float64   `json:"delta"`
	Reason    string    `json:"reason"`
	OrderID   *string   `json:"order_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationResponse is one event in the notification feed.
type NotificationResponse struct {
	ID        string            `json:"id"`
	EventType string            `json:"event_type"`
	OrderID   *string           `json:"order_id,omitempty"`
	Payload   map[string]string `json:"payload"`
	CreatedAt time.Time         `json:"created_at"`
	Read      bool              `json:"read"`
}

// DriverResponse is one free driver on the roster.
type DriverResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	VehicleType string `json:"vehicle_type"`
}

func orderResponseFrom(r queries.GetOrderQueryResponse) OrderResponse {
	resp := OrderResponse{
		ID:              r.ID.String(),
		BuyerID:         r.BuyerID.String(),
		SellerID:        r.SellerID.String(),
		Items:           r.Items,
		RequiresWashing: r.RequiresWashing,
		Address:         r.Address,
		DeliveryTime:    r.DeliveryTime,
		Subtotal:        r.Subtotal,
		WashingTotal:    r.WashingTotal,
		DeliveryFee:     r.DeliveryFee,
		Total:           r.Total,
		Status:          r.Status,
		StatusHistory:   r.StatusHistory,
		SaleCode:        r.SaleCode,
		PaymentMethod:   r.PaymentMethod,
		CreatedAt:       r.CreatedAt,
	}
	if r.WasherID != nil {
		s := r.WasherID.String()
		resp.WasherID = &s
	}
	if r.DriverID != nil {
		s := r.DriverID.String()
		resp.DriverID = &s
	}
	return resp
}
