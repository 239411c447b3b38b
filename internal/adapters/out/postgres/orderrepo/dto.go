// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order domain aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Items and status history are denormalized into JSONB columns: both are
// immutable value collections owned entirely by the order, so there is
// nothing to join against.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BuyerID         uuid.UUID  `gorm:"type:uuid;index"`
	SellerID        uuid.UUID  `gorm:"type:uuid;index"`
	WasherID        *uuid.UUID `gorm:"type:uuid;index"`
	DriverID        *uuid.UUID `gorm:"type:uuid;index"`
	Items           []byte     `gorm:"type:jsonb"`
	RequiresWashing bool
	Address         string
	DeliveryTime    string
	Subtotal        float64
	WashingTotal    float64
	DeliveryFee     float64
	Total           float64
	Status          string `gorm:"index"`
	StatusHistory   []byte `gorm:"type:jsonb"`
	SaleCode        string `gorm:"size:8"`
	PaymentMethod   string
	CreatedAt       time.Time
	Version         int
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// itemDTO is the JSON shape of one order line inside the items column.
type itemDTO struct {
	ProductID string  `json:"product_id"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Washing   bool    `json:"washing"`
}

// statusChangeDTO is the JSON shape of one history entry inside the
// status_history column.
type statusChangeDTO struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items := make([]itemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemDTO{
			ProductID: item.ProductID().String(),
			UnitPrice: item.UnitPrice(),
			Quantity:  item.Quantity(),
			Washing:   item.Washing(),
		})
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return OrderDTO{}, err
	}

	history := make([]statusChangeDTO, 0, len(aggregate.StatusHistory()))
	for _, change := range aggregate.StatusHistory() {
		history = append(history, statusChangeDTO{
			Status: change.Status.String(),
			At:     change.At,
		})
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		BuyerID:         aggregate.BuyerID().Bytes(),
		SellerID:        aggregate.SellerID().Bytes(),
		WasherID:        rawUUID(aggregate.WasherID()),
		DriverID:        rawUUID(aggregate.DriverID()),
		Items:           itemsJSON,
		RequiresWashing: aggregate.RequiresWashing(),
		Address:         aggregate.Address(),
		DeliveryTime:    aggregate.DeliveryTime(),
		Subtotal:        aggregate.Subtotal(),
		WashingTotal:    aggregate.WashingTotal(),
		DeliveryFee:     aggregate.DeliveryFee(),
		Total:           aggregate.Total(),
		Status:          aggregate.Status().String(),
		StatusHistory:   historyJSON,
		SaleCode:        aggregate.SaleCode().String(),
		PaymentMethod:   aggregate.PaymentMethod().String(),
		CreatedAt:       aggregate.CreatedAt(),
		Version:         aggregate.Version(),
	}, nil
}

// toDomain converts a database DTO back into an order domain aggregate
// using RestoreOrder, re-checking only structural validity.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}
	washerID, err := domainUUID(dto.WasherID)
	if err != nil {
		return nil, err
	}
	driverID, err := domainUUID(dto.DriverID)
	if err != nil {
		return nil, err
	}

	var itemDTOs []itemDTO
	if err = json.Unmarshal(dto.Items, &itemDTOs); err != nil {
		return nil, err
	}
	items := make([]order.Item, 0, len(itemDTOs))
	for _, raw := range itemDTOs {
		productID, productErr := kernel.UUIDFromString(raw.ProductID)
		if productErr != nil {
			return nil, productErr
		}
		item, itemErr := order.NewItem(productID, raw.UnitPrice, raw.Quantity, raw.Washing)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var historyDTOs []statusChangeDTO
	if err = json.Unmarshal(dto.StatusHistory, &historyDTOs); err != nil {
		return nil, err
	}
	history := make([]order.StatusChange, 0, len(historyDTOs))
	for _, raw := range historyDTOs {
		status, statusErr := order.StatusFromString(raw.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		history = append(history, order.StatusChange{Status: status, At: raw.At})
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	saleCode, err := order.SaleCodeFromString(dto.SaleCode)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, buyerID, sellerID, washerID, driverID,
		items, dto.RequiresWashing, dto.Address, dto.DeliveryTime,
		dto.Subtotal, dto.WashingTotal, dto.DeliveryFee, dto.Total,
		status, history, saleCode, paymentMethod, dto.CreatedAt, dto.Version,
	)
}

func rawUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}

	raw := id.Bytes()
	return &raw
}

func domainUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}

	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
