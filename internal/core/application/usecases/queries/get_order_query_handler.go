package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order read model from the database.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//
//	found, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", found.SaleCode, found.Status)
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

const orderColumns = `
		id,
		buyer_id,
		seller_id,
		washer_id,
		driver_id,
		items,
		requires_washing,
		address,
		delivery_time,
		subtotal,
		washing_total,
		delivery_fee,
		total,
		status,
		status_history,
		sale_code,
		payment_method,
		created_at,
		version`

// Handle executes the query to retrieve the order.
// Returns an error wrapping errs.ErrObjectNotFound when no such order exists.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}

	return scanOrderRow(rows)
}

// scanOrderRow converts one orders row into the read model, decoding the
// items and status history JSON columns.
func scanOrderRow(rows *sql.Rows) (GetOrderQueryResponse, error) {
	var resp GetOrderQueryResponse
	var id uuid.UUID
	var buyerID, sellerID uuid.UUID
	var washerID, driverID uuid.NullUUID
	var itemsJSON, historyJSON []byte
	var createdAt time.Time

	err := rows.Scan(
		&id,
		&buyerID,
		&sellerID,
		&washerID,
		&driverID,
		&itemsJSON,
		&resp.RequiresWashing,
		&resp.Address,
		&resp.DeliveryTime,
		&resp.Subtotal,
		&resp.WashingTotal,
		&resp.DeliveryFee,
		&resp.Total,
		&resp.Status,
		&historyJSON,
		&resp.SaleCode,
		&resp.PaymentMethod,
		&createdAt,
		&resp.Version,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.SellerID, err = kernel.UUIDFromBytes(sellerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.WasherID, err = optionalUUID(washerID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.DriverID, err = optionalUUID(driverID); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if err = json.Unmarshal(itemsJSON, &resp.Items); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err = json.Unmarshal(historyJSON, &resp.StatusHistory); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.CreatedAt = createdAt
	return resp, nil
}

func optionalUUID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}

	converted, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
