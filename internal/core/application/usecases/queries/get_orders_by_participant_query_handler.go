package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrdersByParticipantQueryHandler retrieves the orders a user takes part
// in, newest first. Reuses the single order read model.
type GetOrdersByParticipantQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByParticipantQueryHandler creates a handler for participant
// order queries. Requires a GORM database connection for query execution.
func NewGetOrdersByParticipantQueryHandler(db *gorm.DB) GetOrdersByParticipantQueryHandler {
	return GetOrdersByParticipantQueryHandler{db: db}
}

// Handle executes the query. Matches the user against every participant
// column so one endpoint serves all four roles.
func (h GetOrdersByParticipantQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByParticipantQuery,
) ([]GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	userID := query.UserID().Bytes()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE buyer_id = ? OR seller_id = ? OR washer_id = ? OR driver_id = ?
		ORDER BY created_at DESC
	`, userID, userID, userID, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrderQueryResponse, 0)
	for rows.Next() {
		resp, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
