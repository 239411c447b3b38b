package queries

import (
	"context"
	"time"

	"qatmarket/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetWalletTransactionsQueryHandler retrieves a user's transaction feed
// from the ledger, newest first, one page at a time.
type GetWalletTransactionsQueryHandler struct {
	db *gorm.DB
}

// NewGetWalletTransactionsQueryHandler creates a handler for transaction
// feed queries. Requires a GORM database connection for query execution.
func NewGetWalletTransactionsQueryHandler(db *gorm.DB) GetWalletTransactionsQueryHandler {
	return GetWalletTransactionsQueryHandler{db: db}
}

// Handle executes the query to retrieve the user's recent ledger entries.
func (h GetWalletTransactionsQueryHandler) Handle(
	ctx context.Context,
	query GetWalletTransactionsQuery,
) ([]GetWalletTransactionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			delta,
			reason,
			order_id,
			created_at
		FROM ledger_entries
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, query.UserID().Bytes(), transactionPageSize).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]GetWalletTransactionsQueryResponse, 0)
	for rows.Next() {
		var entry GetWalletTransactionsQueryResponse
		var id uuid.UUID
		var orderID uuid.NullUUID
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&entry.Delta,
			&entry.Reason,
			&orderID,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if entry.OrderID, err = optionalUUID(orderID); err != nil {
			return nil, err
		}
		entry.CreatedAt = createdAt

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
