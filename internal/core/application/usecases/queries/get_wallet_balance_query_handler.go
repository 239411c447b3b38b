package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetWalletBalanceQueryHandler computes a user's balance from the ledger.
// Users without any entries simply have a balance of zero.
type GetWalletBalanceQueryHandler struct {
	db *gorm.DB
}

// NewGetWalletBalanceQueryHandler creates a handler for balance queries.
// Requires a GORM database connection for query execution.
func NewGetWalletBalanceQueryHandler(db *gorm.DB) GetWalletBalanceQueryHandler {
	return GetWalletBalanceQueryHandler{db: db}
}

// Handle executes the query to compute the balance.
func (h GetWalletBalanceQueryHandler) Handle(
	ctx context.Context,
	query GetWalletBalanceQuery,
) (GetWalletBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWalletBalanceQueryResponse{}, err
	}

	var balance float64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(delta), 0)
		FROM ledger_entries
		WHERE user_id = ?
	`, query.UserID().Bytes()).Scan(&balance).Error
	if err != nil {
		return GetWalletBalanceQueryResponse{}, err
	}

	return GetWalletBalanceQueryResponse{
		UserID:  query.UserID(),
		Balance: balance,
	}, nil
}
