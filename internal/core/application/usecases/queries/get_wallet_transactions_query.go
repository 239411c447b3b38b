package queries

import (
	"errors"
	"time"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/pkg/guard"
)

var ErrGetWalletTransactionsQueryIsNotConstructed = errors.New(
	"GetWalletTransactionsQuery must be created via NewGetWalletTransactionsQuery constructor",
)

// transactionPageSize caps how many ledger entries one query returns.
const transactionPageSize = 50

// GetWalletTransactionsQuery retrieves a user's recent ledger entries,
// newest first.
type GetWalletTransactionsQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetWalletTransactionsQuery creates a query for a user's transactions.
func NewGetWalletTransactionsQuery(userID kernel.UUID) (GetWalletTransactionsQuery, error) {
	query := GetWalletTransactionsQuery{guard: guard.NewConstructorGuard()}
	if err := query.setUserID(userID); err != nil {
		return GetWalletTransactionsQuery{}, err
	}
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWalletTransactionsQuery) Validate() error {
	return q.guard.Validate(ErrGetWalletTransactionsQueryIsNotConstructed)
}

// UserID returns the wallet owner.
func (q GetWalletTransactionsQuery) UserID() kernel.UUID {
	return q.userID
}

func (q *GetWalletTransactionsQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	q.userID = userID
	return nil
}

// GetWalletTransactionsQueryResponse represents one ledger entry in the
// user's transaction feed.
type GetWalletTransactionsQueryResponse struct {
	ID        kernel.UUID
	Delta     float64
	Reason    string
	OrderID   *kernel.UUID
	CreatedAt time.Time
}
