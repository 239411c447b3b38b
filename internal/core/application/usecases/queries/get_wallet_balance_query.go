package queries

import (
	"errors"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/pkg/guard"
)

var ErrGetWalletBalanceQueryIsNotConstructed = errors.New(
	"GetWalletBalanceQuery must be created via NewGetWalletBalanceQuery constructor",
)

// GetWalletBalanceQuery retrieves a user's current wallet balance.
// The balance is always computed as the sum of the user's ledger entries,
// never read from a stored counter.
type GetWalletBalanceQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetWalletBalanceQuery creates a query for a user's balance.
func NewGetWalletBalanceQuery(userID kernel.UUID) (GetWalletBalanceQuery, error) {
	query := GetWalletBalanceQuery{guard: guard.NewConstructorGuard()}
	if err := query.setUserID(userID); err != nil {
		return GetWalletBalanceQuery{}, err
	}
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWalletBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetWalletBalanceQueryIsNotConstructed)
}

// UserID returns the wallet owner.
func (q GetWalletBalanceQuery) UserID() kernel.UUID {
	return q.userID
}

func (q *GetWalletBalanceQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	q.userID = userID
	return nil
}

// GetWalletBalanceQueryResponse represents a user's wallet snapshot.
type GetWalletBalanceQueryResponse struct {
	UserID  kernel.UUID
	Balance float64
}
