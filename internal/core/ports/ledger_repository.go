package ports

import (
	"context"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/ledger"
)

// LedgerRepository defines the persistence contract for the append-only
// balance ledger. Entries are immutable once appended; a user's balance is
// the sum of their entries and is never stored as an overwritable field.
type LedgerRepository interface {
	// Append persists new ledger entries. Entries are never updated or
	// deleted afterward. Implementations must serialize debits per user
	// and reject the batch with ledger.ErrInsufficientBalance when it
	// would drive any debited user's balance below zero.
	Append(ctx context.Context, entries ...*ledger.Entry) error

	// GetByOrder retrieves all entries caused by the given order, oldest
	// first. Used to compute cancellation refunds and refund reversals.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*ledger.Entry, error)

	// GetByUser retrieves the user's entries, newest first, up to limit.
	GetByUser(ctx context.Context, userID kernel.UUID, limit int) ([]*ledger.Entry, error)

	// BalanceOf computes the user's balance as the sum of their entries.
	// Users without entries have a balance of zero.
	BalanceOf(ctx context.Context, userID kernel.UUID) (float64, error)
}
