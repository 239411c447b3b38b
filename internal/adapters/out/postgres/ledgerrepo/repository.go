package ledgerrepo

import (
	"context"
	"fmt"
	"sort"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/ledger"

	"gorm.io/gorm"
)

// GormLedgerRepository implements LedgerRepository using GORM.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append persists new ledger entries. Entries are insert-only.
//
// Append is the enforcement point of the non-negative balance invariant.
// Application-level balance reads run at READ COMMITTED and cannot see each
// other's uncommitted debits, so two concurrent debits against the same user
// would both pass such a check. Append therefore takes a per-user advisory
// transaction lock before inserting any debit and re-sums the balance after
// the insert: concurrent debitors of the same user queue on the lock, and the
// one that would drive the balance negative fails with
// ledger.ErrInsufficientBalance. The caller's rollback then discards the
// insert, so Append must run inside a unit-of-work transaction.
func (r *GormLedgerRepository) Append(ctx context.Context, entries ...*ledger.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	debited := make(map[kernel.UUID]bool)
	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return err
		}
		if entry.Delta() < 0 {
			debited[entry.UserID()] = true
		}
		dtos = append(dtos, fromDomain(entry))
	}

	// Locks are taken in a stable order so two multi-user appends
	// cannot deadlock each other.
	users := make([]kernel.UUID, 0, len(debited))
	for userID := range debited {
		users = append(users, userID)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].String() < users[j].String() })

	db := r.db.WithContext(ctx)
	for _, userID := range users {
		if err := db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", userID.String()).Error; err != nil {
			return err
		}
	}

	if err := db.Create(&dtos).Error; err != nil {
		return err
	}

	for _, userID := range users {
		var balance float64
		err := db.Model(&EntryDTO{}).
			Select("COALESCE(SUM(delta), 0)").
			Where("user_id = ?", userID.Bytes()).
			Scan(&balance).Error
		if err != nil {
			return err
		}
		if balance < 0 {
			return fmt.Errorf("%w: user %s would drop to %.2f",
				ledger.ErrInsufficientBalance, userID, balance)
		}
	}

	return nil
}

// GetByOrder retrieves all entries caused by the given order, oldest first.
func (r *GormLedgerRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*ledger.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetByUser retrieves the user's entries, newest first, up to limit.
func (r *GormLedgerRepository) GetByUser(ctx context.Context, userID kernel.UUID, limit int) ([]*ledger.Entry, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID.Bytes()).
		Order("created_at DESC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// BalanceOf computes the user's balance as the sum of their entries.
func (r *GormLedgerRepository) BalanceOf(ctx context.Context, userID kernel.UUID) (float64, error) {
	if err := userID.Validate(); err != nil {
		return 0, err
	}

	var balance float64
	err := r.db.WithContext(ctx).Model(&EntryDTO{}).
		Select("COALESCE(SUM(delta), 0)").
		Where("user_id = ?", userID.Bytes()).
		Scan(&balance).Error
	if err != nil {
		return 0, err
	}

	return balance, nil
}

func toDomainSlice(dtos []EntryDTO) ([]*ledger.Entry, error) {
	entries := make([]*ledger.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
