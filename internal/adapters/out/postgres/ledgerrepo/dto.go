// Package ledgerrepo persists the append-only balance ledger. Entries are
// never updated or deleted; a user's balance is always computed as the sum
// of their entries.
package ledgerrepo

import (
	"time"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting ledger entries.
type EntryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	Delta     float64
	Reason    string
	OrderID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
}

// TableName specifies the database table name for ledger entries.
func (EntryDTO) TableName() string {
	return "ledger_entries"
}

// fromDomain converts a ledger entry to its database representation.
func fromDomain(entry *ledger.Entry) EntryDTO {
	var orderID *uuid.UUID
	if id := entry.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return EntryDTO{
		ID:        entry.ID().Bytes(),
		UserID:    entry.UserID().Bytes(),
		Delta:     entry.Delta(),
		Reason:    entry.Reason().String(),
		OrderID:   orderID,
		CreatedAt: entry.CreatedAt(),
	}
}

// toDomain converts a database DTO back into a ledger entry.
func toDomain(dto EntryDTO) (*ledger.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		converted, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &converted
	}

	reason, err := ledger.ReasonFromString(dto.Reason)
	if err != nil {
		return nil, err
	}

	return ledger.RestoreEntry(id, userID, dto.Delta, reason, orderID, dto.CreatedAt)
}
