// Package ports defines repository and collaborator interfaces for the
// marketplace domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Updates use optimistic concurrency: the stored row carries a version
// token, and Update only succeeds when the aggregate's version matches the
// stored one. Concurrent transitions on the same order therefore serialize:
// one writer wins, the other gets a version error and must reload and retry.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, guarded by the
	// aggregate's version. Returns an error wrapping errs.ErrVersionIsInvalid
	// when another writer changed the order since it was loaded.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier,
	// including its items and full status history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByParticipant retrieves all orders where the user is the buyer,
	// seller, washer, or driver, newest first.
	GetAllByParticipant(ctx context.Context, userID kernel.UUID) ([]*order.Order, error)
}
