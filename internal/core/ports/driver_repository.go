package ports

import (
	"context"

	"qatmarket/internal/core/domain/model/driver"
	"qatmarket/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for the driver roster.
type DriverRepository interface {
	// Add persists a new driver to the roster.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver, such as availability
	// flips. Implementations compare the driver's version and reject the
	// write with errs.ErrVersionIsInvalid when another update won the race.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver by their unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAllAvailable retrieves all drivers currently free to take an order.
	GetAllAvailable(ctx context.Context) ([]*driver.Driver, error)
}
