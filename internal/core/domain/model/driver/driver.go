package driver

import (
	"errors"
	"fmt"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/pkg/errs"
	"qatmarket/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrVehicleTypeIsRequired is returned when attempting to create a driver without a vehicle type.
	ErrVehicleTypeIsRequired = errs.NewValueIsRequiredError("vehicleType")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Driver represents a delivery driver on the platform roster.
// The dispatch policy selects an available driver when an order becomes
// ready for delivery; availability flips while the driver carries an order.
//
// Business rules:
//   - Driver must have a valid UUID, non-empty name, and non-empty vehicle type
//   - A newly registered driver is available
type Driver struct {
	// id uniquely identifies the driver
	id kernel.UUID
	// name is the human-readable name of the driver
	name string
	// vehicleType describes what the driver delivers with (motorbike, car, ...)
	vehicleType string
	// available reports whether the driver can take a new order
	available bool
	// version is the optimistic-concurrency token checked on every update
	version int
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

// NewDriver creates a new available Driver with the specified parameters.
// This is the only way to create a valid Driver instance.
func NewDriver(id kernel.UUID, name string, vehicleType string) (*Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}
	if vehicleType == "" {
		return nil, ErrVehicleTypeIsRequired
	}

	return &Driver{
		id:          id,
		name:        name,
		vehicleType: vehicleType,
		available:   true,
		version:     1,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreDriver reconstructs a driver from persistence.
func RestoreDriver(id kernel.UUID, name string, vehicleType string, available bool, version int) (*Driver, error) {
	d, err := NewDriver(id, name, vehicleType)
	if err != nil {
		return nil, err
	}
	if version <= 0 {
		return nil, errs.NewVersionIsInvalidError("version",
			fmt.Errorf("%d is not greater than 0", version))
	}
	d.available = available
	d.version = version
	return d, nil
}

// Validate ensures the Driver instance was properly constructed.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers by their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's human-readable name.
func (d *Driver) Name() string {
	return d.name
}

// VehicleType returns what the driver delivers with.
func (d *Driver) VehicleType() string {
	return d.vehicleType
}

// Available reports whether the driver can take a new order.
func (d *Driver) Available() bool {
	return d.available
}

// Version returns the optimistic-concurrency token. Repositories compare it
// on update and reject the write when another dispatch won the race.
func (d *Driver) Version() int {
	return d.version
}

// MarkBusy flags the driver as carrying an order.
func (d *Driver) MarkBusy() {
	d.available = false
}

// MarkAvailable flags the driver as free for the next order.
func (d *Driver) MarkAvailable() {
	d.available = true
}
