package commands

import (
	"errors"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/pkg/guard"
)

var (
	ErrCreateDriverCommandIsNotConstructed = errors.New(
		"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
	)
	ErrNameIsRequired        = errors.New("name is required")
	ErrVehicleTypeIsRequired = errors.New("vehicle type is required")
)

// CreateDriverCommand represents a request to add a driver to the roster.
// New drivers start available for dispatch.
type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID    kernel.UUID
	name        string
	vehicleType string

	guard guard.ConstructorGuard
}

// NewCreateDriverCommand creates a command to register a new driver.
// Validates that the driver ID is valid and the name and vehicle type are
// not empty. Returns an error if any validation fails.
func NewCreateDriverCommand(driverID kernel.UUID, name string, vehicleType string) (CreateDriverCommand, error) {
	driverCommand := CreateDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driverCommand.setDriverID(driverID),
		driverCommand.setName(name),
		driverCommand.setVehicleType(vehicleType),
	); err != nil {
		return CreateDriverCommand{}, err
	}

	return driverCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateDriverCommandIsNotConstructed if validation fails.
func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

// DriverID returns the unique identifier for the driver.
func (c CreateDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Name returns the driver's display name.
func (c CreateDriverCommand) Name() string {
	return c.name
}

// VehicleType returns what the driver delivers with.
func (c CreateDriverCommand) VehicleType() string {
	return c.vehicleType
}

func (c *CreateDriverCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *CreateDriverCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateDriverCommand) setVehicleType(vehicleType string) error {
	if vehicleType == "" {
		return ErrVehicleTypeIsRequired
	}

	c.vehicleType = vehicleType
	return nil
}
