// Package driverrepo provides data transfer objects and mapping functions
// for the driver roster.
package driverrepo

import (
	"qatmarket/internal/core/domain/model/driver"
	"qatmarket/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting drivers.
type DriverDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	VehicleType string
	Available   bool `gorm:"index"`
	Version     int
}

// TableName specifies the database table name for drivers.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		VehicleType: aggregate.VehicleType(),
		Available:   aggregate.Available(),
		Version:     aggregate.Version(),
	}
}

// toDomain converts a database DTO back into a driver aggregate.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return driver.RestoreDriver(id, dto.Name, dto.VehicleType, dto.Available, dto.Version)
}
