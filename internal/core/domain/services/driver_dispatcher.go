package services

import (
	"errors"

	"qatmarket/internal/core/domain/model/driver"
	"qatmarket/internal/core/domain/model/order"
)

// ErrDriverNotFound is returned when no available driver can take the order.
var ErrDriverNotFound = errors.New("driver not found")

// DriverDispatcher selects a driver for an order that is ready for delivery.
// The selection policy is deliberately pluggable; how a driver is chosen
// (round-robin, nearest market, manual assignment) is a product decision
// that must not leak into the orchestration code.
type DriverDispatcher interface {
	// Dispatch picks a driver from the candidates, assigns the order to them,
	// and marks them busy. Returns the chosen driver.
	Dispatch(o *order.Order, drivers []*driver.Driver) (*driver.Driver, error)
}

// FirstAvailableDispatcher is the default dispatch policy: the first
// available driver on the roster takes the order.
type FirstAvailableDispatcher struct{}

// NewFirstAvailableDispatcher creates the default dispatch policy.
func NewFirstAvailableDispatcher() FirstAvailableDispatcher {
	return FirstAvailableDispatcher{}
}

// Dispatch assigns the order to the first available candidate and marks the
// driver busy. Returns ErrDriverNotFound when no candidate is available.
func (FirstAvailableDispatcher) Dispatch(o *order.Order, drivers []*driver.Driver) (*driver.Driver, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if !d.Available() {
			continue
		}

		if err := o.AssignDriver(d.ID()); err != nil {
			return nil, err
		}
		d.MarkBusy()
		return d, nil
	}

	return nil, ErrDriverNotFound
}
