package order

import (
	"errors"
	"fmt"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/pkg/errs"
)

// Transition rejection errors. They carry no mutation: an order whose
// transition fails with any of these is left exactly as it was.
var (
	// ErrInvalidTransition is returned when the requested status is not
	// a direct successor of the current status in the lifecycle graph.
	ErrInvalidTransition = errors.New("status transition is not allowed")

	// ErrUnauthorizedRole is returned when the acting role is not permitted
	// to move the order along the requested edge.
	ErrUnauthorizedRole = errors.New("role is not authorized for this transition")

	// ErrTerminalState is returned when the order has already reached a state
	// from which no further transitions are permitted.
	ErrTerminalState = errors.New("order is in a terminal state")

	// ErrRefundWindowClosed is returned when a refund is requested after the
	// configured refund window has elapsed since delivery.
	ErrRefundWindowClosed = errors.New("refund window has closed")
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct marketplace workflow.
//
// State transitions (washing step skipped when the order has no items
// marked for washing):
//
//	Pending ──> Confirmed ──> Preparing ──┬──> Washing ──┐
//	                                      │              v
//	                                      └──> ReadyForDelivery ──> Delivering ──> Delivered ──> Refunded
//
// Every state before Delivering may also branch to Cancelled.
// Cancelled and Refunded are terminal. Delivered admits exactly one
// further transition, to Refunded, and only within the refund window.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// Orders stay pending until payment is confirmed.
	Pending

	// Confirmed indicates payment has been secured and the seller may start.
	Confirmed

	// Preparing indicates the seller is preparing the order items.
	Preparing

	// Washing indicates the order is at the washing station.
	// Only reachable for orders that require washing.
	Washing

	// ReadyForDelivery indicates the order awaits pickup by a driver.
	ReadyForDelivery

	// Delivering indicates a driver is carrying the order to the buyer.
	Delivering

	// Delivered indicates the order reached the buyer.
	// Final except for an admin refund within the refund window.
	Delivered

	// Cancelled indicates the order was called off before delivery.
	// This is a final state with no further transitions allowed.
	Cancelled

	// Refunded indicates a delivered order was fully reversed.
	// This is a final state with no further transitions allowed.
	Refunded
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "unknown",
		Pending:          "pending",
		Confirmed:        "confirmed",
		Preparing:        "preparing",
		Washing:          "washing",
		ReadyForDelivery: "ready_for_delivery",
		Delivering:       "delivering",
		Delivered:        "delivered",
		Cancelled:        "cancelled",
		Refunded:         "refunded",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	strings := getStatusStrings()
	delete(strings, Unknown)
	return strings
}

// getTransitions returns the forward edges of the lifecycle graph.
// Preparing lists both successors; CanTransition picks the right one
// based on whether the order requires washing.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:          {Confirmed, Cancelled},
		Confirmed:        {Preparing, Cancelled},
		Preparing:        {Washing, ReadyForDelivery, Cancelled},
		Washing:          {ReadyForDelivery, Cancelled},
		ReadyForDelivery: {Delivering, Cancelled},
		Delivering:       {Delivered},
		Delivered:        {Refunded},
		Cancelled:        {},
		Refunded:         {},
	}
}

// getTransitionRoles maps each edge of the graph to the roles allowed to take it.
// Confirmation acknowledges payment, so buyers never drive that edge themselves:
// externally paid orders are confirmed by the seller or admin, and balance-paid
// orders are confirmed by the platform when the order is placed.
func getTransitionRoles() map[[2]Status][]kernel.Role {
	return map[[2]Status][]kernel.Role{
		{Pending, Confirmed}:           {kernel.RoleSeller, kernel.RoleAdmin},
		{Confirmed, Preparing}:         {kernel.RoleSeller, kernel.RoleAdmin},
		{Preparing, Washing}:           {kernel.RoleWasher},
		{Preparing, ReadyForDelivery}:  {kernel.RoleSeller, kernel.RoleAdmin},
		{Washing, ReadyForDelivery}:    {kernel.RoleWasher},
		{ReadyForDelivery, Delivering}: {kernel.RoleDriver},
		{Delivering, Delivered}:        {kernel.RoleDriver},
		{Pending, Cancelled}:           {kernel.RoleBuyer, kernel.RoleAdmin},
		{Confirmed, Cancelled}:         {kernel.RoleBuyer, kernel.RoleAdmin},
		{Preparing, Cancelled}:         {kernel.RoleBuyer, kernel.RoleAdmin},
		{Washing, Cancelled}:           {kernel.RoleBuyer, kernel.RoleAdmin},
		{ReadyForDelivery, Cancelled}:  {kernel.RoleBuyer, kernel.RoleAdmin},
		{Delivered, Refunded}:          {kernel.RoleAdmin},
	}
}

// StatusFromString parses a status from its wire representation.
// Returns an error for anything that is not a valid status name.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are permitted from s.
// Delivered is not terminal here: it still admits the refund edge.
func (s Status) IsTerminal() bool {
	return s == Cancelled || s == Refunded
}

// IsSettled reports whether the order has finished its forward lifecycle.
// Settled orders reject every ordinary status change; a delivered order
// additionally admits an admin refund within the refund window.
func (s Status) IsSettled() bool {
	return s == Delivered || s.IsTerminal()
}

// CanTransition reports whether moving from s to target is an edge of the
// lifecycle graph for an order with the given washing requirement.
// Orders that require washing must pass through the Washing status;
// orders that do not require it skip Washing entirely.
func (s Status) CanTransition(target Status, requiresWashing bool) bool {
	if s == Preparing && target == Washing && !requiresWashing {
		return false
	}
	if s == Preparing && target == ReadyForDelivery && requiresWashing {
		return false
	}

	for _, next := range getTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// RoleCanTransition reports whether the acting role is authorized to move
// an order from s to target. Edges absent from the graph authorize no role.
func (s Status) RoleCanTransition(target Status, role kernel.Role) bool {
	for _, allowed := range getTransitionRoles()[[2]Status{s, target}] {
		if allowed == role {
			return true
		}
	}
	return false
}
