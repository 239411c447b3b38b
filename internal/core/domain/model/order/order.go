package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrItemsAreRequired is returned when an order is created with an empty item list.
	ErrItemsAreRequired = errors.New("order must contain at least one item")

	// ErrAddressIsRequired is returned when an order is created with a blank delivery address.
	ErrAddressIsRequired = errors.New("delivery address is required")

	// ErrWasherIsRequired is returned when an order requests washing but names no washing station.
	ErrWasherIsRequired = errors.New("washing station is required for orders with washing")

	// ErrDriverIsRequired is returned when an order tries to enter Delivering without
	// an assigned driver.
	ErrDriverIsRequired = errors.New("driver must be assigned before delivering")
)

// StatusChange is one entry of an order's status history: the status the
// order entered and when. The history is strictly append-only and its
// timestamps are monotonically non-decreasing.
type StatusChange struct {
	Status Status
	At     time.Time
}

// Order represents a marketplace order in the system. It is the aggregate root
// that owns the canonical state of an order from creation to its terminal state.
//
// Order follows these invariants:
//   - Must have valid unique, buyer, and seller identifiers
//   - Must contain at least one item; items are immutable after creation
//   - Total always equals subtotal + washing total + delivery fee
//   - Status changes only through TransitionTo, which enforces the lifecycle
//     graph and per-edge role authorization
//   - Status history is append-only with non-decreasing timestamps
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// buyerID identifies the buyer who placed the order
	buyerID kernel.UUID

	// sellerID identifies the seller whose products are ordered
	sellerID kernel.UUID

	// washerID is the washing station processing the order (nil when no washing)
	washerID *kernel.UUID

	// driverID is the assigned driver's ID (nil until a driver is dispatched)
	driverID *kernel.UUID

	// items is the immutable sequence of order lines
	items []Item

	// requiresWashing is derived at creation from the items and never changes
	requiresWashing bool

	// address is the delivery destination
	address string

	// deliveryTime is the buyer's requested delivery slot (free-form label)
	deliveryTime string

	// subtotal is the sum of all item line totals
	subtotal float64

	// washingTotal is the washing fee applied per washed line
	washingTotal float64

	// deliveryFee is the flat delivery charge captured at creation
	deliveryFee float64

	// total = subtotal + washingTotal + deliveryFee, fixed at creation
	total float64

	// status is the current state in the order lifecycle
	status Status

	// statusHistory records every status the order has entered
	statusHistory []StatusChange

	// saleCode is the human-readable tracking token, generated at creation
	saleCode SaleCode

	// paymentMethod is how the buyer pays; immutable
	paymentMethod PaymentMethod

	// createdAt is when the order was placed
	createdAt time.Time

	// version is the optimistic-concurrency token checked on every update
	version int

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Pending status with validation.
// This is the only way to create a fresh order, ensuring all business
// invariants hold from the start.
//
// The monetary breakdown is computed here and never recomputed afterward:
// subtotal is the sum of the item line totals, washingTotal applies
// washingFee once per washed line, and total adds the delivery fee.
// A fresh sale code is generated and the status history starts with a
// single Pending entry stamped at createdAt.
//
// Returns a validation error if the identifiers are invalid, the item list
// is empty, the address is blank, the payment method is unknown, or washing
// is requested without naming a washing station.
func NewOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	sellerID kernel.UUID,
	washerID *kernel.UUID,
	items []Item,
	address string,
	deliveryTime string,
	paymentMethod PaymentMethod,
	deliveryFee float64,
	washingFee float64,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		saleCode:      NewSaleCode(),
		createdAt:     createdAt,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setBuyerID(buyerID),
		order.setSellerID(sellerID),
		order.setItems(items),
		order.setAddress(address),
		order.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	if order.requiresWashing {
		if washerID == nil {
			return nil, ErrWasherIsRequired
		}
		if err := washerID.Validate(); err != nil {
			return nil, err
		}
		order.washerID = washerID
	}

	if deliveryFee < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("deliveryFee",
			fmt.Errorf("%v is not greater than or equal to 0", deliveryFee))
	}
	if washingFee < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("washingFee",
			fmt.Errorf("%v is not greater than or equal to 0", washingFee))
	}

	order.deliveryTime = deliveryTime
	order.deliveryFee = deliveryFee
	for _, item := range order.items {
		order.subtotal += item.LineTotal()
		if item.Washing() {
			order.washingTotal += washingFee
		}
	}
	order.total = order.subtotal + order.washingTotal + order.deliveryFee

	order.statusHistory = []StatusChange{{Status: Pending, At: createdAt}}

	return order, nil
}

// RestoreOrder reconstructs an order from persistence without regenerating
// derived values. The repository is responsible for passing back exactly what
// was stored; only structural validity is re-checked here.
func RestoreOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	sellerID kernel.UUID,
	washerID *kernel.UUID,
	driverID *kernel.UUID,
	items []Item,
	requiresWashing bool,
	address string,
	deliveryTime string,
	subtotal float64,
	washingTotal float64,
	deliveryFee float64,
	total float64,
	status Status,
	statusHistory []StatusChange,
	saleCode SaleCode,
	paymentMethod PaymentMethod,
	createdAt time.Time,
	version int,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		buyerID.Validate(),
		sellerID.Validate(),
		status.Validate(),
		saleCode.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrItemsAreRequired
	}
	if version <= 0 {
		return nil, errs.NewVersionIsInvalidError("version",
			fmt.Errorf("%d is not greater than 0", version))
	}

	return &Order{
		id:              id,
		buyerID:         buyerID,
		sellerID:        sellerID,
		washerID:        washerID,
		driverID:        driverID,
		items:           items,
		requiresWashing: requiresWashing,
		address:         address,
		deliveryTime:    deliveryTime,
		subtotal:        subtotal,
		washingTotal:    washingTotal,
		deliveryFee:     deliveryFee,
		total:           total,
		status:          status,
		statusHistory:   statusHistory,
		saleCode:        saleCode,
		paymentMethod:   paymentMethod,
		createdAt:       createdAt,
		version:         version,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through a constructor.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BuyerID returns the identifier of the buyer who placed the order.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// SellerID returns the identifier of the seller fulfilling the order.
func (o *Order) SellerID() kernel.UUID {
	return o.sellerID
}

// WasherID returns the washing station processing the order.
// Returns nil for orders that do not require washing.
func (o *Order) WasherID() *kernel.UUID {
	return o.washerID
}

// DriverID returns the assigned driver's ID.
// Returns nil until a driver has been dispatched.
func (o *Order) DriverID() *kernel.UUID {
	return o.driverID
}

// Items returns a copy of the order lines. Mutating the returned slice
// does not affect the order.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// RequiresWashing reports whether any item was ordered with washing.
func (o *Order) RequiresWashing() bool {
	return o.requiresWashing
}

// Address returns the delivery destination.
func (o *Order) Address() string {
	return o.address
}

// DeliveryTime returns the buyer's requested delivery slot.
func (o *Order) DeliveryTime() string {
	return o.deliveryTime
}

// Subtotal returns the sum of all item line totals.
func (o *Order) Subtotal() float64 {
	return o.subtotal
}

// WashingTotal returns the washing charge captured at creation.
func (o *Order) WashingTotal() float64 {
	return o.washingTotal
}

// DeliveryFee returns the delivery charge captured at creation.
func (o *Order) DeliveryFee() float64 {
	return o.deliveryFee
}

// Total returns the amount the buyer pays for the order.
func (o *Order) Total() float64 {
	return o.total
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// StatusHistory returns a copy of the append-only status history.
func (o *Order) StatusHistory() []StatusChange {
	history := make([]StatusChange, len(o.statusHistory))
	copy(history, o.statusHistory)
	return history
}

// SaleCode returns the order's tracking token.
func (o *Order) SaleCode() SaleCode {
	return o.saleCode
}

// PaymentMethod returns how the buyer pays for the order.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the optimistic-concurrency token. Repositories compare it
// on update and reject the write when another transition won the race.
func (o *Order) Version() int {
	return o.version
}

// DeliveredAt returns the time the order entered Delivered status.
// Returns the zero time if the order has not been delivered.
func (o *Order) DeliveredAt() time.Time {
	for _, change := range o.statusHistory {
		if change.Status == Delivered {
			return change.At
		}
	}
	return time.Time{}
}

// TransitionTo moves the order to the requested status on behalf of the acting role.
//
// The transition is validated in this sequence, and the order is left untouched
// when any step fails:
//  1. the order must not already be terminal (ErrTerminalState; a delivered
//     order only admits Refunded),
//  2. the requested status must be a direct successor of the current status in
//     the lifecycle graph, respecting the washing skip (ErrInvalidTransition),
//  3. the acting role must be authorized for that edge (ErrUnauthorizedRole),
//  4. entering Delivering requires an assigned driver (ErrDriverIsRequired),
//  5. a refund must fall within refundWindow of the delivery time
//     (ErrRefundWindowClosed).
//
// On success the status is updated and a history entry is appended. History
// timestamps never go backwards: if at precedes the last entry, the last
// entry's time is reused.
func (o *Order) TransitionTo(target Status, role kernel.Role, at time.Time, refundWindow time.Duration) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrTerminalState, o.status)
	}
	if o.status == Delivered && target != Refunded {
		return fmt.Errorf("%w: %s", ErrTerminalState, o.status)
	}

	if !o.status.CanTransition(target, o.requiresWashing) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, target)
	}

	if !o.status.RoleCanTransition(target, role) {
		return fmt.Errorf("%w: %s may not move %s -> %s", ErrUnauthorizedRole, role, o.status, target)
	}

	if target == Delivering && o.driverID == nil {
		return ErrDriverIsRequired
	}

	if o.status == Delivered && target == Refunded {
		if at.Sub(o.DeliveredAt()) > refundWindow {
			return fmt.Errorf("%w: delivered at %s", ErrRefundWindowClosed, o.DeliveredAt().Format(time.RFC3339))
		}
	}

	if last := o.statusHistory[len(o.statusHistory)-1].At; at.Before(last) {
		at = last
	}

	o.status = target
	o.statusHistory = append(o.statusHistory, StatusChange{Status: target, At: at})
	return nil
}

// AssignDriver records the driver dispatched for the order.
// A driver may only be assigned once the order is ready for delivery;
// reassignment while still ready is allowed.
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if o.status != ReadyForDelivery {
		return fmt.Errorf("%w: %s is not a valid status to assign a driver", ErrInvalidTransition, o.status)
	}

	o.driverID = &driverID
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBuyerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.buyerID = id
	return nil
}

func (o *Order) setSellerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.sellerID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if item.Washing() {
			o.requiresWashing = true
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrAddressIsRequired
	}
	o.address = address
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}
