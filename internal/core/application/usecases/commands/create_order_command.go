package commands

import (
	"errors"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/order"
	"qatmarket/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreEmpty   = errors.New("at least one item is required")
	ErrAddressIsEmpty  = errors.New("address is required")
	ErrWasherIsMissing = errors.New("washer is required when any item needs washing")
)

// CreateOrderCommand represents a request to place a new order.
// Encapsulates the parties, the item list, the delivery details, and the
// payment method chosen by the buyer.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(
//	    orderID, buyerID, sellerID, nil, items,
//	    "Sana'a, Hadda St", "evening", order.PaymentBalance)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, calculator, fanout, dispatcher, policy)
//	placed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
//	fmt.Printf("Order %s placed with sale code %s", orderID, placed.SaleCode())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	buyerID       kernel.UUID
	sellerID      kernel.UUID
	washerID      *kernel.UUID
	items         []order.Item
	address       string
	deliveryTime  string
	paymentMethod order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that the identifiers are valid, the item list is not empty, the
// address is not blank, the payment method is known, and a washer is named
// when any item needs washing. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	buyerID kernel.UUID,
	sellerID kernel.UUID,
	washerID *kernel.UUID,
	items []order.Item,
	address string,
	deliveryTime string,
	paymentMethod order.PaymentMethod,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		deliveryTime: deliveryTime,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setBuyerID(buyerID),
		orderCommand.setSellerID(sellerID),
		orderCommand.setItems(items),
		orderCommand.setAddress(address),
		orderCommand.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	if err := orderCommand.setWasherID(washerID); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BuyerID returns the buyer placing the order.
func (c CreateOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// SellerID returns the seller the order is placed with.
func (c CreateOrderCommand) SellerID() kernel.UUID {
	return c.sellerID
}

// WasherID returns the washing station, or nil when no item needs washing.
func (c CreateOrderCommand) WasherID() *kernel.UUID {
	return c.washerID
}

// Items returns the order lines.
func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

// Address returns the delivery address.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// DeliveryTime returns the requested delivery window. May be empty.
func (c CreateOrderCommand) DeliveryTime() string {
	return c.deliveryTime
}

// PaymentMethod returns how the buyer pays.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	return nil
}

func (c *CreateOrderCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}

	c.sellerID = sellerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreEmpty
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = make([]order.Item, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsEmpty
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.paymentMethod = method
	return nil
}

func (c *CreateOrderCommand) setWasherID(washerID *kernel.UUID) error {
	washingRequested := false
	for _, item := range c.items {
		if item.Washing() {
			washingRequested = true
			break
		}
	}

	if !washingRequested {
		return nil
	}
	if washerID == nil {
		return ErrWasherIsMissing
	}
	if err := washerID.Validate(); err != nil {
		return err
	}

	c.washerID = washerID
	return nil
}
