package order

import (
	"errors"
	"fmt"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created
	// through the NewItem factory method.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// Item is a single order line: a product, the unit price it was sold at,
// the quantity, and whether the buyer asked for it to be washed.
//
// Items are value objects; the sequence of items is fixed when the order
// is created and never changes afterward. The unit price is captured at
// purchase time so later product price changes do not affect the order.
type Item struct {
	productID kernel.UUID
	unitPrice float64
	quantity  int
	washing   bool

	isConstructed bool
}

// NewItem creates a validated order line.
// Unit price must not be negative and quantity must be positive.
func NewItem(productID kernel.UUID, unitPrice float64, quantity int, washing bool) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if unitPrice < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%v is not greater than or equal to 0", unitPrice))
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Item{
		productID:     productID,
		unitPrice:     unitPrice,
		quantity:      quantity,
		washing:       washing,
		isConstructed: true,
	}, nil
}

// Validate ensures the Item instance was properly constructed through NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ProductID returns the identifier of the purchased product.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// UnitPrice returns the price per unit captured at purchase time.
func (i Item) UnitPrice() float64 {
	return i.unitPrice
}

// Quantity returns the number of units purchased.
func (i Item) Quantity() int {
	return i.quantity
}

// Washing reports whether the buyer requested washing for this line.
func (i Item) Washing() bool {
	return i.washing
}

// LineTotal returns unit price multiplied by quantity.
func (i Item) LineTotal() float64 {
	return i.unitPrice * float64(i.quantity)
}
