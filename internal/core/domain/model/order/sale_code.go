package order

import (
	"crypto/rand"
	"fmt"

	"qatmarket/internal/pkg/errs"
)

// saleCodeAlphabet is the character set of sale codes. Restricted to
// uppercase letters and digits so codes can be read out over the phone.
const saleCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// saleCodeLength is the fixed length of every sale code.
const saleCodeLength = 8

// SaleCode is the human-readable tracking token generated once per order.
// All parties (buyer, seller, washer, driver) reference an order by its
// sale code, so the code is immutable for the lifetime of the order.
//
// The zero value is invalid; use NewSaleCode or SaleCodeFromString.
type SaleCode struct {
	value string
}

// NewSaleCode generates a random sale code of eight uppercase letters and digits.
func NewSaleCode() SaleCode {
	buf := make([]byte, saleCodeLength)
	_, _ = rand.Read(buf)
	for i := range buf {
		buf[i] = saleCodeAlphabet[int(buf[i])%len(saleCodeAlphabet)]
	}
	return SaleCode{value: string(buf)}
}

// SaleCodeFromString reconstructs a sale code from persistence.
// Returns an error if the string is not exactly eight characters from
// the sale-code alphabet.
func SaleCodeFromString(s string) (SaleCode, error) {
	if len(s) != saleCodeLength {
		return SaleCode{}, errs.NewValueIsInvalidErrorWithCause("saleCode",
			fmt.Errorf("%q is not %d characters long", s, saleCodeLength))
	}
	for _, c := range s {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return SaleCode{}, errs.NewValueIsInvalidErrorWithCause("saleCode",
				fmt.Errorf("%q contains an invalid character", s))
		}
	}
	return SaleCode{value: s}, nil
}

// String returns the code text.
func (c SaleCode) String() string {
	return c.value
}

// Validate checks that the sale code was constructed and is non-empty.
func (c SaleCode) Validate() error {
	if c.value == "" {
		return errs.NewValueIsRequiredError("saleCode")
	}
	return nil
}

// IsEqual compares two sale codes by value.
func (c SaleCode) IsEqual(other SaleCode) bool {
	return c.value == other.value
}
