package order

import (
	"fmt"

	"qatmarket/internal/pkg/errs"
)

// PaymentMethod is the closed set of ways a buyer can pay for an order.
// Balance settles against the in-app wallet at confirmation time; the named
// wallet channels are settled externally and only confirm the order once the
// seller or admin acknowledges the payment.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined payment method.
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentMethodBalance pays from the buyer's in-app wallet balance.
	PaymentMethodBalance

	// PaymentMethodJib pays through the Jib mobile wallet.
	PaymentMethodJib

	// PaymentMethodJawaly pays through the Jawaly mobile wallet.
	PaymentMethodJawaly

	// PaymentMethodMobiMoney pays through the Mobile Money wallet.
	PaymentMethodMobiMoney

	// PaymentMethodShamelMoney pays through the Shamel Money wallet.
	PaymentMethodShamelMoney

	// PaymentMethodFuloos pays through the Fuloosak wallet.
	PaymentMethodFuloos
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown:     "unknown",
		PaymentMethodBalance:     "balance",
		PaymentMethodJib:         "jib",
		PaymentMethodJawaly:      "jawaly",
		PaymentMethodMobiMoney:   "mobi",
		PaymentMethodShamelMoney: "shamel",
		PaymentMethodFuloos:      "fuloos",
	}
}

func getValidPaymentMethodStrings() map[PaymentMethod]string {
	strings := getPaymentMethodStrings()
	delete(strings, PaymentMethodUnknown)
	return strings
}

// PaymentMethodFromString parses a payment method from its wire representation.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getValidPaymentMethodStrings() {
		if str == s {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks if the PaymentMethod value is one of the known channels.
func (m PaymentMethod) Validate() error {
	if _, ok := getValidPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the wire name of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// IsBalance reports whether the method settles against the in-app wallet.
func (m PaymentMethod) IsBalance() bool {
	return m == PaymentMethodBalance
}
