package commands

import (
	"time"

	"qatmarket/internal/pkg/errs"
)

// Policy carries the marketplace pricing and limit parameters the command
// handlers apply. Values come from configuration; the zero value is not
// usable, construct through NewPolicy.
type Policy struct {
	// DeliveryFee is the flat fee added to every order total.
	DeliveryFee float64

	// WashingFee is charged once per order line that needs washing.
	WashingFee float64

	// RefundWindow is how long after delivery a refund stays possible.
	RefundWindow time.Duration

	// MinTopUpAmount is the smallest accepted wallet top-up.
	MinTopUpAmount float64

	// MinWithdrawalAmount and MaxWithdrawalAmount bound a single withdrawal.
	MinWithdrawalAmount float64
	MaxWithdrawalAmount float64

	// WithdrawalFeePercent is the fee charged on top of a withdrawal,
	// as a percentage of the withdrawn amount.
	WithdrawalFeePercent float64
}

// NewPolicy validates and returns the handler policy parameters.
func NewPolicy(
	deliveryFee float64,
	washingFee float64,
	refundWindow time.Duration,
	minTopUpAmount float64,
	minWithdrawalAmount float64,
	maxWithdrawalAmount float64,
	withdrawalFeePercent float64,
) (Policy, error) {
	if deliveryFee < 0 {
		return Policy{}, errs.NewValueIsOutOfRangeError("deliveryFee", deliveryFee, 0, "unbounded")
	}
	if washingFee < 0 {
		return Policy{}, errs.NewValueIsOutOfRangeError("washingFee", washingFee, 0, "unbounded")
	}
	if refundWindow <= 0 {
		return Policy{}, errs.NewValueIsRequiredError("refundWindow")
	}
	if minTopUpAmount <= 0 {
		return Policy{}, errs.NewValueIsRequiredError("minTopUpAmount")
	}
	if minWithdrawalAmount <= 0 || maxWithdrawalAmount < minWithdrawalAmount {
		return Policy{}, errs.NewValueIsOutOfRangeError(
			"maxWithdrawalAmount", maxWithdrawalAmount, minWithdrawalAmount, "unbounded")
	}
	if withdrawalFeePercent < 0 || withdrawalFeePercent >= 100 {
		return Policy{}, errs.NewValueIsOutOfRangeError(
			"withdrawalFeePercent", withdrawalFeePercent, 0, 100)
	}

	return Policy{
		DeliveryFee:          deliveryFee,
		WashingFee:           washingFee,
		RefundWindow:         refundWindow,
		MinTopUpAmount:       minTopUpAmount,
		MinWithdrawalAmount:  minWithdrawalAmount,
		MaxWithdrawalAmount:  maxWithdrawalAmount,
		WithdrawalFeePercent: withdrawalFeePercent,
	}, nil
}

// WithdrawalFee computes the fee charged for withdrawing the given amount.
func (p Policy) WithdrawalFee(amount float64) float64 {
	return amount * p.WithdrawalFeePercent / 100
}
