package services

import (
	"fmt"
	"time"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/ledger"
	"qatmarket/internal/core/domain/model/order"
	"qatmarket/internal/pkg/errs"
)

// PaymentCalculator is a domain service that computes the monetary effect of
// an order status transition as a set of ledger entries. The calculator is
// pure: it never touches storage, so the caller can apply the entries in the
// same transaction as the status change, making the two one atomic unit.
//
// Effects per edge:
//   - Pending -> Confirmed, balance payment: debit the buyer the order total
//   - * -> Delivered: credit the seller the total minus the platform fee,
//     and credit the washing station the order's washing charge if any
//   - * -> Cancelled: refund the buyer whatever was debited for the order
//   - Delivered -> Refunded: reverse every prior entry of the order exactly
//
// The platform fee percentage is a policy parameter, not a constant.
type PaymentCalculator struct {
	platformFeePercent float64
}

// NewPaymentCalculator creates a calculator with the given platform fee
// percentage on seller payouts. The percentage must lie in [0, 100).
func NewPaymentCalculator(platformFeePercent float64) (PaymentCalculator, error) {
	if platformFeePercent < 0 || platformFeePercent >= 100 {
		return PaymentCalculator{}, errs.NewValueIsOutOfRangeError(
			"platformFeePercent", platformFeePercent, 0, 100)
	}
	return PaymentCalculator{platformFeePercent: platformFeePercent}, nil
}

// EntriesForTransition returns the ledger entries the transition from -> to
// requires for the given order. prior must hold every ledger entry already
// recorded for this order; it drives cancellation refunds and the full
// reversal on refund. Transitions with no monetary effect return an empty
// slice.
func (c PaymentCalculator) EntriesForTransition(
	o *order.Order,
	from, to order.Status,
	prior []*ledger.Entry,
	at time.Time,
) ([]*ledger.Entry, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	orderID := o.ID()

	switch {
	case from == order.Pending && to == order.Confirmed && o.PaymentMethod().IsBalance():
		entry, err := ledger.NewEntry(
			kernel.NewUUID(), o.BuyerID(), -o.Total(), ledger.ReasonPurchase, &orderID, at)
		if err != nil {
			return nil, err
		}
		return []*ledger.Entry{entry}, nil

	case to == order.Delivered:
		fee := o.Total() * c.platformFeePercent / 100
		entries := make([]*ledger.Entry, 0, 2)

		payout, err := ledger.NewEntry(
			kernel.NewUUID(), o.SellerID(), o.Total()-fee, ledger.ReasonSalePayout, &orderID, at)
		if err != nil {
			return nil, err
		}
		entries = append(entries, payout)

		if o.RequiresWashing() && o.WashingTotal() > 0 {
			washerID := o.WasherID()
			if washerID == nil {
				return nil, order.ErrWasherIsRequired
			}
			washing, washErr := ledger.NewEntry(
				kernel.NewUUID(), *washerID, o.WashingTotal(), ledger.ReasonWashingPayout, &orderID, at)
			if washErr != nil {
				return nil, washErr
			}
			entries = append(entries, washing)
		}
		return entries, nil

	case to == order.Cancelled:
		return c.refundDebits(o, prior, at)

	case from == order.Delivered && to == order.Refunded:
		return c.reverseAll(prior, at)
	}

	return nil, nil
}

// refundDebits credits the buyer back everything that was debited for the
// order. Orders cancelled before payment produce no entries.
func (c PaymentCalculator) refundDebits(
	o *order.Order,
	prior []*ledger.Entry,
	at time.Time,
) ([]*ledger.Entry, error) {
	var debited float64
	for _, entry := range prior {
		if entry.UserID().IsEqual(o.BuyerID()) && entry.Delta() < 0 {
			debited += -entry.Delta()
		}
	}
	if debited == 0 {
		return nil, nil
	}

	orderID := o.ID()
	refund, err := ledger.NewEntry(
		kernel.NewUUID(), o.BuyerID(), debited, ledger.ReasonPurchaseRefund, &orderID, at)
	if err != nil {
		return nil, err
	}
	return []*ledger.Entry{refund}, nil
}

// reverseAll produces one compensating entry per prior entry so the net
// effect of the order on every party returns to zero.
func (c PaymentCalculator) reverseAll(prior []*ledger.Entry, at time.Time) ([]*ledger.Entry, error) {
	entries := make([]*ledger.Entry, 0, len(prior))
	for _, entry := range prior {
		reason := ledger.ReasonPayoutReversal
		if entry.Delta() < 0 {
			// The buyer's debit reverses into a refund credit.
			reason = ledger.ReasonPurchaseRefund
		}

		compensation, err := ledger.NewEntry(
			kernel.NewUUID(), entry.UserID(), -entry.Delta(), reason, entry.OrderID(), at)
		if err != nil {
			return nil, fmt.Errorf("compensating entry for %s: %w", entry.ID(), err)
		}
		entries = append(entries, compensation)
	}
	return entries, nil
}
