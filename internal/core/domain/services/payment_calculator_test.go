package services_test

import (
	"testing"
	"time"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/ledger"
	"qatmarket/internal/core/domain/model/order"
	"qatmarket/internal/core/domain/services"
	"qatmarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRefundWindow = 72 * time.Hour

func newItem(t *testing.T, unitPrice float64, quantity int, washing bool) order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), unitPrice, quantity, washing)
	require.NoError(t, err)
	return item
}

// newWashedOrder builds an order totalling 610: subtotal 500, washing 100, delivery 10.
func newWashedOrder(t *testing.T, paymentMethod order.PaymentMethod) *order.Order {
	t.Helper()
	washerID := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), &washerID,
		[]order.Item{newItem(t, 200, 2, false), newItem(t, 100, 1, true)},
		"Hadda St", "evening", paymentMethod,
		10, 100, time.Now(),
	)
	require.NoError(t, err)
	return o
}

func newPlainOrder(t *testing.T, paymentMethod order.PaymentMethod) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil,
		[]order.Item{newItem(t, 200, 2, false)},
		"Hadda St", "evening", paymentMethod,
		10, 100, time.Now(),
	)
	require.NoError(t, err)
	return o
}

func newEntry(t *testing.T, userID kernel.UUID, delta float64, reason ledger.Reason, orderID kernel.UUID) *ledger.Entry {
	t.Helper()
	entry, err := ledger.NewEntry(kernel.NewUUID(), userID, delta, reason, &orderID, time.Now())
	require.NoError(t, err)
	return entry
}

func TestNewPaymentCalculator(t *testing.T) {
	t.Run("should create calculator with valid fee percent", func(t *testing.T) {
		_, err := services.NewPaymentCalculator(5)

		require.NoError(t, err)
	})

	t.Run("should allow zero fee percent", func(t *testing.T) {
		_, err := services.NewPaymentCalculator(0)

		require.NoError(t, err)
	})

	t.Run("should reject negative fee percent", func(t *testing.T) {
		_, err := services.NewPaymentCalculator(-1)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject fee percent of one hundred", func(t *testing.T) {
		_, err := services.NewPaymentCalculator(100)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestPaymentCalculatorEntriesForTransition(t *testing.T) {
	now := time.Now()
	calculator, err := services.NewPaymentCalculator(5)
	require.NoError(t, err)

	t.Run("should debit buyer on balance-paid confirmation", func(t *testing.T) {
		o := newWashedOrder(t, order.PaymentMethodBalance)

		entries, err := calculator.EntriesForTransition(o, order.Pending, order.Confirmed, nil, now)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].UserID().IsEqual(o.BuyerID()))
		assert.InDelta(t, -610, entries[0].Delta(), 0.001)
		assert.Equal(t, ledger.ReasonPurchase, entries[0].Reason())
		require.NotNil(t, entries[0].OrderID())
		assert.True(t, entries[0].OrderID().IsEqual(o.ID()))
	})

	t.Run("should produce no entries for externally paid confirmation", func(t *testing.T) {
		o := newWashedOrder(t, order.PaymentMethodJib)

		entries, err := calculator.EntriesForTransition(o, order.Pending, order.Confirmed, nil, now)

		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("should pay out seller and washer on delivery", func(t *testing.T) {
		o := newWashedOrder(t, order.PaymentMethodBalance)

		entries, err := calculator.EntriesForTransition(o, order.Delivering, order.Delivered, nil, now)

		require.NoError(t, err)
		require.Len(t, entries, 2)

		payout := entries[0]
		assert.True(t, payout.UserID().IsEqual(o.SellerID()))
		assert.InDelta(t, 579.5, payout.Delta(), 0.001) // 610 minus 5% fee
		assert.Equal(t, ledger.ReasonSalePayout, payout.Reason())

		washing := entries[1]
		assert.True(t, washing.UserID().IsEqual(*o.WasherID()))
		assert.InDelta(t, 100, washing.Delta(), 0.001)
		assert.Equal(t, ledger.ReasonWashingPayout, washing.Reason())
	})

	t.Run("should pay out only seller when no washing", func(t *testing.T) {
		o := newPlainOrder(t, order.PaymentMethodBalance)

		entries, err := calculator.EntriesForTransition(o, order.Delivering, order.Delivered, nil, now)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, ledger.ReasonSalePayout, entries[0].Reason())
		assert.InDelta(t, 389.5, entries[0].Delta(), 0.001) // 410 minus 5% fee
	})

	t.Run("should refund buyer debits on cancellation", func(t *testing.T) {
		o := newWashedOrder(t, order.PaymentMethodBalance)
		prior := []*ledger.Entry{
			newEntry(t, o.BuyerID(), -610, ledger.ReasonPurchase, o.ID()),
		}

		entries, err := calculator.EntriesForTransition(o, order.Confirmed, order.Cancelled, prior, now)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].UserID().IsEqual(o.BuyerID()))
		assert.InDelta(t, 610, entries[0].Delta(), 0.001)
		assert.Equal(t, ledger.ReasonPurchaseRefund, entries[0].Reason())
	})

	t.Run("should produce no refund when nothing was debited", func(t *testing.T) {
		o := newWashedOrder(t, order.PaymentMethodJib)

		entries, err := calculator.EntriesForTransition(o, order.Pending, order.Cancelled, nil, now)

		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("should reverse every prior entry on refund", func(t *testing.T) {
		o := newWashedOrder(t, order.PaymentMethodBalance)
		prior := []*ledger.Entry{
			newEntry(t, o.BuyerID(), -610, ledger.ReasonPurchase, o.ID()),
			newEntry(t, o.SellerID(), 579.5, ledger.ReasonSalePayout, o.ID()),
			newEntry(t, *o.WasherID(), 100, ledger.ReasonWashingPayout, o.ID()),
		}

		entries, err := calculator.EntriesForTransition(o, order.Delivered, order.Refunded, prior, now)

		require.NoError(t, err)
		require.Len(t, entries, 3)

		assert.True(t, entries[0].UserID().IsEqual(o.BuyerID()))
		assert.InDelta(t, 610, entries[0].Delta(), 0.001)
		assert.Equal(t, ledger.ReasonPurchaseRefund, entries[0].Reason())

		assert.True(t, entries[1].UserID().IsEqual(o.SellerID()))
		assert.InDelta(t, -579.5, entries[1].Delta(), 0.001)
		assert.Equal(t, ledger.ReasonPayoutReversal, entries[1].Reason())

		assert.True(t, entries[2].UserID().IsEqual(*o.WasherID()))
		assert.InDelta(t, -100, entries[2].Delta(), 0.001)
		assert.Equal(t, ledger.ReasonPayoutReversal, entries[2].Reason())
	})

	t.Run("should produce no entries for intermediate transitions", func(t *testing.T) {
		o := newWashedOrder(t, order.PaymentMethodBalance)

		for _, transition := range [][2]order.Status{
			{order.Confirmed, order.Preparing},
			{order.Preparing, order.Washing},
			{order.Washing, order.ReadyForDelivery},
			{order.ReadyForDelivery, order.Delivering},
		} {
			entries, err := calculator.EntriesForTransition(o, transition[0], transition[1], nil, now)

			require.NoError(t, err)
			assert.Empty(t, entries, "%s -> %s should have no monetary effect", transition[0], transition[1])
		}
	})

	t.Run("should fail for order not created via constructor", func(t *testing.T) {
		var o order.Order

		_, err := calculator.EntriesForTransition(&o, order.Pending, order.Confirmed, nil, now)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}
