package order_test

import (
	"testing"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/order"
	"qatmarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("should create valid item", func(t *testing.T) {
		productID := kernel.NewUUID()

		item, err := order.NewItem(productID, 250, 3, true)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.True(t, item.ProductID().IsEqual(productID))
		assert.InDelta(t, 250, item.UnitPrice(), 0.001)
		assert.Equal(t, 3, item.Quantity())
		assert.True(t, item.Washing())
	})

	t.Run("should allow zero unit price", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), 0, 1, false)

		require.NoError(t, err)
		assert.InDelta(t, 0, item.LineTotal(), 0.001)
	})

	t.Run("should fail with invalid product UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := order.NewItem(invalidID, 100, 1, false)

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should fail with negative unit price", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), -1, 1, false)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "unitPrice")
	})

	t.Run("should fail with zero quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), 100, 0, false)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "quantity")
	})

	t.Run("should fail with negative quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), 100, -2, false)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestItemValidate(t *testing.T) {
	t.Run("should fail for item not created via constructor", func(t *testing.T) {
		var item order.Item

		err := item.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrItemIsNotConstructed)
	})
}

func TestItemLineTotal(t *testing.T) {
	t.Run("should multiply unit price by quantity", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), 150.5, 4, false)

		require.NoError(t, err)
		assert.InDelta(t, 602, item.LineTotal(), 0.001)
	})
}
