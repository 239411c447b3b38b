package order_test

import (
	"fmt"
	"testing"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/order"
	"qatmarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allValidStatuses() []order.Status {
	return []order.Status{
		order.Pending,
		order.Confirmed,
		order.Preparing,
		order.Washing,
		order.ReadyForDelivery,
		order.Delivering,
		order.Delivered,
		order.Cancelled,
		order.Refunded,
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		for _, status := range allValidStatuses() {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject out-of-range status", func(t *testing.T) {
		err := order.Status(99).Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return wire names", func(t *testing.T) {
		cases := map[order.Status]string{
			order.Unknown:          "unknown",
			order.Pending:          "pending",
			order.Confirmed:        "confirmed",
			order.Preparing:        "preparing",
			order.Washing:          "washing",
			order.ReadyForDelivery: "ready_for_delivery",
			order.Delivering:       "delivering",
			order.Delivered:        "delivered",
			order.Cancelled:        "cancelled",
			order.Refunded:         "refunded",
		}

		for status, expected := range cases {
			assert.Equal(t, expected, status.String())
		}
	})

	t.Run("should return unknown for out-of-range status", func(t *testing.T) {
		assert.Equal(t, "unknown", order.Status(99).String())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse every valid status", func(t *testing.T) {
		for _, status := range allValidStatuses() {
			parsed, err := order.StatusFromString(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unknown string", func(t *testing.T) {
		parsed, err := order.StatusFromString("teleported")

		require.Error(t, err)
		assert.Equal(t, order.Unknown, parsed)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject the unknown name itself", func(t *testing.T) {
		parsed, err := order.StatusFromString("unknown")

		require.Error(t, err)
		assert.Equal(t, order.Unknown, parsed)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("should be terminal only for cancelled and refunded", func(t *testing.T) {
		assert.True(t, order.Cancelled.IsTerminal())
		assert.True(t, order.Refunded.IsTerminal())

		assert.False(t, order.Pending.IsTerminal())
		assert.False(t, order.Delivering.IsTerminal())
		assert.False(t, order.Delivered.IsTerminal())
	})
}

func TestStatus_IsSettled(t *testing.T) {
	t.Run("should be settled for delivered and terminal statuses", func(t *testing.T) {
		assert.True(t, order.Delivered.IsSettled())
		assert.True(t, order.Cancelled.IsSettled())
		assert.True(t, order.Refunded.IsSettled())

		assert.False(t, order.Pending.IsSettled())
		assert.False(t, order.ReadyForDelivery.IsSettled())
	})
}

func TestStatus_CanTransition(t *testing.T) {
	t.Run("should allow forward edges of the lifecycle graph", func(t *testing.T) {
		assert.True(t, order.Pending.CanTransition(order.Confirmed, false))
		assert.True(t, order.Confirmed.CanTransition(order.Preparing, false))
		assert.True(t, order.ReadyForDelivery.CanTransition(order.Delivering, false))
		assert.True(t, order.Delivering.CanTransition(order.Delivered, false))
		assert.True(t, order.Delivered.CanTransition(order.Refunded, false))
	})

	t.Run("should route preparing through washing only when required", func(t *testing.T) {
		assert.True(t, order.Preparing.CanTransition(order.Washing, true))
		assert.False(t, order.Preparing.CanTransition(order.ReadyForDelivery, true))

		assert.True(t, order.Preparing.CanTransition(order.ReadyForDelivery, false))
		assert.False(t, order.Preparing.CanTransition(order.Washing, false))

		assert.True(t, order.Washing.CanTransition(order.ReadyForDelivery, true))
	})

	t.Run("should allow cancellation before delivering", func(t *testing.T) {
		cancellable := []order.Status{
			order.Pending,
			order.Confirmed,
			order.Preparing,
			order.Washing,
			order.ReadyForDelivery,
		}
		for _, status := range cancellable {
			assert.True(t, status.CanTransition(order.Cancelled, true),
				"%s should be cancellable", status)
		}

		assert.False(t, order.Delivering.CanTransition(order.Cancelled, false))
		assert.False(t, order.Delivered.CanTransition(order.Cancelled, false))
	})

	t.Run("should reject backward and skipping edges", func(t *testing.T) {
		assert.False(t, order.Confirmed.CanTransition(order.Pending, false))
		assert.False(t, order.Pending.CanTransition(order.Delivered, false))
		assert.False(t, order.Delivering.CanTransition(order.ReadyForDelivery, false))
	})

	t.Run("should reject any edge out of terminal statuses", func(t *testing.T) {
		for _, target := range allValidStatuses() {
			assert.False(t, order.Cancelled.CanTransition(target, false))
			assert.False(t, order.Refunded.CanTransition(target, false))
		}
	})
}

func TestStatus_RoleCanTransition(t *testing.T) {
	t.Run("should authorize the roles of each edge", func(t *testing.T) {
		assert.True(t, order.Pending.RoleCanTransition(order.Confirmed, kernel.RoleSeller))
		assert.True(t, order.Pending.RoleCanTransition(order.Confirmed, kernel.RoleAdmin))

		assert.True(t, order.Confirmed.RoleCanTransition(order.Preparing, kernel.RoleSeller))
		assert.True(t, order.Preparing.RoleCanTransition(order.Washing, kernel.RoleWasher))
		assert.True(t, order.Washing.RoleCanTransition(order.ReadyForDelivery, kernel.RoleWasher))
		assert.True(t, order.ReadyForDelivery.RoleCanTransition(order.Delivering, kernel.RoleDriver))
		assert.True(t, order.Delivering.RoleCanTransition(order.Delivered, kernel.RoleDriver))
		assert.True(t, order.Delivered.RoleCanTransition(order.Refunded, kernel.RoleAdmin))
	})

	t.Run("should reject roles not on the edge", func(t *testing.T) {
		assert.False(t, order.Pending.RoleCanTransition(order.Confirmed, kernel.RoleBuyer))
		assert.False(t, order.Confirmed.RoleCanTransition(order.Preparing, kernel.RoleBuyer))
		assert.False(t, order.Preparing.RoleCanTransition(order.Washing, kernel.RoleSeller))
		assert.False(t, order.ReadyForDelivery.RoleCanTransition(order.Delivering, kernel.RoleWasher))
		assert.False(t, order.Delivered.RoleCanTransition(order.Refunded, kernel.RoleBuyer))
	})

	t.Run("should restrict cancellation to buyer and admin", func(t *testing.T) {
		assert.True(t, order.Pending.RoleCanTransition(order.Cancelled, kernel.RoleBuyer))
		assert.True(t, order.Washing.RoleCanTransition(order.Cancelled, kernel.RoleAdmin))

		assert.False(t, order.Pending.RoleCanTransition(order.Cancelled, kernel.RoleSeller))
		assert.False(t, order.ReadyForDelivery.RoleCanTransition(order.Cancelled, kernel.RoleDriver))
	})

	t.Run("should authorize no role for edges absent from the graph", func(t *testing.T) {
		assert.False(t, order.Pending.RoleCanTransition(order.Delivered, kernel.RoleAdmin))
		assert.False(t, order.Cancelled.RoleCanTransition(order.Pending, kernel.RoleAdmin))
	})
}
