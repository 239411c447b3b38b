package commands_test

import (
	"testing"
	"time"

	"qatmarket/internal/core/application/usecases/commands"
	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/order"
	"qatmarket/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

// testItems returns one plain line (200 x 2) and one washed line (100 x 1):
// subtotal 500, washing total 100 with the test policy's washing fee.
func testItems(t *testing.T) []order.Item {
	t.Helper()

	plain, err := order.NewItem(kernel.NewUUID(), 200, 2, false)
	require.NoError(t, err)
	washed, err := order.NewItem(kernel.NewUUID(), 100, 1, true)
	require.NoError(t, err)

	return []order.Item{plain, washed}
}

func testPolicy(t *testing.T) commands.Policy {
	t.Helper()

	policy, err := commands.NewPolicy(10, 100, 72*time.Hour, 10, 50, 5000, 2)
	require.NoError(t, err)
	return policy
}

func testCalculator(t *testing.T) services.PaymentCalculator {
	t.Helper()

	calculator, err := services.NewPaymentCalculator(5)
	require.NoError(t, err)
	return calculator
}

func testFanout(t *testing.T, adminID kernel.UUID) services.NotificationFanout {
	t.Helper()

	fanout, err := services.NewNotificationFanout(adminID)
	require.NoError(t, err)
	return fanout
}

// placeOrder builds a fresh order with the test items and the test policy's
// fees. Total is 610: subtotal 500, washing 100, delivery 10.
func placeOrder(t *testing.T, method order.PaymentMethod) *order.Order {
	t.Helper()

	washerID := kernel.NewUUID()
	placed, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), &washerID,
		testItems(t), "Sana'a, Hadda St", "evening", method, 10, 100,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return placed
}

// orderInStatus walks a fresh order along the lifecycle to the wanted status.
func orderInStatus(t *testing.T, method order.PaymentMethod, status order.Status) *order.Order {
	t.Helper()

	placed := placeOrder(t, method)
	now := time.Now().UTC()

	steps := []struct {
		target order.Status
		role   kernel.Role
	}{
		{order.Confirmed, kernel.RoleSeller},
		{order.Preparing, kernel.RoleSeller},
		{order.Washing, kernel.RoleWasher},
		{order.ReadyForDelivery, kernel.RoleWasher},
		{order.Delivering, kernel.RoleDriver},
		{order.Delivered, kernel.RoleDriver},
	}
	for _, step := range steps {
		if placed.Status() == status {
			return placed
		}
		if step.target == order.Delivering {
			require.NoError(t, placed.AssignDriver(kernel.NewUUID()))
		}
		require.NoError(t, placed.TransitionTo(step.target, step.role, now, 72*time.Hour))
	}

	require.Equal(t, status, placed.Status())
	return placed
}
