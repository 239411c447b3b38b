package commands_test

import (
	"testing"

	"qatmarket/internal/core/application/usecases/commands"
	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	buyerID := kernel.NewUUID()
	sellerID := kernel.NewUUID()
	washerID := kernel.NewUUID()
	items := testItems(t)

	cmd, err := commands.NewCreateOrderCommand(
		id, buyerID, sellerID, &washerID, items, "Hadda St", "evening", order.PaymentMethodBalance)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, buyerID, cmd.BuyerID())
	assert.Equal(t, sellerID, cmd.SellerID())
	require.NotNil(t, cmd.WasherID())
	assert.Equal(t, washerID, *cmd.WasherID())
	assert.Equal(t, items, cmd.Items())
	assert.Equal(t, "Hadda St", cmd.Address())
	assert.Equal(t, "evening", cmd.DeliveryTime())
	assert.Equal(t, order.PaymentMethodBalance, cmd.PaymentMethod())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	washerID := kernel.NewUUID()
	_, err := commands.NewCreateOrderCommand(
		kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), &washerID,
		testItems(t), "Hadda St", "", order.PaymentMethodBalance)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_EmptyItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil,
		nil, "Hadda St", "", order.PaymentMethodBalance)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrItemsAreEmpty)
}

func TestNewCreateOrderCommand_EmptyAddress(t *testing.T) {
	washerID := kernel.NewUUID()
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), &washerID,
		testItems(t), "", "", order.PaymentMethodBalance)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrAddressIsEmpty)
}

func TestNewCreateOrderCommand_WasherRequiredForWashedItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil,
		testItems(t), "Hadda St", "", order.PaymentMethodBalance)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrWasherIsMissing)
}

func TestNewCreateOrderCommand_NoWasherNeededForPlainItems(t *testing.T) {
	plain, err := order.NewItem(kernel.NewUUID(), 50, 3, false)
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil,
		[]order.Item{plain}, "Hadda St", "", order.PaymentMethodJib)
	require.NoError(t, err)
	assert.Nil(t, cmd.WasherID())
}

func TestNewCreateOrderCommand_UnknownPaymentMethod(t *testing.T) {
	washerID := kernel.NewUUID()
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), &washerID,
		testItems(t), "Hadda St", "", order.PaymentMethodUnknown)
	require.Error(t, err)
}
