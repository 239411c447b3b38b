package commands_test

import (
	"testing"

	"qatmarket/internal/core/application/usecases/commands"
	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeOrderStatusCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewChangeOrderStatusCommand(id, order.Preparing, kernel.RoleSeller)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, order.Preparing, cmd.Target())
	assert.Equal(t, kernel.RoleSeller, cmd.Role())
}

func TestNewChangeOrderStatusCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand(kernel.UUID{}, order.Preparing, kernel.RoleSeller)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewChangeOrderStatusCommand_UnknownStatus(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), order.Unknown, kernel.RoleSeller)
	require.Error(t, err)
}

func TestNewChangeOrderStatusCommand_UnknownRole(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), order.Preparing, kernel.RoleUnknown)
	require.Error(t, err)
}
