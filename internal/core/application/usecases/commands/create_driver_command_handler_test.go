package commands_test

import (
	"errors"
	"testing"

	"qatmarket/internal/core/application/usecases/commands"
	"qatmarket/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateDriverCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateDriverCommand(id, "Salim", "motorbike")
	require.NoError(t, err)
	assert.Equal(t, id, cmd.DriverID())
	assert.Equal(t, "Salim", cmd.Name())
	assert.Equal(t, "motorbike", cmd.VehicleType())
}

func TestNewCreateDriverCommand_EmptyName(t *testing.T) {
	_, err := commands.NewCreateDriverCommand(kernel.NewUUID(), "", "motorbike")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrNameIsRequired)
}

func TestNewCreateDriverCommand_EmptyVehicleType(t *testing.T) {
	_, err := commands.NewCreateDriverCommand(kernel.NewUUID(), "Salim", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrVehicleTypeIsRequired)
}

func TestCreateDriverCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateDriverCommand(kernel.NewUUID(), "Salim", "motorbike")
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Add", mock.Anything, mock.AnythingOfType("*driver.Driver")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDriverCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	driverRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateDriverCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateDriverCommand(kernel.NewUUID(), "Salim", "motorbike")
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Add", mock.Anything, mock.AnythingOfType("*driver.Driver")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDriverCommandHandler(factory)
	require.Error(t, h.Handle(ctx, cmd))
}

func TestCreateDriverCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateDriverCommand{} // not constructed properly
	factory := new(MockDriverUoWFactory)
	h := commands.NewCreateDriverCommandHandler(factory)
	require.Error(t, h.Handle(ctx, cmd))
}
