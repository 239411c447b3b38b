package commands

import (
	"errors"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/pkg/guard"
)

var ErrWithdrawWalletCommandIsNotConstructed = errors.New(
	"WithdrawWalletCommand must be created via NewWithdrawWalletCommand constructor",
)

// WithdrawWalletCommand represents a request to withdraw funds from a
// user's wallet. The withdrawal bounds and the fee are policy parameters
// enforced by the handler.
type WithdrawWalletCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	amount float64

	guard guard.ConstructorGuard
}

// NewWithdrawWalletCommand creates a command to withdraw from a wallet.
func NewWithdrawWalletCommand(userID kernel.UUID, amount float64) (WithdrawWalletCommand, error) {
	withdrawCommand := WithdrawWalletCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		withdrawCommand.setUserID(userID),
		withdrawCommand.setAmount(amount),
	); err != nil {
		return WithdrawWalletCommand{}, err
	}

	return withdrawCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c WithdrawWalletCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawWalletCommandIsNotConstructed)
}

// UserID returns the wallet owner.
func (c WithdrawWalletCommand) UserID() kernel.UUID {
	return c.userID
}

// Amount returns the amount to withdraw, before the fee.
func (c WithdrawWalletCommand) Amount() float64 {
	return c.amount
}

func (c *WithdrawWalletCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *WithdrawWalletCommand) setAmount(amount float64) error {
	if amount <= 0 {
		return ErrAmountIsInvalid
	}

	c.amount = amount
	return nil
}
