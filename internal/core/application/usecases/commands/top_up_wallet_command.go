package commands

import (
	"errors"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/pkg/guard"
)

var (
	ErrTopUpWalletCommandIsNotConstructed = errors.New(
		"TopUpWalletCommand must be created via NewTopUpWalletCommand constructor",
	)
	ErrAmountIsInvalid = errors.New("amount must be greater than 0")
)

// TopUpWalletCommand represents a request to credit a user's wallet.
// The minimum accepted amount is a policy parameter and is enforced by the
// handler, not here.
type TopUpWalletCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	amount float64

	guard guard.ConstructorGuard
}

// NewTopUpWalletCommand creates a command to top up a wallet.
func NewTopUpWalletCommand(userID kernel.UUID, amount float64) (TopUpWalletCommand, error) {
	topUpCommand := TopUpWalletCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		topUpCommand.setUserID(userID),
		topUpCommand.setAmount(amount),
	); err != nil {
		return TopUpWalletCommand{}, err
	}

	return topUpCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c TopUpWalletCommand) Validate() error {
	return c.guard.Validate(ErrTopUpWalletCommandIsNotConstructed)
}

// UserID returns the wallet owner.
func (c TopUpWalletCommand) UserID() kernel.UUID {
	return c.userID
}

// Amount returns the amount to credit.
func (c TopUpWalletCommand) Amount() float64 {
	return c.amount
}

func (c *TopUpWalletCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *TopUpWalletCommand) setAmount(amount float64) error {
	if amount <= 0 {
		return ErrAmountIsInvalid
	}

	c.amount = amount
	return nil
}
