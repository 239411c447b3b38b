package commands

import (
	"context"
	"strconv"
	"time"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/ledger"
	"qatmarket/internal/core/domain/model/notification"
	"qatmarket/internal/pkg/errs"
)

// TopUpWalletCommandHandler credits a user's wallet. The credit and the
// notification telling the user about it commit in one transaction.
type TopUpWalletCommandHandler struct {
	uowFactory WalletUoWFactory
	policy     Policy
}

// NewTopUpWalletCommandHandler creates a handler for wallet top-ups.
func NewTopUpWalletCommandHandler(uowFactory WalletUoWFactory, policy Policy) TopUpWalletCommandHandler {
	return TopUpWalletCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle appends a top-up entry to the user's ledger and queues the
// WALLET_TOPPED_UP notification. Amounts below the policy minimum are
// rejected with an error wrapping errs.ErrValueIsOutOfRange.
func (h *TopUpWalletCommandHandler) Handle(ctx context.Context, cmd TopUpWalletCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.Amount() < h.policy.MinTopUpAmount {
		return errs.NewValueIsOutOfRangeError(
			"amount", cmd.Amount(), h.policy.MinTopUpAmount, "unbounded")
	}

	now := time.Now().UTC()

	entry, err := ledger.NewEntry(
		kernel.NewUUID(), cmd.UserID(), cmd.Amount(), ledger.ReasonTopUp, nil, now)
	if err != nil {
		return err
	}

	event, err := notification.NewNotification(
		kernel.NewUUID(), cmd.UserID(), notification.TypeWalletToppedUp, nil,
		map[string]string{
			"amount": strconv.FormatFloat(cmd.Amount(), 'f', -1, 64),
		}, now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return err
	}
	if err = uow.NotificationRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
