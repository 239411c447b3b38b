package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/ledger"
	"qatmarket/internal/core/domain/model/notification"
	"qatmarket/internal/pkg/errs"
)

// WithdrawWalletCommandHandler debits a user's wallet for a withdrawal.
// The withdrawal entry, the fee entry, and the notification asking the admin
// to process the payout commit in one transaction. The balance check covers
// the amount plus the fee so the ledger can never go negative.
type WithdrawWalletCommandHandler struct {
	uowFactory WalletUoWFactory
	policy     Policy
	adminID    kernel.UUID
}

// NewWithdrawWalletCommandHandler creates a handler for wallet withdrawals.
// adminID is the recipient of the WITHDRAWAL_REQUESTED notification.
func NewWithdrawWalletCommandHandler(
	uowFactory WalletUoWFactory,
	policy Policy,
	adminID kernel.UUID,
) (WithdrawWalletCommandHandler, error) {
	if err := adminID.Validate(); err != nil {
		return WithdrawWalletCommandHandler{}, err
	}

	return WithdrawWalletCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		adminID:    adminID,
	}, nil
}

// Handle appends the withdrawal and fee entries to the user's ledger and
// queues the admin notification. Amounts outside the policy bounds are
// rejected with an error wrapping errs.ErrValueIsOutOfRange; a balance that
// does not cover amount plus fee fails with ledger.ErrInsufficientBalance.
func (h *WithdrawWalletCommandHandler) Handle(ctx context.Context, cmd WithdrawWalletCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.Amount() < h.policy.MinWithdrawalAmount || cmd.Amount() > h.policy.MaxWithdrawalAmount {
		return errs.NewValueIsOutOfRangeError(
			"amount", cmd.Amount(), h.policy.MinWithdrawalAmount, h.policy.MaxWithdrawalAmount)
	}

	now := time.Now().UTC()
	fee := h.policy.WithdrawalFee(cmd.Amount())

	withdrawal, err := ledger.NewEntry(
		kernel.NewUUID(), cmd.UserID(), -cmd.Amount(), ledger.ReasonWithdrawal, nil, now)
	if err != nil {
		return err
	}

	entries := []*ledger.Entry{withdrawal}
	if fee > 0 {
		feeEntry, feeErr := ledger.NewEntry(
			kernel.NewUUID(), cmd.UserID(), -fee, ledger.ReasonWithdrawalFee, nil, now)
		if feeErr != nil {
			return feeErr
		}
		entries = append(entries, feeEntry)
	}

	event, err := notification.NewNotification(
		kernel.NewUUID(), h.adminID, notification.TypeWithdrawalRequested, nil,
		map[string]string{
			"user_id": cmd.UserID().String(),
			"amount":  strconv.FormatFloat(cmd.Amount(), 'f', -1, 64),
			"fee":     strconv.FormatFloat(fee, 'f', -1, 64),
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

	balance, err := uow.LedgerRepository().BalanceOf(ctx, cmd.UserID())
	if err != nil {
		return err
	}
	if balance < cmd.Amount()+fee {
		return fmt.Errorf("%w: user %s has %.2f, needs %.2f",
			ledger.ErrInsufficientBalance, cmd.UserID(), balance, cmd.Amount()+fee)
	}

	if err = uow.LedgerRepository().Append(ctx, entries...); err != nil {
		return err
	}
	if err = uow.NotificationRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
