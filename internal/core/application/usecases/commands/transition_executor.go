package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/ledger"
	"qatmarket/internal/core/domain/model/order"
	"qatmarket/internal/core/domain/services"
)

// ErrNoAvailableDrivers is returned when an order becomes ready for delivery
// but no driver on the roster can take it. The transition is rejected as a
// whole so the order stays in its previous state and can be retried.
var ErrNoAvailableDrivers = errors.New("no available drivers")

// transitionExecutor is the orchestration core shared by the order lifecycle
// handlers. For one transition it runs, in order and inside the caller's
// transaction:
//
//  1. the state machine (order.TransitionTo),
//  2. the ledger effect (services.PaymentCalculator), aborting everything on
//     insufficient balance,
//  3. driver dispatch when the order becomes ready for delivery,
//  4. the notification fan-out, persisted as undelivered events,
//  5. the versioned order update.
//
// If any step fails the caller rolls the transaction back, so either every
// effect of the transition is applied or none is.
type transitionExecutor struct {
	calculator   services.PaymentCalculator
	fanout       services.NotificationFanout
	dispatcher   services.DriverDispatcher
	refundWindow time.Duration
}

func newTransitionExecutor(
	calculator services.PaymentCalculator,
	fanout services.NotificationFanout,
	dispatcher services.DriverDispatcher,
	refundWindow time.Duration,
) transitionExecutor {
	return transitionExecutor{
		calculator:   calculator,
		fanout:       fanout,
		dispatcher:   dispatcher,
		refundWindow: refundWindow,
	}
}

// apply moves the order to target on behalf of role and records every effect
// of the transition through the unit of work. The caller owns commit/rollback.
func (e transitionExecutor) apply(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	target order.Status,
	role kernel.Role,
	at time.Time,
) error {
	from := o.Status()

	if err := o.TransitionTo(target, role, at, e.refundWindow); err != nil {
		return err
	}

	prior, err := uow.LedgerRepository().GetByOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	entries, err := e.calculator.EntriesForTransition(o, from, target, prior, at)
	if err != nil {
		return err
	}

	if err = e.checkDebits(ctx, uow, entries); err != nil {
		return err
	}
	if len(entries) > 0 {
		if err = uow.LedgerRepository().Append(ctx, entries...); err != nil {
			return err
		}
	}

	if target == order.ReadyForDelivery {
		if err = e.dispatchDriver(ctx, uow, o); err != nil {
			return err
		}
	}
	if target == order.Delivered || target == order.Cancelled {
		if err = e.releaseDriver(ctx, uow, o); err != nil {
			return err
		}
	}

	events, err := e.fanout.Dispatch(o, from, target, at)
	if err != nil {
		return err
	}
	if len(events) > 0 {
		if err = uow.NotificationRepository().Add(ctx, events...); err != nil {
			return err
		}
	}

	return uow.OrderRepository().Update(ctx, o)
}

// checkDebits pre-checks the non-negative balance invariant for every
// debited user so the failure surfaces before any entries are written.
// The ledger repository re-checks under a per-user lock at Append time,
// which is what actually holds under concurrent debits.
func (e transitionExecutor) checkDebits(ctx context.Context, uow WalletUoW, entries []*ledger.Entry) error {
	debits := make(map[kernel.UUID]float64)
	for _, entry := range entries {
		if entry.Delta() < 0 {
			debits[entry.UserID()] += entry.Delta()
		}
	}

	for userID, delta := range debits {
		balance, err := uow.LedgerRepository().BalanceOf(ctx, userID)
		if err != nil {
			return err
		}
		if balance+delta < 0 {
			return fmt.Errorf("%w: user %s has %.2f, needs %.2f",
				ledger.ErrInsufficientBalance, userID, balance, -delta)
		}
	}
	return nil
}

// dispatchDriver assigns a driver to the order via the pluggable dispatch
// policy and marks them busy on the roster. The roster write is version
// guarded, so two orders racing for the same driver cannot both book them.
func (e transitionExecutor) dispatchDriver(ctx context.Context, uow UoW, o *order.Order) error {
	drivers, err := uow.DriverRepository().GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	assigned, err := e.dispatcher.Dispatch(o, drivers)
	if errors.Is(err, services.ErrDriverNotFound) {
		return ErrNoAvailableDrivers
	}
	if err != nil {
		return err
	}

	return uow.DriverRepository().Update(ctx, assigned)
}

// releaseDriver frees the order's driver once the order has been delivered
// or cancelled.
func (e transitionExecutor) releaseDriver(ctx context.Context, uow UoW, o *order.Order) error {
	if o.DriverID() == nil {
		return nil
	}

	assigned, err := uow.DriverRepository().Get(ctx, *o.DriverID())
	if err != nil {
		return err
	}

	assigned.MarkAvailable()
	return uow.DriverRepository().Update(ctx, assigned)
}
