package commands

import (
	"context"
	"time"

	"qatmarket/internal/core/domain/services"
)

// ChangeOrderStatusCommandHandler handles order lifecycle transitions.
// A single transition, its ledger effects, its driver assignment, and its
// notification fan-out all commit in one transaction; a failure at any point
// rolls the whole transition back.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, calculator, fanout, dispatcher, policy)
//	cmd, _ := NewChangeOrderStatusCommand(orderID, order.Preparing, kernel.RoleSeller)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("transition failed: %w", err)
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	executor   transitionExecutor
}

// NewChangeOrderStatusCommandHandler creates a handler for lifecycle transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory,
	calculator services.PaymentCalculator,
	fanout services.NotificationFanout,
	dispatcher services.DriverDispatcher,
	policy Policy,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		executor:   newTransitionExecutor(calculator, fanout, dispatcher, policy.RefundWindow),
	}
}

// Handle loads the order, applies the requested transition with every effect
// it implies, and commits. Concurrent transitions on the same order
// serialize through the order's version; the losing writer gets an error
// wrapping errs.ErrVersionIsInvalid and may reload and retry.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.executor.apply(ctx, uow, aggregate, cmd.Target(), cmd.Role(), time.Now().UTC()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
