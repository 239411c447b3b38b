package commands

import (
	"context"

	"qatmarket/internal/core/domain/model/order"
	"qatmarket/internal/core/domain/services"
)

// CancelOrderCommandHandler handles order cancellation. Cancellation is the
// Cancelled transition of the lifecycle, so it reuses the status change
// handler; this type only fixes the target status.
type CancelOrderCommandHandler struct {
	statusHandler ChangeOrderStatusCommandHandler
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	calculator services.PaymentCalculator,
	fanout services.NotificationFanout,
	dispatcher services.DriverDispatcher,
	policy Policy,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		statusHandler: NewChangeOrderStatusCommandHandler(uowFactory, calculator, fanout, dispatcher, policy),
	}
}

// Handle cancels the order, refunding any amount the buyer was debited.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	statusCommand, err := NewChangeOrderStatusCommand(cmd.OrderID(), order.Cancelled, cmd.Role())
	if err != nil {
		return err
	}

	return h.statusHandler.Handle(ctx, statusCommand)
}
