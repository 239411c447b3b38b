package commands

import (
	"context"
	"time"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/order"
	"qatmarket/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for placing an order.
// Computes the monetary breakdown, generates the sale code, and persists the
// order in Pending status. When the buyer pays from their wallet balance and
// the balance covers the total, the order is confirmed in the same
// transaction, which debits the buyer and fans the confirmation
// notifications out. An insufficient balance is not an error at creation
// time; the order simply stays Pending.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	executor   transitionExecutor
	policy     Policy
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	calculator services.PaymentCalculator,
	fanout services.NotificationFanout,
	dispatcher services.DriverDispatcher,
	policy Policy,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		executor:   newTransitionExecutor(calculator, fanout, dispatcher, policy.RefundWindow),
		policy:     policy,
	}
}

// Handle processes the order placement command and returns the placed order,
// which is either Pending or, for a covered balance payment, Confirmed.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	placed, err := order.NewOrder(
		cmd.OrderID(),
		cmd.BuyerID(),
		cmd.SellerID(),
		cmd.WasherID(),
		cmd.Items(),
		cmd.Address(),
		cmd.DeliveryTime(),
		cmd.PaymentMethod(),
		h.policy.DeliveryFee,
		h.policy.WashingFee,
		now,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if cmd.PaymentMethod().IsBalance() {
		covered, coverErr := h.balanceCovers(ctx, uow, cmd.BuyerID(), placed.Total())
		if coverErr != nil {
			return nil, coverErr
		}
		if covered {
			// The platform confirms covered balance payments itself; buyers
			// are not authorized to drive the confirm edge.
			if err = h.executor.apply(ctx, uow, placed, order.Confirmed, kernel.RoleAdmin, now); err != nil {
				return nil, err
			}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return placed, nil
}

func (h *CreateOrderCommandHandler) balanceCovers(
	ctx context.Context,
	uow UoW,
	buyerID kernel.UUID,
	total float64,
) (bool, error) {
	balance, err := uow.LedgerRepository().BalanceOf(ctx, buyerID)
	if err != nil {
		return false, err
	}
	return balance >= total, nil
}
