package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"qatmarket/internal/core/ports"
)

var ErrNoUnsentNotifications = errors.New("no unsent notifications")

// DeliverNotificationsCommandHandler drains the pending notification queue.
// Pushes each undelivered event through the transport and records delivery
// in the same transaction that fetched the batch. A failed push is not
// fatal: the event keeps its empty sentAt marker and is retried on the
// next run, while the rest of the batch proceeds.
type DeliverNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	transport  ports.NotificationTransport
	batchSize  int
}

// NewDeliverNotificationsCommandHandler creates a handler for notification
// delivery runs. batchSize bounds how many events one run may push.
func NewDeliverNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	transport ports.NotificationTransport,
	batchSize int,
) DeliverNotificationsCommandHandler {
	return DeliverNotificationsCommandHandler{
		uowFactory: uowFactory,
		transport:  transport,
		batchSize:  batchSize,
	}
}

// Handle processes one delivery run. Returns the number of events delivered
// and any push errors joined together. Returns ErrNoUnsentNotifications
// when the queue is empty.
func (h DeliverNotificationsCommandHandler) Handle(
	ctx context.Context,
	command DeliverNotificationsCommand,
) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	events, err := uow.NotificationRepository().GetAllUnsent(ctx, h.batchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, ErrNoUnsentNotifications
	}

	var pushErrs error
	delivered := 0

	for _, event := range events {
		if err := h.transport.Push(ctx, event); err != nil {
			pushErrs = errors.Join(pushErrs,
				fmt.Errorf("push notification %s: %w", event.ID().String(), err))
			continue
		}

		event.MarkSent(time.Now().UTC())
		if err := uow.NotificationRepository().Update(ctx, event); err != nil {
			return delivered, err
		}
		delivered++
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	return delivered, pushErrs
}
