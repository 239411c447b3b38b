package commands

import (
	"context"

	"qatmarket/internal/pkg/errs"
)

// MarkNotificationReadCommandHandler marks a notification as read on behalf
// of its recipient. A notification belonging to someone else is reported as
// not found rather than as forbidden, so the endpoint does not reveal which
// notification IDs exist.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

// NewMarkNotificationReadCommandHandler creates a handler for marking
// notifications read.
func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks the notification read. Marking an already read notification
// again is a no-op, not an error.
func (h *MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
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

	event, err := uow.NotificationRepository().Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}

	if !event.RecipientID().IsEqual(cmd.RecipientID()) {
		return errs.NewObjectNotFoundError("notificationID", cmd.NotificationID())
	}

	event.MarkRead()
	if err = uow.NotificationRepository().Update(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
