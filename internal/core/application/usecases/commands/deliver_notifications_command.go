package commands

import (
	"errors"

	"qatmarket/internal/pkg/guard"
)

var ErrDeliverNotificationsCommandIsNotConstructed = errors.New(
	"DeliverNotificationsCommand must be created via NewDeliverNotificationsCommand constructor",
)

// DeliverNotificationsCommand triggers a drain of the pending notification
// queue. Each undelivered event is pushed to the notification transport and
// marked sent on success; events whose push fails stay queued for the next
// run.
//
// Example:
//
//	cmd := NewDeliverNotificationsCommand()
//	handler := NewDeliverNotificationsCommandHandler(uowFactory, transport, 50)
//	delivered, err := handler.Handle(ctx, cmd)
//	if err != nil && !errors.Is(err, ErrNoUnsentNotifications) {
//	    log.Printf("Delivery run had failures: %v", err)
//	}
type DeliverNotificationsCommand struct {
	guard guard.ConstructorGuard
}

// NewDeliverNotificationsCommand creates a new command to trigger delivery.
// This is a parameterless command that initiates the queue drain.
func NewDeliverNotificationsCommand() DeliverNotificationsCommand {
	return DeliverNotificationsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrDeliverNotificationsCommandIsNotConstructed if validation fails.
func (c *DeliverNotificationsCommand) Validate() error {
	return c.guard.Validate(
		ErrDeliverNotificationsCommandIsNotConstructed,
	)
}
