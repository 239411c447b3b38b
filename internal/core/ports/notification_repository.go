package ports

import (
	"context"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notification
// events. Notifications are written in the same transaction as the state
// change that caused them; transport delivery happens asynchronously and is
// tracked through the sentAt marker.
type NotificationRepository interface {
	// Add persists new notification events.
	Add(ctx context.Context, events ...*notification.Notification) error

	// Update persists changes to an event's read or delivery state.
	Update(ctx context.Context, event *notification.Notification) error

	// Get retrieves a notification by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// GetAllUnsent retrieves events not yet delivered by the transport,
	// oldest first, up to limit. The delivery job drains this queue.
	GetAllUnsent(ctx context.Context, limit int) ([]*notification.Notification, error)
}

// NotificationTransport pushes notification events to the external delivery
// channel (push service, in-app badge feed). Implementations must bound the
// time a push may take; a failed push leaves the event queued for retry and
// never affects committed order or ledger state.
type NotificationTransport interface {
	// Push delivers a single event. Returns an error when delivery failed
	// and should be retried later.
	Push(ctx context.Context, event *notification.Notification) error
}
