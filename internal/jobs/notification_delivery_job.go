package jobs

import (
	"context"
	"errors"
	"log/slog"

	"qatmarket/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// NotificationDeliveryJob manages the scheduled drain of the notification
// queue. Runs every second to push undelivered events to the transport.
type NotificationDeliveryJob struct {
	handler commands.DeliverNotificationsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewNotificationDeliveryJob creates a new job for notification delivery.
// Uses DeliverNotificationsCommandHandler to process queued events every second.
func NewNotificationDeliveryJob(handler commands.DeliverNotificationsCommandHandler, logger *slog.Logger) *NotificationDeliveryJob {
	return &NotificationDeliveryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "notification_delivery_job"),
	}
}

// Start begins the notification delivery job to run every second.
func (j *NotificationDeliveryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewDeliverNotificationsCommand()

		delivered, err := j.handler.Handle(ctx, cmd)
		if err != nil && !errors.Is(err, commands.ErrNoUnsentNotifications) {
			// Failed pushes stay queued and are retried on the next run
			j.logger.ErrorContext(ctx, "Notification delivery run had failures",
				"delivered", delivered, "error", err)
			return
		}

		if delivered > 0 {
			j.logger.InfoContext(ctx, "Notifications delivered", "count", delivered)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification delivery job started (running every second)")
	return nil
}

// Stop stops the notification delivery job.
func (j *NotificationDeliveryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification delivery job stopped")
}
