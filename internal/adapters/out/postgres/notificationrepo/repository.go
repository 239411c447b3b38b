package notificationrepo

import (
	"context"
	"errors"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/notification"
	"qatmarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Add persists new notification events.
func (r *GormNotificationRepository) Add(ctx context.Context, events ...*notification.Notification) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]NotificationDTO, 0, len(events))
	for _, event := range events {
		if err := event.Validate(); err != nil {
			return err
		}
		dto, err := fromDomain(event)
		if err != nil {
			return err
		}
		dtos = append(dtos, dto)
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// Update persists changes to an event's read or delivery state.
func (r *GormNotificationRepository) Update(ctx context.Context, event *notification.Notification) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(event)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("id = ?", dto.ID).
		Select("read", "sent_at").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", event.ID().String())
	}

	return nil
}

// Get retrieves a notification by its unique identifier.
func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllUnsent retrieves events not yet delivered by the transport,
// oldest first, up to limit.
func (r *GormNotificationRepository) GetAllUnsent(ctx context.Context, limit int) ([]*notification.Notification, error) {
	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("sent_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		event, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		events = append(events, event)
	}

	return events, nil
}
