// Package notificationrepo persists notification events and their delivery
// state. Events are written in the same transaction as the state change that
// caused them; the delivery job reads back the unsent ones.
package notificationrepo

import (
	"encoding/json"
	"time"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting
// notification events. A NULL sent_at marks an event still waiting for
// transport delivery.
type NotificationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID `gorm:"type:uuid;index"`
	EventType   string
	OrderID     *uuid.UUID `gorm:"type:uuid;index"`
	Payload     []byte     `gorm:"type:jsonb"`
	CreatedAt   time.Time
	Read        bool
	SentAt      *time.Time `gorm:"index"`
}

// TableName specifies the database table name for notification events.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification event to its database representation.
func fromDomain(event *notification.Notification) (NotificationDTO, error) {
	payload, err := json.Marshal(event.Payload())
	if err != nil {
		return NotificationDTO{}, err
	}

	var orderID *uuid.UUID
	if id := event.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return NotificationDTO{
		ID:          event.ID().Bytes(),
		RecipientID: event.RecipientID().Bytes(),
		EventType:   event.Type().String(),
		OrderID:     orderID,
		Payload:     payload,
		CreatedAt:   event.CreatedAt(),
		Read:        event.Read(),
		SentAt:      event.SentAt(),
	}, nil
}

// toDomain converts a database DTO back into a notification event.
func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		converted, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &converted
	}

	eventType, err := notification.TypeFromString(dto.EventType)
	if err != nil {
		return nil, err
	}

	var payload map[string]string
	if err = json.Unmarshal(dto.Payload, &payload); err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id, recipientID, eventType, orderID, payload, dto.CreatedAt, dto.Read, dto.SentAt)
}
