package queries

import (
	"context"
	"encoding/json"
	"time"

	"qatmarket/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetNotificationsQueryHandler retrieves a recipient's notification feed.
type GetNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetNotificationsQueryHandler creates a handler for notification feed
// queries. Requires a GORM database connection for query execution.
func NewGetNotificationsQueryHandler(db *gorm.DB) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{db: db}
}

// Handle executes the query to retrieve the recipient's recent notifications.
func (h GetNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationsQuery,
) ([]GetNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			event_type,
			order_id,
			payload,
			created_at,
			read
		FROM notifications
		WHERE recipient_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, query.RecipientID().Bytes(), notificationPageSize).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]GetNotificationsQueryResponse, 0)
	for rows.Next() {
		var event GetNotificationsQueryResponse
		var id uuid.UUID
		var orderID uuid.NullUUID
		var payloadJSON []byte
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&event.EventType,
			&orderID,
			&payloadJSON,
			&createdAt,
			&event.Read,
		)
		if err != nil {
			return nil, err
		}

		if event.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if event.OrderID, err = optionalUUID(orderID); err != nil {
			return nil, err
		}
		if err = json.Unmarshal(payloadJSON, &event.Payload); err != nil {
			return nil, err
		}
		event.CreatedAt = createdAt

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
