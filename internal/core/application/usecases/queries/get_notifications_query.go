package queries

import (
	"errors"
	"time"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/pkg/guard"
)

var ErrGetNotificationsQueryIsNotConstructed = errors.New(
	"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
)

// notificationPageSize caps how many notifications one query returns.
const notificationPageSize = 50

// GetNotificationsQuery retrieves a recipient's notification feed,
// newest first.
type GetNotificationsQuery struct { //nolint:recvcheck //using for validation
	recipientID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetNotificationsQuery creates a query for a recipient's notifications.
func NewGetNotificationsQuery(recipientID kernel.UUID) (GetNotificationsQuery, error) {
	query := GetNotificationsQuery{guard: guard.NewConstructorGuard()}
	if err := query.setRecipientID(recipientID); err != nil {
		return GetNotificationsQuery{}, err
	}
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

// RecipientID returns the feed owner.
func (q GetNotificationsQuery) RecipientID() kernel.UUID {
	return q.recipientID
}

func (q *GetNotificationsQuery) setRecipientID(recipientID kernel.UUID) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}

	q.recipientID = recipientID
	return nil
}

// GetNotificationsQueryResponse represents one notification in the feed.
type GetNotificationsQueryResponse struct {
	ID        kernel.UUID
	EventType string
	OrderID   *kernel.UUID
	Payload   map[string]string
	CreatedAt time.Time
	Read      bool
}
