package queries

import (
	"errors"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/pkg/guard"
)

var ErrGetOrdersByParticipantQueryIsNotConstructed = errors.New(
	"GetOrdersByParticipantQuery must be created via NewGetOrdersByParticipantQuery constructor",
)

// GetOrdersByParticipantQuery retrieves every order a user takes part in,
// whether as buyer, seller, washer, or driver.
type GetOrdersByParticipantQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrdersByParticipantQuery creates a query for a user's orders.
func NewGetOrdersByParticipantQuery(userID kernel.UUID) (GetOrdersByParticipantQuery, error) {
	query := GetOrdersByParticipantQuery{guard: guard.NewConstructorGuard()}
	if err := query.setUserID(userID); err != nil {
		return GetOrdersByParticipantQuery{}, err
	}
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByParticipantQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByParticipantQueryIsNotConstructed)
}

// UserID returns the participant whose orders are retrieved.
func (q GetOrdersByParticipantQuery) UserID() kernel.UUID {
	return q.userID
}

func (q *GetOrdersByParticipantQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	q.userID = userID
	return nil
}
