package queries

import (
	"errors"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/pkg/guard"
)

var ErrGetAvailableDriversQueryIsNotConstructed = errors.New(
	"GetAvailableDriversQuery must be created via NewGetAvailableDriversQuery constructor",
)

// GetAvailableDriversQuery retrieves all drivers currently free to take an
// order. Used for roster monitoring and dispatch debugging.
//
// Example:
//
//	query := NewGetAvailableDriversQuery()
//	handler := NewGetAvailableDriversQueryHandler(db)
//
//	drivers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get drivers: %w", err)
//	}
//	fmt.Printf("%d drivers free\n", len(drivers))
type GetAvailableDriversQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableDriversQuery creates a query to retrieve free drivers.
// This is a parameterless query.
func NewGetAvailableDriversQuery() GetAvailableDriversQuery {
	return GetAvailableDriversQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAvailableDriversQueryIsNotConstructed if validation fails.
func (q GetAvailableDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableDriversQueryIsNotConstructed)
}

// GetAvailableDriversQueryResponse represents one free driver on the roster.
type GetAvailableDriversQueryResponse struct {
	ID          kernel.UUID
	Name        string
	VehicleType string
}
