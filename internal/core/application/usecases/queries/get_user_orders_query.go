package queries

import (
	"errors"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/pkg/guard"
)

var ErrGetUserOrdersQueryIsNotConstructed = errors.New(
	"GetUserOrdersQuery must be created via NewGetUserOrdersQuery constructor",
)

// GetUserOrdersQuery retrieves one customer's own orders, optionally
// narrowed to a single lifecycle status.
//
// Example:
//
//	query, _ := queries.NewGetUserOrdersQuery(principal.UserID)
//	mine, err := handler.Handle(ctx, query)
type GetUserOrdersQuery struct {
	userID   kernel.UUID
	status   order.Status
	filtered bool

	guard guard.ConstructorGuard
}

// NewGetUserOrdersQuery creates a query for all of a customer's orders.
func NewGetUserOrdersQuery(userID kernel.UUID) (GetUserOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserOrdersQuery{}, err
	}

	return GetUserOrdersQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// NewGetUserOrdersByStatusQuery creates a query for a customer's orders in
// one status.
func NewGetUserOrdersByStatusQuery(userID kernel.UUID, status order.Status) (GetUserOrdersQuery, error) {
	if err := errors.Join(userID.Validate(), status.Validate()); err != nil {
		return GetUserOrdersQuery{}, err
	}

	return GetUserOrdersQuery{
		userID:   userID,
		status:   status,
		filtered: true,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUserOrdersQueryIsNotConstructed)
}

// UserID returns the owner whose orders are listed.
func (q GetUserOrdersQuery) UserID() kernel.UUID {
	return q.userID
}

// Status returns the status filter. Only meaningful when Filtered is true.
func (q GetUserOrdersQuery) Status() order.Status {
	return q.status
}

// Filtered reports whether the query narrows results to a single status.
func (q GetUserOrdersQuery) Filtered() bool {
	return q.filtered
}
