// Package queries contains read-only operations for the CQRS read side.
// Query handlers bypass the aggregate repositories and read projections
// straight from the database, sorted the way the kitchen works: by pickup
// time.
package queries

import (
	"errors"
	"time"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/pkg/guard"
)

var ErrGetOrdersByStatusQueryIsNotConstructed = errors.New(
	"GetOrdersByStatusQuery must be created via NewGetOrdersByStatusQuery or NewGetAllOrdersQuery constructor",
)

// GetOrdersByStatusQuery retrieves the operator's view of the order book,
// optionally narrowed to a single lifecycle status.
//
// Example:
//
//	query, _ := queries.NewGetOrdersByStatusQuery(order.Processing)
//	orders, err := handler.Handle(ctx, query)
type GetOrdersByStatusQuery struct {
	status   order.Status
	filtered bool

	guard guard.ConstructorGuard
}

// NewGetOrdersByStatusQuery creates a query for orders in one status.
func NewGetOrdersByStatusQuery(status order.Status) (GetOrdersByStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return GetOrdersByStatusQuery{}, err
	}

	return GetOrdersByStatusQuery{
		status:   status,
		filtered: true,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// NewGetAllOrdersQuery creates a query for the full order book.
func NewGetAllOrdersQuery() GetOrdersByStatusQuery {
	return GetOrdersByStatusQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through a constructor.
func (q GetOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStatusQueryIsNotConstructed)
}

// Status returns the status filter. Only meaningful when Filtered is true.
func (q GetOrdersByStatusQuery) Status() order.Status {
	return q.status
}

// Filtered reports whether the query narrows results to a single status.
func (q GetOrdersByStatusQuery) Filtered() bool {
	return q.filtered
}

// OrderQueryResponse is one row of an order listing. Both the operator view
// and the per-user view share this shape.
type OrderQueryResponse struct {
	ID            kernel.UUID
	UserID        kernel.UUID
	CurryQuantity int
	NaanQuantity  int
	PickupTime    time.Time
	CreatedAt     time.Time
	Status        order.Status
}
