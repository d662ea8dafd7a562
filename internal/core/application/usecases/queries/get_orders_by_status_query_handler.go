package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrdersByStatusQueryHandler serves the operator's order listing.
// Results come back in pickup order, which is the order the kitchen will
// hand them out.
//
// Example:
//
//	handler := NewGetOrdersByStatusQueryHandler(db)
//	query, _ := NewGetOrdersByStatusQuery(order.Processing)
//
//	inProgress, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
type GetOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByStatusQueryHandler creates a handler for order book queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersByStatusQueryHandler(db *gorm.DB) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{db: db}
}

// Handle executes the query and returns matching orders sorted by pickup
// time ascending, then by ID for a stable order between equal pickup times.
func (h GetOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStatusQuery,
) ([]OrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const baseQuery = `
		SELECT
			id,
			user_id,
			curry_quantity,
			naan_quantity,
			pickup_time,
			created_at,
			status
		FROM orders
	`

	tx := h.db.WithContext(ctx)
	var rows *gorm.DB
	if query.Filtered() {
		rows = tx.Raw(baseQuery+` WHERE status = ? ORDER BY pickup_time, id`, query.Status())
	} else {
		rows = tx.Raw(baseQuery + ` ORDER BY pickup_time, id`)
	}

	return scanOrderRows(rows)
}
