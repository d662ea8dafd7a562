package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetUserOrdersQueryHandler serves a customer's own order history.
//
// Example:
//
//	handler := NewGetUserOrdersQueryHandler(db)
//	query, _ := NewGetUserOrdersQuery(userID)
//
//	mine, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
type GetUserOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUserOrdersQueryHandler creates a handler for per-user order queries.
func NewGetUserOrdersQueryHandler(db *gorm.DB) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{db: db}
}

// Handle executes the query and returns the user's orders sorted by pickup
// time ascending.
func (h GetUserOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUserOrdersQuery,
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
		WHERE user_id = ?
	`

	tx := h.db.WithContext(ctx)
	var rows *gorm.DB
	if query.Filtered() {
		rows = tx.Raw(baseQuery+` AND status = ? ORDER BY pickup_time, id`, query.UserID().Bytes(), query.Status())
	} else {
		rows = tx.Raw(baseQuery+` ORDER BY pickup_time, id`, query.UserID().Bytes())
	}

	return scanOrderRows(rows)
}
