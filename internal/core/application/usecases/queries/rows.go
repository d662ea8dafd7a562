package queries

import (
	"time"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// scanOrderRows drains a result set produced by the shared order projection
// (id, user_id, curry_quantity, naan_quantity, pickup_time, created_at,
// status) into response rows.
func scanOrderRows(tx *gorm.DB) ([]OrderQueryResponse, error) {
	rows, err := tx.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderQueryResponse, 0)

	for rows.Next() {
		var (
			id         uuid.UUID
			userID     uuid.UUID
			curryQty   int
			naanQty    int
			pickupTime time.Time
			createdAt  time.Time
			status     int
		)

		if err = rows.Scan(&id, &userID, &curryQty, &naanQty, &pickupTime, &createdAt, &status); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		ownerID, idErr := kernel.UUIDFromBytes(userID[:])
		if idErr != nil {
			return nil, idErr
		}

		orders = append(orders, OrderQueryResponse{
			ID:            orderID,
			UserID:        ownerID,
			CurryQuantity: curryQty,
			NaanQuantity:  naanQty,
			PickupTime:    pickupTime,
			CreatedAt:     createdAt,
			Status:        order.Status(status),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
