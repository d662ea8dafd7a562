// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by owner and by pickup time, the two axes every listing uses.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;index"`
	CurryQuantity int
	NaanQuantity  int
	PickupTime    time.Time `gorm:"index"`
	CreatedAt     time.Time
	Status        int `gorm:"index"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		UserID:        aggregate.UserID().Bytes(),
		CurryQuantity: aggregate.CurryQuantity().Value(),
		NaanQuantity:  aggregate.NaanQuantity().Value(),
		PickupTime:    aggregate.PickupTime(),
		CreatedAt:     aggregate.CreatedAt(),
		Status:        int(aggregate.Status()),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	curryQty, err := kernel.NewQuantity("curryQuantity", dto.CurryQuantity)
	if err != nil {
		return nil, err
	}

	naanQty, err := kernel.NewQuantity("naanQuantity", dto.NaanQuantity)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, userID, curryQty, naanQty, dto.CreatedAt, dto.PickupTime, order.Status(dto.Status))
}
