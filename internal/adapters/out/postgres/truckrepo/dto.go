// Package truckrepo persists the singleton truck scheduling cursor.
// The cursor is a single row whose exclusive lock serializes all scheduling
// decisions.
package truckrepo

import (
	"time"

	"foodtruck/internal/core/domain/model/truck"
)

// TruckDTO represents the database structure for the scheduling cursor.
// There is exactly one row, keyed by the fixed truck ID.
type TruckDTO struct {
	ID        int `gorm:"primaryKey"`
	BusyUntil time.Time
}

// TableName specifies the database table name for the scheduling cursor.
func (TruckDTO) TableName() string {
	return "truck_cursor"
}

// fromDomain converts the truck aggregate to its database representation.
func fromDomain(aggregate *truck.Truck) TruckDTO {
	return TruckDTO{
		ID:        truck.ID,
		BusyUntil: aggregate.BusyUntil(),
	}
}

// toDomain converts a database DTO to the truck aggregate.
func toDomain(dto TruckDTO) (*truck.Truck, error) {
	return truck.RestoreTruck(dto.BusyUntil)
}
