package ports

import (
	"context"

	"foodtruck/internal/core/domain/model/truck"
)

// TruckRepository defines the persistence contract for the singleton truck
// cursor. It is only ever used inside a unit of work: GetForUpdate takes an
// exclusive row lock that is held until the enclosing transaction commits or
// rolls back, so no two scheduling decisions can read the same cursor value.
type TruckRepository interface {
	// GetForUpdate reads the cursor under an exclusive row lock, blocking
	// concurrent readers until the transaction ends. Lock acquisition waits
	// at most the configured lock timeout; expiry surfaces as a retryable
	// error. If the row does not exist yet it is initialized to "now"
	// within the same transaction.
	GetForUpdate(ctx context.Context) (*truck.Truck, error)

	// Update persists the advanced cursor within the same transaction that
	// acquired the lock.
	Update(ctx context.Context, aggregate *truck.Truck) error
}
