// Package truck contains the Truck aggregate: the singleton "busy until"
// cursor that serializes every scheduling decision for the single physical
// preparation resource.
package truck

import (
	"errors"
	"fmt"
	"time"

	"foodtruck/internal/pkg/errs"
)

// ID is the constant identifier of the singleton truck row. The system
// schedules against exactly one truck; there is never a second row.
const ID = 1

var (
	// ErrTruckIsNotConstructed is returned when a Truck instance was not
	// created through NewTruck or RestoreTruck.
	ErrTruckIsNotConstructed = errors.New("Truck must be created via NewTruck or RestoreTruck")
)

// Truck is the aggregate holding the earliest time the truck is free.
//
// Invariant: busyUntil is monotonically non-decreasing for the lifetime of
// the system. Every accepted order pushes it forward (or leaves it at "now"
// when the truck was idle); it never moves backward. All mutation happens
// inside the scheduling engine's locked critical section.
type Truck struct {
	busyUntil time.Time

	isConstructed bool
}

// NewTruck bootstraps the cursor for a truck that is free right now.
// Used on first access, inside the same transaction that locks the row.
func NewTruck(now time.Time) (*Truck, error) {
	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("now")
	}
	return &Truck{busyUntil: now, isConstructed: true}, nil
}

// RestoreTruck reconstructs the cursor from persistence.
func RestoreTruck(busyUntil time.Time) (*Truck, error) {
	if busyUntil.IsZero() {
		return nil, errs.NewValueIsRequiredError("busyUntil")
	}
	return &Truck{busyUntil: busyUntil, isConstructed: true}, nil
}

// Validate ensures the Truck instance was properly constructed.
func (t *Truck) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTruckIsNotConstructed
	}
	return nil
}

// BusyUntil returns the earliest time the truck is free.
func (t *Truck) BusyUntil() time.Time {
	return t.busyUntil
}

// Schedule claims the truck for one order and returns the order's pickup
// time:
//
//	start  = max(busyUntil, now)
//	pickup = start + prepTime
//
// and advances busyUntil to the pickup time. prepTime must be positive;
// with valid quantities it always is.
func (t *Truck) Schedule(now time.Time, prepTime time.Duration) (time.Time, error) {
	if now.IsZero() {
		return time.Time{}, errs.NewValueIsRequiredError("now")
	}
	if prepTime <= 0 {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("prepTime",
			fmt.Errorf("%s is not a positive duration", prepTime))
	}

	start := t.busyUntil
	if now.After(start) {
		start = now
	}

	pickup := start.Add(prepTime)
	t.busyUntil = pickup
	return pickup, nil
}
