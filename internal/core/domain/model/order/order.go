package order

import (
	"errors"
	"fmt"
	"time"

	"foodtruck/internal/core/domain/model/kernel"

	"foodtruck/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root for a scheduled food-truck order. It carries
// the owning user, the ordered quantities, the pickup time computed by the
// scheduling engine, and the lifecycle status.
//
// Invariants:
//   - id and userID are valid UUIDs
//   - curry and naan quantities are within [1,10]
//   - pickupTime is never before createdAt
//   - status is always a defined lifecycle state
//
// Orders are created only by the scheduling engine, inside the scheduling
// transaction, already carrying their pickup time.
type Order struct {
	id         kernel.UUID
	userID     kernel.UUID
	curryQty   kernel.Quantity
	naanQty    kernel.Quantity
	pickupTime time.Time
	createdAt  time.Time
	status     Status

	isConstructed bool
}

// NewOrder creates an order in Processing status with its computed pickup
// time. Returns a validation error if any argument violates the invariants,
// including a pickup time earlier than the creation time.
func NewOrder(
	id kernel.UUID,
	userID kernel.UUID,
	curryQty kernel.Quantity,
	naanQty kernel.Quantity,
	createdAt time.Time,
	pickupTime time.Time,
) (*Order, error) {
	o := &Order{
		status:        Processing,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setQuantities(curryQty, naanQty),
		o.setTimes(createdAt, pickupTime),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its status.
// The same invariants as NewOrder apply.
func RestoreOrder(
	id kernel.UUID,
	userID kernel.UUID,
	curryQty kernel.Quantity,
	naanQty kernel.Quantity,
	createdAt time.Time,
	pickupTime time.Time,
	status Status,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setQuantities(curryQty, naanQty),
		o.setTimes(createdAt, pickupTime),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the identifier of the user who owns the order.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// CurryQuantity returns the number of curry portions ordered.
func (o *Order) CurryQuantity() kernel.Quantity {
	return o.curryQty
}

// NaanQuantity returns the number of naan ordered.
func (o *Order) NaanQuantity() kernel.Quantity {
	return o.naanQty
}

// PickupTime returns the absolute time at which preparation completes.
func (o *Order) PickupTime() time.Time {
	return o.pickupTime
}

// CreatedAt returns the order's creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Complete marks the order as ready for pickup.
//
// The order must be in Processing status. Completing an already-Completed
// order returns a conflict; see Status.Complete.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setQuantities(curryQty, naanQty kernel.Quantity) error {
	if err := errors.Join(curryQty.Validate(), naanQty.Validate()); err != nil {
		return err
	}
	o.curryQty = curryQty
	o.naanQty = naanQty
	return nil
}

func (o *Order) setTimes(createdAt, pickupTime time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	if pickupTime.IsZero() {
		return errs.NewValueIsRequiredError("pickupTime")
	}
	if pickupTime.Before(createdAt) {
		return errs.NewValueIsInvalidErrorWithCause("pickupTime",
			fmt.Errorf("pickup time %s is before creation time %s", pickupTime, createdAt))
	}
	o.createdAt = createdAt
	o.pickupTime = pickupTime
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
