package commands

import (
	"errors"
	"time"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/pkg/guard"
)

var (
	ErrScheduleOrderCommandIsNotConstructed = errors.New(
		"ScheduleOrderCommand must be created via NewScheduleOrderCommand constructor",
	)
	ErrSubmittedAtIsRequired = errors.New("submittedAt is required")
)

// ScheduleOrderCommand carries an admitted order request from the queue into
// the scheduling engine. The order ID is the job ID assigned at admission, so
// a retried job lands on the same order identity.
type ScheduleOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	userID        kernel.UUID
	curryQuantity kernel.Quantity
	naanQuantity  kernel.Quantity
	submittedAt   time.Time

	guard guard.ConstructorGuard
}

// NewScheduleOrderCommand creates a command to schedule an admitted order.
// Quantities are re-validated here because the job payload crossed a process
// boundary since admission.
func NewScheduleOrderCommand(
	orderID kernel.UUID,
	userID kernel.UUID,
	curryQuantity, naanQuantity int,
	submittedAt time.Time,
) (ScheduleOrderCommand, error) {
	cmd := ScheduleOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
		cmd.setCurryQuantity(curryQuantity),
		cmd.setNaanQuantity(naanQuantity),
		cmd.setSubmittedAt(submittedAt),
	); err != nil {
		return ScheduleOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ScheduleOrderCommand) Validate() error {
	return c.guard.Validate(ErrScheduleOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the scheduled order will be created under.
func (c ScheduleOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the identifier of the customer who placed the order.
func (c ScheduleOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// CurryQuantity returns the requested number of curry portions.
func (c ScheduleOrderCommand) CurryQuantity() kernel.Quantity {
	return c.curryQuantity
}

// NaanQuantity returns the requested number of naan portions.
func (c ScheduleOrderCommand) NaanQuantity() kernel.Quantity {
	return c.naanQuantity
}

// SubmittedAt returns the time the request was admitted.
func (c ScheduleOrderCommand) SubmittedAt() time.Time {
	return c.submittedAt
}

func (c *ScheduleOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ScheduleOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *ScheduleOrderCommand) setCurryQuantity(value int) error {
	quantity, err := kernel.NewQuantity("curryQuantity", value)
	if err != nil {
		return err
	}

	c.curryQuantity = quantity
	return nil
}

func (c *ScheduleOrderCommand) setNaanQuantity(value int) error {
	quantity, err := kernel.NewQuantity("naanQuantity", value)
	if err != nil {
		return err
	}

	c.naanQuantity = quantity
	return nil
}

func (c *ScheduleOrderCommand) setSubmittedAt(submittedAt time.Time) error {
	if submittedAt.IsZero() {
		return ErrSubmittedAtIsRequired
	}

	c.submittedAt = submittedAt
	return nil
}
