package commands

import (
	"errors"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand represents a customer's request to place an order.
// Quantities are validated up front so that only well-formed requests ever
// reach the scheduling queue.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand(userID, 2, 3)
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//
//	handler := NewSubmitOrderCommandHandler(queue)
//	handle, err := handler.Handle(ctx, cmd)
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	userID        kernel.UUID
	curryQuantity kernel.Quantity
	naanQuantity  kernel.Quantity

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to admit a new order request.
// Validates that the user ID is valid and both quantities are within bounds.
func NewSubmitOrderCommand(userID kernel.UUID, curryQuantity, naanQuantity int) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setCurryQuantity(curryQuantity),
		cmd.setNaanQuantity(naanQuantity),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// UserID returns the identifier of the customer placing the order.
func (c SubmitOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// CurryQuantity returns the requested number of curry portions.
func (c SubmitOrderCommand) CurryQuantity() kernel.Quantity {
	return c.curryQuantity
}

// NaanQuantity returns the requested number of naan portions.
func (c SubmitOrderCommand) NaanQuantity() kernel.Quantity {
	return c.naanQuantity
}

func (c *SubmitOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *SubmitOrderCommand) setCurryQuantity(value int) error {
	quantity, err := kernel.NewQuantity("curryQuantity", value)
	if err != nil {
		return err
	}

	c.curryQuantity = quantity
	return nil
}

func (c *SubmitOrderCommand) setNaanQuantity(value int) error {
	quantity, err := kernel.NewQuantity("naanQuantity", value)
	if err != nil {
		return err
	}

	c.naanQuantity = quantity
	return nil
}
