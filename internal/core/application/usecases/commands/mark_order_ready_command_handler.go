package commands

import (
	"context"
	"fmt"

	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/core/ports"
)

// MarkOrderReadyCommandHandler completes orders on behalf of operators.
// The status transition is Processing to Completed only; completing an
// already completed order surfaces as a conflict. The customer is notified
// after the transaction commits.
type MarkOrderReadyCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewMarkOrderReadyCommandHandler creates a handler for completing orders.
func NewMarkOrderReadyCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) MarkOrderReadyCommandHandler {
	return MarkOrderReadyCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle completes the order and returns its final state.
// Returns an ObjectNotFoundError if the order does not exist and a
// ConflictError if it was already completed.
func (h MarkOrderReadyCommandHandler) Handle(ctx context.Context, cmd MarkOrderReadyCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Complete(); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(aggregate.UserID(), ports.EventOrderReady, ports.OrderEvent{
		OrderID: aggregate.ID().String(),
		Status:  aggregate.Status().String(),
		Message: fmt.Sprintf("Your Order #%s is ready! Come to the truck!", aggregate.ID()),
	})

	return aggregate, nil
}
