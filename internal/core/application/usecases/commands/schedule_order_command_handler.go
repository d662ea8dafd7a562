package commands

import (
	"context"
	"errors"
	"time"

	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/core/domain/services"
	"foodtruck/internal/core/ports"
	"foodtruck/internal/pkg/errs"
)

// ScheduleOrderCommandHandler runs the critical section of the pipeline.
// It locks the truck cursor, computes the pickup time, advances the cursor
// and persists the order atomically. The confirmation event goes out only
// after the transaction commits, so customers never see a pickup time that
// was rolled back.
//
// Example:
//
//	handler := NewScheduleOrderCommandHandler(uowFactory, estimator, notifier, loc)
//	pickup, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    // safe to retry, nothing was committed
//	}
type ScheduleOrderCommandHandler struct {
	uowFactory SchedulingUoWFactory
	estimator  services.PrepTimeEstimator
	notifier   ports.Notifier
	location   *time.Location
}

// NewScheduleOrderCommandHandler creates a handler for the scheduling step.
// The location controls how pickup times are rendered in notifications; nil
// falls back to UTC.
func NewScheduleOrderCommandHandler(
	uowFactory SchedulingUoWFactory,
	estimator services.PrepTimeEstimator,
	notifier ports.Notifier,
	location *time.Location,
) ScheduleOrderCommandHandler {
	if location == nil {
		location = time.UTC
	}

	return ScheduleOrderCommandHandler{
		uowFactory: uowFactory,
		estimator:  estimator,
		notifier:   notifier,
		location:   location,
	}
}

// Handle schedules the order and returns its pickup time.
// Any error leaves the truck cursor and the order store untouched, so the
// whole command can be re-run without double-booking preparation time.
func (h ScheduleOrderCommandHandler) Handle(ctx context.Context, cmd ScheduleOrderCommand) (time.Time, error) {
	if err := cmd.Validate(); err != nil {
		return time.Time{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return time.Time{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	truckRepo := uow.TruckRepository()
	orderRepo := uow.OrderRepository()

	// The queue delivers at least once. A redelivered job whose first run
	// already committed must not book preparation time twice, so an order
	// that already exists is treated as done.
	existing, err := orderRepo.Get(ctx, cmd.OrderID())
	if err == nil {
		return existing.PickupTime(), nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return time.Time{}, err
	}

	aggregate, err := truckRepo.GetForUpdate(ctx)
	if err != nil {
		return time.Time{}, err
	}

	prepTime := h.estimator.Estimate(cmd.CurryQuantity(), cmd.NaanQuantity())

	pickupTime, err := aggregate.Schedule(time.Now(), prepTime)
	if err != nil {
		return time.Time{}, err
	}

	if err = truckRepo.Update(ctx, aggregate); err != nil {
		return time.Time{}, err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.UserID(),
		cmd.CurryQuantity(),
		cmd.NaanQuantity(),
		cmd.SubmittedAt(),
		pickupTime,
	)
	if err != nil {
		return time.Time{}, err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return time.Time{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return time.Time{}, err
	}

	h.notifier.Notify(cmd.UserID(), ports.EventOrderConfirmed, ports.OrderEvent{
		OrderID:    cmd.OrderID().String(),
		PickupTime: pickupTime.In(h.location).Format(time.RFC3339),
		Status:     order.Processing.String(),
	})

	return pickupTime, nil
}
