package commands

import (
	"context"
	"time"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/ports"
)

// SubmitOrderCommandHandler admits order requests into the scheduling queue.
// The handler never touches the database; the order itself is created later
// by the scheduling worker. A request is acknowledged as soon as its job is
// durably enqueued.
//
// Example:
//
//	handler := NewSubmitOrderCommandHandler(queue)
//	cmd, _ := NewSubmitOrderCommand(userID, 2, 3)
//	handle, err := handler.Handle(ctx, cmd)
//	// handle.JobID can be returned to the client for tracking
type SubmitOrderCommandHandler struct {
	queue ports.OrderQueue
}

// NewSubmitOrderCommandHandler creates a handler for order admission.
func NewSubmitOrderCommandHandler(queue ports.OrderQueue) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		queue: queue,
	}
}

// Handle enqueues a scheduling job for the requested order.
// Returns a handle describing the pending job, or an error if the queue
// rejected the job. Nothing is persisted to the order store here.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (ports.JobHandle, error) {
	if err := cmd.Validate(); err != nil {
		return ports.JobHandle{}, err
	}

	job := ports.ScheduleOrderJob{
		ID:            kernel.NewUUID(),
		Type:          ports.JobTypeScheduleOrder,
		UserID:        cmd.UserID(),
		CurryQuantity: cmd.CurryQuantity().Value(),
		NaanQuantity:  cmd.NaanQuantity().Value(),
		SubmittedAt:   time.Now(),
	}

	return h.queue.Enqueue(ctx, job)
}
