package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"foodtruck/internal/adapters/out/postgres/truckrepo"
	"foodtruck/internal/core/application/usecases/commands"
	"foodtruck/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// claimBatchSize caps how many queued orders a single tick pulls from the
// queue. Scheduling serializes on the truck cursor lock anyway, so a small
// batch keeps each tick short.
const claimBatchSize = 10

// OrderSchedulingJob drains the order job queue. Runs every second, claims
// due jobs and pushes each one through the scheduling command handler.
type OrderSchedulingJob struct {
	consumer ports.QueueConsumer
	handler  commands.ScheduleOrderCommandHandler
	location *time.Location
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderSchedulingJob creates a new job that schedules queued orders.
// The location is only used to render pickup times in log output.
func NewOrderSchedulingJob(
	consumer ports.QueueConsumer,
	handler commands.ScheduleOrderCommandHandler,
	location *time.Location,
	logger *slog.Logger,
) *OrderSchedulingJob {
	if location == nil {
		location = time.UTC
	}

	return &OrderSchedulingJob{
		consumer: consumer,
		handler:  handler,
		location: location,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_scheduling_job"),
	}
}

// Start begins the order scheduling job to run every second.
func (j *OrderSchedulingJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if err := j.drain(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Order scheduling tick failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order scheduling job started (running every second)")
	return nil
}

// Stop stops the order scheduling job.
func (j *OrderSchedulingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order scheduling job stopped")
}

func (j *OrderSchedulingJob) drain(ctx context.Context) error {
	claimed, err := j.consumer.ClaimDue(ctx, claimBatchSize)
	if err != nil {
		return err
	}

	for _, job := range claimed {
		j.process(ctx, job)
	}

	return nil
}

func (j *OrderSchedulingJob) process(ctx context.Context, job ports.ScheduleOrderJob) {
	if job.Type != ports.JobTypeScheduleOrder {
		j.logger.WarnContext(ctx, "Parking job of unknown type",
			"jobId", job.ID, "type", job.Type)
		if err := j.consumer.Fail(ctx, job.ID, "unknown job type: "+job.Type); err != nil {
			j.logger.ErrorContext(ctx, "Failed to park job", "jobId", job.ID, "error", err)
		}
		return
	}

	cmd, err := commands.NewScheduleOrderCommand(
		job.ID, job.UserID, job.CurryQuantity, job.NaanQuantity, job.SubmittedAt)
	if err != nil {
		// A malformed payload will not get better on retry.
		if failErr := j.consumer.Fail(ctx, job.ID, err.Error()); failErr != nil {
			j.logger.ErrorContext(ctx, "Failed to park job", "jobId", job.ID, "error", failErr)
		}
		return
	}

	pickup, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		if errors.Is(err, truckrepo.ErrLockTimeout) {
			j.logger.InfoContext(ctx, "Truck cursor busy, releasing job for retry",
				"jobId", job.ID, "attempt", job.Attempt)
		} else {
			j.logger.ErrorContext(ctx, "Order scheduling failed",
				"jobId", job.ID, "attempt", job.Attempt, "error", err)
		}
		if nackErr := j.consumer.Nack(ctx, job, err); nackErr != nil {
			j.logger.ErrorContext(ctx, "Failed to release job", "jobId", job.ID, "error", nackErr)
		}
		return
	}

	if err := j.consumer.Ack(ctx, job.ID); err != nil {
		j.logger.ErrorContext(ctx, "Failed to ack job", "jobId", job.ID, "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Order scheduled",
		"orderId", job.ID,
		"pickupTime", pickup.In(j.location).Format(time.RFC3339))
}
