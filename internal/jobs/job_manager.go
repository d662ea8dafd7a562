package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"foodtruck/internal/core/application/usecases/commands"
	"foodtruck/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderSchedulingJob  *OrderSchedulingJob
	failedJobMonitorJob *FailedJobMonitorJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the queue consumer and the scheduling handler as dependencies
// to wire up the job execution.
func NewJobManager(
	consumer ports.QueueConsumer,
	scheduleHandler commands.ScheduleOrderCommandHandler,
	location *time.Location,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderSchedulingJob:  NewOrderSchedulingJob(consumer, scheduleHandler, location, logger),
		failedJobMonitorJob: NewFailedJobMonitorJob(consumer, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderSchedulingJob.Start(); err != nil {
		return fmt.Errorf("failed to start order scheduling job: %w", err)
	}

	if err := jm.failedJobMonitorJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.orderSchedulingJob.Stop()
		return fmt.Errorf("failed to start failed job monitor: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.failedJobMonitorJob.Stop()
	jm.orderSchedulingJob.Stop()
}
