package jobs

import (
	"context"
	"log/slog"
	"time"

	"foodtruck/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// stuckClaimAge is how long a claim may be held before the monitor assumes
// the worker that took it died and releases the job.
const stuckClaimAge = 5 * time.Minute

// FailedJobMonitorJob keeps the queue healthy. Runs every minute, releases
// claims abandoned by dead workers and reports jobs parked after exhausting
// their retries so an operator can inspect them.
type FailedJobMonitorJob struct {
	consumer ports.QueueConsumer
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewFailedJobMonitorJob creates a new monitor for the order job queue.
func NewFailedJobMonitorJob(consumer ports.QueueConsumer, logger *slog.Logger) *FailedJobMonitorJob {
	return &FailedJobMonitorJob{
		consumer: consumer,
		cron:     cron.New(),
		logger:   logger.With("component", "failed_job_monitor"),
	}
}

// Start begins the monitor job to run every minute.
func (j *FailedJobMonitorJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		j.tick(ctx)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Failed job monitor started (running every minute)")
	return nil
}

// Stop stops the monitor job.
func (j *FailedJobMonitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Failed job monitor stopped")
}

func (j *FailedJobMonitorJob) tick(ctx context.Context) {
	reclaimed, err := j.consumer.ReclaimStuck(ctx, stuckClaimAge)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to reclaim stuck jobs", "error", err)
	} else if reclaimed > 0 {
		j.logger.WarnContext(ctx, "Released stuck job claims", "count", reclaimed)
	}

	failed, err := j.consumer.ListFailed(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list parked jobs", "error", err)
		return
	}

	for _, job := range failed {
		j.logger.WarnContext(ctx, "Job parked after exhausting retries",
			"jobId", job.JobID,
			"type", job.Type,
			"userId", job.UserID,
			"attempts", job.Attempts,
			"lastError", job.LastError,
			"failedAt", job.FailedAt.Format(time.RFC3339))
	}
}
