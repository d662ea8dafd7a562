package ports

import (
	"context"
	"time"

	"foodtruck/internal/core/domain/model/kernel"
)

// FailedJob describes a job that exhausted its retry budget and was parked
// for operator inspection.
type FailedJob struct {
	JobID     kernel.UUID
	Type      string
	UserID    kernel.UUID
	Attempts  int
	LastError string
	FailedAt  time.Time
}

// QueueConsumer is the worker-side contract of the durable job queue.
// Claimed jobs stay invisible to other workers until they are acked, nacked
// or reclaimed, which gives at-least-once delivery across crashes.
type QueueConsumer interface {
	// ClaimDue claims up to limit jobs whose retry delay has elapsed.
	// Jobs claimed by one worker are skipped by concurrent claimers.
	// The returned jobs carry the attempt number about to run.
	ClaimDue(ctx context.Context, limit int) ([]ScheduleOrderJob, error)

	// Ack removes a successfully processed job.
	Ack(ctx context.Context, jobID kernel.UUID) error

	// Nack records a failed attempt. The job is released for a later retry
	// with the policy's backoff, or parked as failed when the attempt
	// budget is spent.
	Nack(ctx context.Context, job ScheduleOrderJob, cause error) error

	// Fail parks a job immediately, bypassing remaining retries. Used for
	// jobs that can never succeed, such as an unknown job type.
	Fail(ctx context.Context, jobID kernel.UUID, reason string) error

	// ListFailed returns the parked jobs, oldest first.
	ListFailed(ctx context.Context) ([]FailedJob, error)

	// ReclaimStuck releases claims older than the given age so jobs from
	// crashed workers become claimable again. Returns how many were freed.
	ReclaimStuck(ctx context.Context, olderThan time.Duration) (int64, error)
}
