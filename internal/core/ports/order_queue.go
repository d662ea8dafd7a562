package ports

import (
	"context"
	"time"

	"foodtruck/internal/core/domain/model/kernel"
)

// JobTypeScheduleOrder is the only job type the scheduling pipeline consumes.
const JobTypeScheduleOrder = "schedule_order"

// ScheduleOrderJob is the payload enqueued for each admitted order request.
// It carries everything the scheduling handler needs, so a worker can process
// it without going back to the submitter.
type ScheduleOrderJob struct {
	ID            kernel.UUID
	Type          string
	UserID        kernel.UUID
	CurryQuantity int
	NaanQuantity  int
	SubmittedAt   time.Time
	Attempt       int
}

// JobHandle is what the submitter gets back after a successful enqueue.
// Status is always "PENDING" at this point, the job has not been picked up.
type JobHandle struct {
	JobID  kernel.UUID
	Status string
}

// JobStatusPending is the status reported to clients right after admission.
const JobStatusPending = "PENDING"

// OrderQueue accepts scheduling jobs for asynchronous processing.
// Enqueue must be durable, a job accepted here survives process restarts
// and is delivered at least once.
type OrderQueue interface {
	Enqueue(ctx context.Context, job ScheduleOrderJob) (JobHandle, error)
}

// RetryPolicy controls how failed scheduling jobs are retried.
// The delay before attempt n is InitialDelay doubled (n-1) times.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

// DefaultRetryPolicy returns the retry policy used by the scheduling queue:
// three attempts with an initial delay of one second, doubling each time.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: time.Second,
	}
}

// Delay returns how long to wait before re-running a job that has already
// been attempted attempt times. Delay(1) is InitialDelay, Delay(2) is twice
// that, and so on.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := p.InitialDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}
	return delay
}

// Exhausted reports whether a job that has been attempted attempt times
// has no retries left.
func (p RetryPolicy) Exhausted(attempt int) bool {
	return attempt >= p.MaxAttempts
}
