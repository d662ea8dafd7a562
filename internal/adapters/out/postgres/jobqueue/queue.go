package jobqueue

import (
	"context"
	"time"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/ports"
	"foodtruck/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderQueue implements both sides of the durable queue contract:
// ports.OrderQueue for submitters and ports.QueueConsumer for workers.
//
// Claiming uses FOR UPDATE SKIP LOCKED inside a short transaction, so any
// number of workers can poll the same table without handing the same job to
// two of them.
type GormOrderQueue struct {
	db     *gorm.DB
	policy ports.RetryPolicy
}

// NewGormOrderQueue creates a Postgres-backed order queue.
func NewGormOrderQueue(db *gorm.DB, policy ports.RetryPolicy) *GormOrderQueue {
	return &GormOrderQueue{
		db:     db,
		policy: policy,
	}
}

// Enqueue durably stores a scheduling job. Once this returns without error
// the job will eventually be processed, even across restarts.
func (q *GormOrderQueue) Enqueue(ctx context.Context, job ports.ScheduleOrderJob) (ports.JobHandle, error) {
	if err := job.ID.Validate(); err != nil {
		return ports.JobHandle{}, err
	}
	if err := job.UserID.Validate(); err != nil {
		return ports.JobHandle{}, err
	}
	if job.Type == "" {
		return ports.JobHandle{}, errs.NewValueIsRequiredError("jobType")
	}

	dto := fromJob(job, time.Now())
	if err := q.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return ports.JobHandle{}, err
	}

	return ports.JobHandle{
		JobID:  job.ID,
		Status: ports.JobStatusPending,
	}, nil
}

// ClaimDue claims up to limit due jobs for this worker.
func (q *GormOrderQueue) ClaimDue(ctx context.Context, limit int) ([]ports.ScheduleOrderJob, error) {
	var dtos []JobDTO

	err := q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ? AND claimed_at IS NULL AND next_attempt_at <= now()", jobStatusPending).
			Order("next_attempt_at").
			Limit(limit).
			Find(&dtos).Error
		if err != nil {
			return err
		}

		if len(dtos) == 0 {
			return nil
		}

		ids := make([]any, 0, len(dtos))
		for _, dto := range dtos {
			ids = append(ids, dto.ID)
		}

		return tx.Model(&JobDTO{}).
			Where("id IN ?", ids).
			Update("claimed_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}

	jobs := make([]ports.ScheduleOrderJob, 0, len(dtos))
	for _, dto := range dtos {
		job, jobErr := toJob(dto)
		if jobErr != nil {
			return nil, jobErr
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// Ack removes a successfully processed job.
func (q *GormOrderQueue) Ack(ctx context.Context, jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	result := q.db.WithContext(ctx).Delete(&JobDTO{}, "id = ?", jobID.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("job", jobID.String())
	}
	return nil
}

// Nack records a failed attempt and either releases the job for a delayed
// retry or parks it as failed when the attempt budget is spent.
func (q *GormOrderQueue) Nack(ctx context.Context, job ports.ScheduleOrderJob, cause error) error {
	if err := job.ID.Validate(); err != nil {
		return err
	}

	lastError := ""
	if cause != nil {
		lastError = cause.Error()
	}

	updates := map[string]any{
		"attempts":   job.Attempt,
		"claimed_at": nil,
		"last_error": lastError,
	}
	if q.policy.Exhausted(job.Attempt) {
		updates["status"] = jobStatusFailed
	} else {
		updates["next_attempt_at"] = time.Now().Add(q.policy.Delay(job.Attempt))
	}

	result := q.db.WithContext(ctx).Model(&JobDTO{}).Where("id = ?", job.ID.Bytes()).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("job", job.ID.String())
	}
	return nil
}

// Fail parks a job immediately, bypassing remaining retries.
func (q *GormOrderQueue) Fail(ctx context.Context, jobID kernel.UUID, reason string) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	result := q.db.WithContext(ctx).Model(&JobDTO{}).Where("id = ?", jobID.Bytes()).Updates(map[string]any{
		"status":     jobStatusFailed,
		"claimed_at": nil,
		"last_error": reason,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("job", jobID.String())
	}
	return nil
}

// ListFailed returns parked jobs, oldest first.
func (q *GormOrderQueue) ListFailed(ctx context.Context) ([]ports.FailedJob, error) {
	var dtos []JobDTO
	err := q.db.WithContext(ctx).
		Where("status = ?", jobStatusFailed).
		Order("updated_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	failed := make([]ports.FailedJob, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		userID, idErr := kernel.UUIDFromBytes(dto.UserID[:])
		if idErr != nil {
			return nil, idErr
		}

		failed = append(failed, ports.FailedJob{
			JobID:     id,
			Type:      dto.Type,
			UserID:    userID,
			Attempts:  dto.Attempts,
			LastError: dto.LastError,
			FailedAt:  dto.UpdatedAt,
		})
	}

	return failed, nil
}

// ReclaimStuck releases claims older than the given age. Jobs claimed by a
// worker that crashed mid-flight become claimable again.
func (q *GormOrderQueue) ReclaimStuck(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	result := q.db.WithContext(ctx).Model(&JobDTO{}).
		Where("status = ? AND claimed_at IS NOT NULL AND claimed_at < ?", jobStatusPending, cutoff).
		Update("claimed_at", nil)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
