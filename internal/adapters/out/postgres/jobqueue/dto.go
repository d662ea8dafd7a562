// Package jobqueue implements the durable order scheduling queue on top of
// Postgres. Jobs survive restarts and are claimed with row locks, so the
// queue delivers each job at least once without an external broker.
package jobqueue

import (
	"time"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/ports"

	"github.com/google/uuid"
)

// Job lifecycle states. A claimed pending job is in flight; clearing
// claimed_at releases it back to the pool.
const (
	jobStatusPending = "PENDING"
	jobStatusFailed  = "FAILED"
)

// JobDTO represents the database structure for queued scheduling jobs.
type JobDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type          string
	UserID        uuid.UUID `gorm:"type:uuid"`
	CurryQuantity int
	NaanQuantity  int
	SubmittedAt   time.Time
	Status        string `gorm:"index"`
	Attempts      int
	NextAttemptAt time.Time `gorm:"index"`
	ClaimedAt     *time.Time
	LastError     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for queued jobs.
func (JobDTO) TableName() string {
	return "order_jobs"
}

// fromJob converts a queue job to its database representation.
func fromJob(job ports.ScheduleOrderJob, now time.Time) JobDTO {
	return JobDTO{
		ID:            job.ID.Bytes(),
		Type:          job.Type,
		UserID:        job.UserID.Bytes(),
		CurryQuantity: job.CurryQuantity,
		NaanQuantity:  job.NaanQuantity,
		SubmittedAt:   job.SubmittedAt,
		Status:        jobStatusPending,
		Attempts:      job.Attempt,
		NextAttemptAt: now,
	}
}

// toJob converts a database DTO to a queue job. The attempt number is the
// one about to run, not the count already spent.
func toJob(dto JobDTO) (ports.ScheduleOrderJob, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.ScheduleOrderJob{}, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return ports.ScheduleOrderJob{}, err
	}

	return ports.ScheduleOrderJob{
		ID:            id,
		Type:          dto.Type,
		UserID:        userID,
		CurryQuantity: dto.CurryQuantity,
		NaanQuantity:  dto.NaanQuantity,
		SubmittedAt:   dto.SubmittedAt,
		Attempt:       dto.Attempts + 1,
	}, nil
}
