package amqpqueue

import (
	"context"
	"encoding/json"
	"time"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/ports"
	"foodtruck/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// jobMessage is the wire form of a scheduling job.
type jobMessage struct {
	JobID         string    `json:"jobId"`
	Type          string    `json:"type"`
	UserID        string    `json:"userId"`
	CurryQuantity int       `json:"curryQuantity"`
	NaanQuantity  int       `json:"naanQuantity"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

func messageFromJob(job ports.ScheduleOrderJob) jobMessage {
	return jobMessage{
		JobID:         job.ID.String(),
		Type:          job.Type,
		UserID:        job.UserID.String(),
		CurryQuantity: job.CurryQuantity,
		NaanQuantity:  job.NaanQuantity,
		SubmittedAt:   job.SubmittedAt,
	}
}

func (m jobMessage) toJob(attempt int) (ports.ScheduleOrderJob, error) {
	id, err := kernel.UUIDFromString(m.JobID)
	if err != nil {
		return ports.ScheduleOrderJob{}, err
	}

	userID, err := kernel.UUIDFromString(m.UserID)
	if err != nil {
		return ports.ScheduleOrderJob{}, err
	}

	return ports.ScheduleOrderJob{
		ID:            id,
		Type:          m.Type,
		UserID:        userID,
		CurryQuantity: m.CurryQuantity,
		NaanQuantity:  m.NaanQuantity,
		SubmittedAt:   m.SubmittedAt,
		Attempt:       attempt,
	}, nil
}

// Queue implements ports.OrderQueue over the broker. Messages are published
// persistent, so an accepted job survives a broker restart.
type Queue struct {
	client *Client
}

// NewQueue creates a broker-backed order queue.
func NewQueue(client *Client) *Queue {
	return &Queue{client: client}
}

// Enqueue publishes a scheduling job to the work queue.
func (q *Queue) Enqueue(ctx context.Context, job ports.ScheduleOrderJob) (ports.JobHandle, error) {
	if err := job.ID.Validate(); err != nil {
		return ports.JobHandle{}, err
	}
	if err := job.UserID.Validate(); err != nil {
		return ports.JobHandle{}, err
	}
	if job.Type == "" {
		return ports.JobHandle{}, errs.NewValueIsRequiredError("jobType")
	}

	body, err := json.Marshal(messageFromJob(job))
	if err != nil {
		return ports.JobHandle{}, err
	}

	err = q.client.Channel().PublishWithContext(ctx, "", QueueName, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    job.ID.String(),
		Timestamp:    time.Now().UTC(),
		Headers:      amqp.Table{attemptHeader: int32(0)},
		Body:         body,
	})
	if err != nil {
		return ports.JobHandle{}, err
	}

	return ports.JobHandle{
		JobID:  job.ID,
		Status: ports.JobStatusPending,
	}, nil
}
