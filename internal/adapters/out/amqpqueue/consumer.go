package amqpqueue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"foodtruck/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// JobHandler processes one scheduling job. A non-nil error triggers a retry
// or, once the attempt budget is spent, dead-lettering.
type JobHandler func(ctx context.Context, job ports.ScheduleOrderJob) error

// Consumer pulls scheduling jobs off the broker queue and drives them
// through the handler with the retry policy's backoff. Retries are
// republished with an incremented attempt header; exhausted and
// undecodable deliveries are rejected into the dead-letter queue.
type Consumer struct {
	client   *Client
	handler  JobHandler
	policy   ports.RetryPolicy
	prefetch int
	logger   *slog.Logger
}

// NewConsumer creates a consumer for the scheduling work queue.
func NewConsumer(client *Client, handler JobHandler, policy ports.RetryPolicy, prefetch int, logger *slog.Logger) *Consumer {
	if prefetch <= 0 {
		prefetch = 1
	}

	return &Consumer{
		client:   client,
		handler:  handler,
		policy:   policy,
		prefetch: prefetch,
		logger:   logger.With("component", "amqp_consumer"),
	}
}

// Run consumes until the context is canceled or the delivery channel
// closes. It acknowledges manually, so an unprocessed job is redelivered
// after a crash.
func (c *Consumer) Run(ctx context.Context) error {
	ch := c.client.Channel()
	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		return err
	}

	deliveries, err := ch.Consume(QueueName, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	c.logger.Info("consuming scheduling jobs", "queue", QueueName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return amqp.ErrClosed
			}
			c.process(ctx, delivery)
		}
	}
}

func (c *Consumer) process(ctx context.Context, delivery amqp.Delivery) {
	attempt := attemptFromHeaders(delivery.Headers) + 1

	var msg jobMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		c.logger.Error("undecodable job, dead-lettering", "error", err)
		_ = delivery.Nack(false, false)
		return
	}

	job, err := msg.toJob(attempt)
	if err != nil {
		c.logger.Error("invalid job payload, dead-lettering", "jobId", msg.JobID, "error", err)
		_ = delivery.Nack(false, false)
		return
	}

	if job.Type != ports.JobTypeScheduleOrder {
		c.logger.Error("unknown job type, dead-lettering", "jobId", msg.JobID, "type", job.Type)
		_ = delivery.Nack(false, false)
		return
	}

	if err = c.handler(ctx, job); err == nil {
		_ = delivery.Ack(false)
		return
	}

	if c.policy.Exhausted(attempt) {
		c.logger.Error("job failed, retries exhausted", "jobId", msg.JobID, "attempt", attempt, "error", err)
		_ = delivery.Nack(false, false)
		return
	}

	c.logger.Warn("job failed, scheduling retry", "jobId", msg.JobID, "attempt", attempt, "error", err)
	c.retry(ctx, delivery, msg, attempt)
}

// retry waits out the backoff and republishes the job with the incremented
// attempt header, then acknowledges the original delivery.
func (c *Consumer) retry(ctx context.Context, delivery amqp.Delivery, msg jobMessage, attempt int) {
	timer := time.NewTimer(c.policy.Delay(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		// Leave the delivery unacked so the broker redelivers it.
		_ = delivery.Nack(false, true)
		return
	case <-timer.C:
	}

	body, err := json.Marshal(msg)
	if err != nil {
		_ = delivery.Nack(false, false)
		return
	}

	err = c.client.Channel().PublishWithContext(ctx, "", QueueName, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    msg.JobID,
		Timestamp:    time.Now().UTC(),
		Headers:      amqp.Table{attemptHeader: int32(attempt)},
		Body:         body,
	})
	if err != nil {
		// Could not republish; requeue the original attempt instead.
		_ = delivery.Nack(false, true)
		return
	}

	_ = delivery.Ack(false)
}

func attemptFromHeaders(headers amqp.Table) int {
	raw, ok := headers[attemptHeader]
	if !ok {
		return 0
	}

	switch v := raw.(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
