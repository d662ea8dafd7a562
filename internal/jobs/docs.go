// Package jobs provides scheduled background tasks for the food truck system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the asynchronous half of order processing.
//
// # Available Jobs
//
// 1. OrderSchedulingJob - Runs every second to claim due jobs from the order
// queue and schedule them against the truck cursor
// 2. FailedJobMonitorJob - Runs every minute to release claims abandoned by
// dead workers and report jobs that exhausted their retries
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(consumer, scheduleHandler, location, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Scheduling failures release the job back to the queue; the queue applies
// the retry delay and parks the job once its attempts are exhausted
// - Jobs with an unknown type or a malformed payload are parked immediately
// since retrying them cannot succeed
// - A lock timeout on the truck cursor is logged at info level as it only
// means another worker held the scheduling critical section
//
// # AMQP Deployments
//
// When the queue driver is RabbitMQ the scheduling work is driven by the
// amqpqueue consumer instead; retries, claims and the dead letter queue are
// handled by the broker, so the manager is not used in that mode.
package jobs
