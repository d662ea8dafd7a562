package cmd

import "time"

// Queue driver names accepted in QUEUE_DRIVER.
const (
	QueueDriverPostgres = "postgres"
	QueueDriverAmqp     = "amqp"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	QueueDriver string
	AmqpURL     string

	JWTSecret string

	NaanUnitTime  time.Duration
	CurryUnitTime time.Duration

	QueueMaxAttempts int
	QueueRetryDelay  time.Duration
	LockTimeout      time.Duration

	Timezone string
}
