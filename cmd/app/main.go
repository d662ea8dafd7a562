package main

import (
	"context"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"strconv"
	"time"

	"foodtruck/cmd"
	"foodtruck/internal/adapters/in/http"
	"foodtruck/internal/adapters/out/amqpqueue"
	"foodtruck/internal/adapters/out/postgres/jobqueue"
	"foodtruck/internal/adapters/out/postgres/orderrepo"
	"foodtruck/internal/adapters/out/postgres/truckrepo"
	"foodtruck/internal/core/application/usecases/commands"
	"foodtruck/internal/core/ports"
	"foodtruck/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const amqpConsumerPrefetch = 10

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	location, err := time.LoadLocation(configs.Timezone)
	if err != nil {
		log.Fatalf("Unknown timezone %q: %v", configs.Timezone, err)
	}

	gormDB := mustOpenDB(configs)

	policy := ports.RetryPolicy{
		MaxAttempts:  configs.QueueMaxAttempts,
		InitialDelay: configs.QueueRetryDelay,
	}

	var queue ports.OrderQueue
	var amqpClient *amqpqueue.Client
	switch configs.QueueDriver {
	case cmd.QueueDriverAmqp:
		amqpClient, err = amqpqueue.Dial(configs.AmqpURL)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer amqpClient.Close()
		queue = amqpqueue.NewQueue(amqpClient)
	case cmd.QueueDriverPostgres:
		queue = jobqueue.NewGormOrderQueue(gormDB, policy)
	default:
		log.Fatalf("Unknown queue driver %q", configs.QueueDriver)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, queue, location, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	scheduleHandler := app.CreateScheduleOrderCommandHandler()

	if configs.QueueDriver == cmd.QueueDriverAmqp {
		consumer := amqpqueue.NewConsumer(amqpClient, func(ctx context.Context, job ports.ScheduleOrderJob) error {
			command, err := commands.NewScheduleOrderCommand(
				job.ID, job.UserID, job.CurryQuantity, job.NaanQuantity, job.SubmittedAt)
			if err != nil {
				return err
			}
			_, err = scheduleHandler.Handle(ctx, command)
			return err
		}, policy, amqpConsumerPrefetch, logger)

		consumerCtx, cancelConsumer := context.WithCancel(context.Background())
		defer cancelConsumer()
		go func() {
			if err := consumer.Run(consumerCtx); err != nil {
				log.Fatalf("AMQP consumer stopped: %v", err)
			}
		}()
	} else {
		jobManager := jobs.NewJobManager(app.CreateQueueConsumer(), scheduleHandler, location, logger)
		if err := jobManager.StartAll(); err != nil {
			log.Fatalf("Failed to start jobs: %v", err)
		}
		defer jobManager.StopAll()
	}

	startWebServer(&app, configs.HTTPPort)
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&truckrepo.TruckDTO{},
		&jobqueue.JobDTO{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}

	return cmd.Config{
		HTTPPort:         envOrDefault("HTTP_PORT", "8080"),
		DBHost:           mustEnv("DB_HOST"),
		DBPort:           mustEnv("DB_PORT"),
		DBUser:           mustEnv("DB_USER"),
		DBPassword:       mustEnv("DB_PASSWORD"),
		DBName:           mustEnv("DB_NAME"),
		DBSslMode:        envOrDefault("DB_SSLMODE", "disable"),
		QueueDriver:      envOrDefault("QUEUE_DRIVER", cmd.QueueDriverPostgres),
		AmqpURL:          os.Getenv("AMQP_URL"),
		JWTSecret:        mustEnv("JWT_SECRET"),
		NaanUnitTime:     durationOrDefault("NAAN_UNIT_TIME", 3*time.Minute),
		CurryUnitTime:    durationOrDefault("CURRY_UNIT_TIME", 20*time.Second),
		QueueMaxAttempts: intOrDefault("QUEUE_MAX_ATTEMPTS", 3),
		QueueRetryDelay:  durationOrDefault("QUEUE_RETRY_DELAY", time.Second),
		LockTimeout:      durationOrDefault("LOCK_TIMEOUT", 5*time.Second),
		Timezone:         envOrDefault("TIMEZONE", "Asia/Seoul"),
	}
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Missing required environment variable %s", key)
	}
	return value
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid duration in %s: %v", key, err)
	}
	return value
}

func intOrDefault(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid integer in %s: %v", key, err)
	}
	return value
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := http.NewServer(
		app.CreateSubmitOrderCommandHandler(),
		app.CreateMarkOrderReadyCommandHandler(),
		app.CreateGetOrdersByStatusQueryHandler(),
		app.CreateGetUserOrdersQueryHandler(),
		app.IdentityProvider(),
		app.NotifyHub(),
		app.Location(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
