package cmd

import (
	"log/slog"
	"time"

	"foodtruck/internal/adapters/out/identity"
	"foodtruck/internal/adapters/out/notify"
	"foodtruck/internal/adapters/out/postgres"
	"foodtruck/internal/adapters/out/postgres/jobqueue"
	"foodtruck/internal/core/application/usecases/commands"
	"foodtruck/internal/core/application/usecases/queries"
	"foodtruck/internal/core/domain/services"
	"foodtruck/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	queue      ports.OrderQueue
	estimator  services.PrepTimeEstimator
	identity   *identity.JWTIdentityProvider
	hub        *notify.Hub
	location   *time.Location
	policy     ports.RetryPolicy
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	queue ports.OrderQueue,
	location *time.Location,
	logger *slog.Logger,
) (CompositionRoot, error) {
	estimator, err := services.NewPrepTimeEstimator(configs.NaanUnitTime, configs.CurryUnitTime)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB, configs.LockTimeout),
		queue:      queue,
		estimator:  estimator,
		identity:   identity.NewJWTIdentityProvider(configs.JWTSecret),
		hub:        notify.NewHub(0, logger),
		location:   location,
		policy: ports.RetryPolicy{
			MaxAttempts:  configs.QueueMaxAttempts,
			InitialDelay: configs.QueueRetryDelay,
		},
	}, nil
}

func (c *CompositionRoot) RetryPolicy() ports.RetryPolicy {
	return c.policy
}

func (c *CompositionRoot) IdentityProvider() ports.IdentityProvider {
	return c.identity
}

func (c *CompositionRoot) NotifyHub() *notify.Hub {
	return c.hub
}

func (c *CompositionRoot) Location() *time.Location {
	return c.location
}

func (c *CompositionRoot) CreateQueueConsumer() ports.QueueConsumer {
	return jobqueue.NewGormOrderQueue(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.queue)
}

func (c *CompositionRoot) CreateScheduleOrderCommandHandler() commands.ScheduleOrderCommandHandler {
	var f commands.SchedulingUoWFactory = FuncSchedulingUoWFactory(func() commands.SchedulingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewScheduleOrderCommandHandler(f, c.estimator, c.hub, c.location)
}

func (c *CompositionRoot) CreateMarkOrderReadyCommandHandler() commands.MarkOrderReadyCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkOrderReadyCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.gormDB)
}

type FuncSchedulingUoWFactory func() commands.SchedulingUoW

func (f FuncSchedulingUoWFactory) Create() commands.SchedulingUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
