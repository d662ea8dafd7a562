package queries_test

import (
	"context"
	"testing"
	"time"

	"foodtruck/internal/adapters/out/postgres/orderrepo"
	"foodtruck/internal/core/application/usecases/queries"
	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetUserOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetUserOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetUserOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	suite.handler = queries.NewGetUserOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetUserOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetUserOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *GetUserOrdersQueryHandlerTestSuite) TestHandle_ReturnsOnlyOwnOrders() {
	ctx := context.Background()
	owner := kernel.NewUUID()
	other := kernel.NewUUID()

	mine := makeOrder(&suite.Suite, owner, 5*time.Minute, false)
	notMine := makeOrder(&suite.Suite, other, 10*time.Minute, false)
	for _, o := range []*order.Order{mine, notMine} {
		suite.Require().NoError(suite.orderRepo.Add(ctx, o))
	}

	query, err := queries.NewGetUserOrdersQuery(owner)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(mine.ID()))
	suite.True(result[0].UserID.IsEqual(owner))
}

func (suite *GetUserOrdersQueryHandlerTestSuite) TestHandle_StatusFilter() {
	ctx := context.Background()
	owner := kernel.NewUUID()

	inProgress := makeOrder(&suite.Suite, owner, 5*time.Minute, false)
	done := makeOrder(&suite.Suite, owner, 10*time.Minute, true)
	for _, o := range []*order.Order{inProgress, done} {
		suite.Require().NoError(suite.orderRepo.Add(ctx, o))
	}

	query, err := queries.NewGetUserOrdersByStatusQuery(owner, order.Processing)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(inProgress.ID()))
}

func (suite *GetUserOrdersQueryHandlerTestSuite) TestHandle_SortedByPickupTime() {
	ctx := context.Background()
	owner := kernel.NewUUID()

	second := makeOrder(&suite.Suite, owner, 20*time.Minute, false)
	first := makeOrder(&suite.Suite, owner, 5*time.Minute, false)
	for _, o := range []*order.Order{second, first} {
		suite.Require().NoError(suite.orderRepo.Add(ctx, o))
	}

	query, err := queries.NewGetUserOrdersQuery(owner)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(first.ID()))
	suite.True(result[1].ID.IsEqual(second.ID()))
}

func (suite *GetUserOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetUserOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
}

func TestGetUserOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetUserOrdersQueryHandlerTestSuite))
}
