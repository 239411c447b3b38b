package queries_test

import (
	"context"
	"testing"
	"time"

	"qatmarket/internal/adapters/out/postgres/driverrepo"
	"qatmarket/internal/core/application/usecases/queries"
	"qatmarket/internal/core/domain/model/driver"
	"qatmarket/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetAvailableDriversQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetAvailableDriversQueryHandler
}

func (suite *GetAvailableDriversQueryHandlerTestSuite) SetupSuite() {
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

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&driverrepo.DriverDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetAvailableDriversQueryHandler(db)
}

func (suite *GetAvailableDriversQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetAvailableDriversQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE drivers").Error
	suite.Require().NoError(err)
}

func (suite *GetAvailableDriversQueryHandlerTestSuite) seedDriver(name, vehicleType string, available bool) *driver.Driver {
	aggregate, err := driver.NewDriver(kernel.NewUUID(), name, vehicleType)
	suite.Require().NoError(err)
	if !available {
		aggregate.MarkBusy()
	}

	repository := driverrepo.NewGormDriverRepository(suite.db, noopTracker{})
	suite.Require().NoError(repository.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *GetAvailableDriversQueryHandlerTestSuite) TestHandle_EmptyRoster_ReturnsEmptySlice() {
	query := queries.NewGetAvailableDriversQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetAvailableDriversQueryHandlerTestSuite) TestHandle_ReturnsFreeDriversOrderedByName() {
	charlie := suite.seedDriver("Charlie", "van", true)
	alice := suite.seedDriver("Alice", "motorbike", true)
	suite.seedDriver("Bob", "car", false)

	query := queries.NewGetAvailableDriversQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal("Alice", result[0].Name)
	suite.Equal("motorbike", result[0].VehicleType)
	suite.True(result[0].ID.IsEqual(alice.ID()))

	suite.Equal("Charlie", result[1].Name)
	suite.True(result[1].ID.IsEqual(charlie.ID()))
}

func (suite *GetAvailableDriversQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetAvailableDriversQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetAvailableDriversQuery constructor")
}

func TestGetAvailableDriversQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAvailableDriversQueryHandlerTestSuite))
}
