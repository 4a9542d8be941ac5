package queries_test

import (
	"context"
	"testing"
	"time"

	"alltown/internal/adapters/out/postgres/deliveryrepo"
	"alltown/internal/core/application/usecases/queries"
	"alltown/internal/core/domain/model/delivery"
	"alltown/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker is a no-op tracker for seeding test data.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type ListAvailableDeliveriesQueryHandlerTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	handler      queries.ListAvailableDeliveriesQueryHandler
	deliveryRepo *deliveryrepo.GormDeliveryRepository
}

func (suite *ListAvailableDeliveriesQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&deliveryrepo.DeliveryDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewListAvailableDeliveriesQueryHandler(db)
	suite.deliveryRepo = deliveryrepo.NewGormDeliveryRepository(db, &mockAggregateTracker{})
}

func (suite *ListAvailableDeliveriesQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ListAvailableDeliveriesQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE deliveries").Error
	suite.Require().NoError(err)
}

func (suite *ListAvailableDeliveriesQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := suite.newQuery(kernel.NewUUID())

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ListAvailableDeliveriesQueryHandlerTestSuite) TestHandle_ReturnsOldestFirst() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()
	base := time.Now().UTC().Truncate(time.Second)

	newest := suite.seedRequest(ctx, tenantID, delivery.StatusAvailable, base)
	oldest := suite.seedRequest(ctx, tenantID, delivery.StatusAvailable, base.Add(-2*time.Hour))
	middle := suite.seedRequest(ctx, tenantID, delivery.StatusAvailable, base.Add(-time.Hour))

	result, err := suite.handler.Handle(ctx, suite.newQuery(tenantID))

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal(oldest.ID(), result[0].ID)
	suite.Equal(middle.ID(), result[1].ID)
	suite.Equal(newest.ID(), result[2].ID)
}

func (suite *ListAvailableDeliveriesQueryHandlerTestSuite) TestHandle_ExcludesOtherStatusesAndTenants() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()
	now := time.Now().UTC()

	visible := suite.seedRequest(ctx, tenantID, delivery.StatusAvailable, now)
	suite.seedRequest(ctx, tenantID, delivery.StatusPending, now)
	suite.seedRequest(ctx, kernel.NewUUID(), delivery.StatusAvailable, now)

	claimed := suite.seedRequest(ctx, tenantID, delivery.StatusAvailable, now.Add(-time.Hour))
	suite.Require().NoError(claimed.Claim(kernel.NewUUID(), now))
	suite.Require().NoError(suite.deliveryRepo.Update(ctx, claimed))

	result, err := suite.handler.Handle(ctx, suite.newQuery(tenantID))

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(visible.ID(), result[0].ID)
}

func (suite *ListAvailableDeliveriesQueryHandlerTestSuite) TestHandle_MapsAllFields() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()
	now := time.Now().UTC().Truncate(time.Second)

	seeded := suite.seedRequest(ctx, tenantID, delivery.StatusAvailable, now)

	result, err := suite.handler.Handle(ctx, suite.newQuery(tenantID))

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)

	row := result[0]
	suite.Equal(seeded.ID(), row.ID)
	suite.Equal("Pat Winslow", row.CustomerName)
	suite.Equal("12 Harbor St", row.PickupAddress)
	suite.Equal("88 Mill Rd", row.DeliveryAddress)
	suite.True(decimal.NewFromFloat(4.2).Equal(row.DistanceMiles))
	suite.Equal(17, row.DurationMinutes)
	suite.Equal("9.50", row.Fee)
	suite.False(row.Rush)
	suite.WithinDuration(now, row.CreatedAt, time.Second)
}

func (suite *ListAvailableDeliveriesQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.ListAvailableDeliveriesQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewListAvailableDeliveriesQuery constructor")
}

func (suite *ListAvailableDeliveriesQueryHandlerTestSuite) newQuery(
	tenantID kernel.UUID,
) queries.ListAvailableDeliveriesQuery {
	query, err := queries.NewListAvailableDeliveriesQuery(tenantID)
	suite.Require().NoError(err)
	return query
}

func (suite *ListAvailableDeliveriesQueryHandlerTestSuite) seedRequest(
	ctx context.Context, tenantID kernel.UUID, status delivery.Status, createdAt time.Time,
) *delivery.Request {
	request := newSeedRequest(suite.T(), tenantID, status, createdAt)
	suite.Require().NoError(suite.deliveryRepo.Add(ctx, request))
	return request
}

// newSeedRequest builds a request with fixed details for query tests.
func newSeedRequest(
	t *testing.T, tenantID kernel.UUID, status delivery.Status, createdAt time.Time,
) *delivery.Request {
	t.Helper()

	fee, err := kernel.MoneyFromString("9.50")
	require.NoError(t, err)

	details := delivery.Details{
		CustomerName:    "Pat Winslow",
		CustomerPhone:   "555-0142",
		CustomerEmail:   "pat@example.com",
		PickupAddress:   "12 Harbor St",
		DeliveryAddress: "88 Mill Rd",
		RequestedFor:    createdAt.Add(2 * time.Hour),
		PaymentMethod:   "card",
	}

	request, err := delivery.NewRequest(kernel.NewUUID(), tenantID, nil,
		details, decimal.NewFromFloat(4.2), 17, fee, status, false, createdAt)
	require.NoError(t, err)
	return request
}

func TestListAvailableDeliveriesQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListAvailableDeliveriesQueryHandlerTestSuite))
}
