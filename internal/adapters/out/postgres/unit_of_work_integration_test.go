package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "alltown/internal/adapters/out/postgres"
	"alltown/internal/adapters/out/postgres/deliveryrepo"
	"alltown/internal/adapters/out/postgres/driverrepo"
	"alltown/internal/adapters/out/postgres/loyaltyrepo"
	"alltown/internal/adapters/out/postgres/tenantrepo"
	"alltown/internal/core/domain/model/delivery"
	"alltown/internal/core/domain/model/driver"
	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const loyaltyThreshold = 10

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&tenantrepo.TenantDTO{},
		&driverrepo.DriverDTO{},
		&loyaltyrepo.AccountDTO{},
		&loyaltyrepo.CreditEventDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db, loyaltyThreshold)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE deliveries, tenants, drivers, loyalty_accounts, loyalty_events").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.DeliveryRepository())
	suite.NotNil(uow1.TenantRepository())
	suite.NotNil(uow1.DriverRepository())
	suite.NotNil(uow1.LoyaltyLedger())
	suite.NotNil(uow2.DeliveryRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommittedRequestPersists() {
	ctx := context.Background()
	uow := suite.factory.Create()
	tenantID := kernel.NewUUID()

	request := createTestRequest(tenantID)

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.DeliveryRepository().Add(ctx, request)
	suite.Require().NoError(err)

	retrieved, err := uow.DeliveryRepository().Get(ctx, tenantID, request.ID())
	suite.Require().NoError(err)
	suite.Equal(request.ID(), retrieved.ID())

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err = newUow.DeliveryRepository().Get(ctx, tenantID, request.ID())
	suite.Require().NoError(err)
	suite.Equal(request.ID(), retrieved.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsAllChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	tenantID := kernel.NewUUID()

	request := createTestRequest(tenantID)
	profile := createTestDriver(tenantID)

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.DeliveryRepository().Add(ctx, request)
	suite.Require().NoError(err)

	err = uow.DriverRepository().Add(ctx, profile)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	_, err = newUow.DeliveryRepository().Get(ctx, tenantID, request.ID())
	suite.Require().Error(err, "Request should not exist after rollback")

	_, err = newUow.DriverRepository().Get(ctx, profile.ID())
	suite.Require().Error(err, "Driver should not exist after rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CompletionWorkflow() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()
	customerID := kernel.NewUUID()

	// Seed an available request owned by an authenticated customer.
	seedUow := suite.factory.Create()
	request := createTestRequestForCustomer(tenantID, &customerID)
	err := seedUow.DeliveryRepository().Add(ctx, request)
	suite.Require().NoError(err)

	profile := createTestDriver(tenantID)
	err = seedUow.DriverRepository().Add(ctx, profile)
	suite.Require().NoError(err)

	// Claim, start, and complete within one transaction, crediting loyalty.
	uow := suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	claimed, err := uow.DeliveryRepository().Claim(ctx, tenantID, request.ID(), profile.ID(), time.Now().UTC())
	suite.Require().NoError(err)

	suite.Require().NoError(claimed.Start())
	suite.Require().NoError(claimed.Complete())
	err = uow.DeliveryRepository().Update(ctx, claimed)
	suite.Require().NoError(err)

	err = uow.LoyaltyLedger().CreditCompletion(ctx, tenantID, customerID, claimed.ID())
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify final state with a fresh unit of work.
	newUow := suite.factory.Create()

	final, err := newUow.DeliveryRepository().Get(ctx, tenantID, request.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.StatusCompleted, final.Status())
	suite.Require().NotNil(final.ClaimedBy())
	suite.Equal(profile.ID(), *final.ClaimedBy())

	points, credits, err := newUow.LoyaltyLedger().Balance(ctx, tenantID, customerID)
	suite.Require().NoError(err)
	suite.Equal(1, points)
	suite.Equal(0, credits)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	tenantID := kernel.NewUUID()

	request := createTestRequest(tenantID)

	err := uow.DeliveryRepository().Add(ctx, request)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err := newUow.DeliveryRepository().Get(ctx, tenantID, request.ID())
	suite.Require().NoError(err)
	suite.Equal(request.ID(), retrieved.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionIsolation() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	request1 := createTestRequest(tenantID)
	request2 := createTestRequest(tenantID)

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)
	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.DeliveryRepository().Add(ctx, request1)
	suite.Require().NoError(err)
	err = uow2.DeliveryRepository().Add(ctx, request2)
	suite.Require().NoError(err)

	_, err = uow1.DeliveryRepository().Get(ctx, tenantID, request2.ID())
	suite.Require().Error(err, "UOW1 should not see uncommitted request2")

	_, err = uow2.DeliveryRepository().Get(ctx, tenantID, request1.ID())
	suite.Require().Error(err, "UOW2 should not see uncommitted request1")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)
	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.DeliveryRepository().Get(ctx, tenantID, request1.ID())
	suite.Require().NoError(err, "Request1 should persist after commit")

	_, err = newUow.DeliveryRepository().Get(ctx, tenantID, request2.ID())
	suite.Require().Error(err, "Request2 should not persist after rollback")
}

// createTestRequest creates a valid available request for testing purposes.
func createTestRequest(tenantID kernel.UUID) *delivery.Request {
	return createTestRequestForCustomer(tenantID, nil)
}

// createTestRequestForCustomer creates an available request owned by the
// given customer, or an anonymous one when customerID is nil.
func createTestRequestForCustomer(tenantID kernel.UUID, customerID *kernel.UUID) *delivery.Request {
	now := time.Now().UTC()
	fee, _ := kernel.MoneyFromString("9.50")
	details := delivery.Details{
		CustomerName:    "Pat Winslow",
		CustomerPhone:   "555-0142",
		CustomerEmail:   "pat@example.com",
		PickupAddress:   "12 Harbor St",
		DeliveryAddress: "88 Mill Rd",
		RequestedFor:    now.Add(2 * time.Hour),
		PaymentMethod:   "card",
	}

	request, _ := delivery.NewRequest(kernel.NewUUID(), tenantID, customerID,
		details, decimal.NewFromFloat(4.2), 17, fee, delivery.StatusAvailable, false, now)
	return request
}

// createTestDriver creates an on-duty driver for testing purposes.
func createTestDriver(tenantID kernel.UUID) *driver.Profile {
	profile, _ := driver.RestoreProfile(kernel.NewUUID(), tenantID, "Sam Ortiz", driver.RoleDriver, true)
	return profile
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
