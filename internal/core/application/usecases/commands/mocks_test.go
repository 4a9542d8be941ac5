package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"alltown/internal/core/application/usecases/commands"
	"alltown/internal/core/domain/model/delivery"
	"alltown/internal/core/domain/model/driver"
	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/core/domain/model/tenant"
	"alltown/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, r *delivery.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, r *delivery.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*delivery.Request, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Request), args.Error(1)
}

func (m *MockDeliveryRepository) GetAllAvailable(_ context.Context, _ kernel.UUID) ([]*delivery.Request, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockDeliveryRepository) Claim(
	ctx context.Context, tenantID, id, driverID kernel.UUID, at time.Time,
) (*delivery.Request, error) {
	args := m.Called(ctx, tenantID, id, driverID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Request), args.Error(1)
}

func (m *MockDeliveryRepository) ReleaseStaleClaims(ctx context.Context, cutoff time.Time) ([]kernel.UUID, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockTenantRepository struct{ mock.Mock }

func (m *MockTenantRepository) Add(ctx context.Context, t *tenant.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetBySubdomain(_ context.Context, _ string) (*tenant.Tenant, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockTenantRepository) GetByCustomDomain(_ context.Context, _ string) (*tenant.Tenant, error) {
	return nil, errors.New("not implemented in mock")
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(_ context.Context, _ *driver.Profile) error    { return nil }
func (m *MockDriverRepository) Update(_ context.Context, _ *driver.Profile) error { return nil }

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Profile), args.Error(1)
}

type MockLoyaltyLedger struct{ mock.Mock }

func (m *MockLoyaltyLedger) SpendFreeDelivery(ctx context.Context, tenantID, customerUserID kernel.UUID) error {
	args := m.Called(ctx, tenantID, customerUserID)
	return args.Error(0)
}

func (m *MockLoyaltyLedger) CreditCompletion(ctx context.Context, tenantID, customerUserID, deliveryID kernel.UUID) error {
	args := m.Called(ctx, tenantID, customerUserID, deliveryID)
	return args.Error(0)
}

func (m *MockLoyaltyLedger) Balance(_ context.Context, _, _ kernel.UUID) (int, int, error) {
	return 0, 0, errors.New("not implemented in mock")
}

type MockGeoClient struct{ mock.Mock }

func (m *MockGeoClient) EstimateRoute(ctx context.Context, pickup, dropoff string) (ports.RouteEstimate, error) {
	args := m.Called(ctx, pickup, dropoff)
	return args.Get(0).(ports.RouteEstimate), args.Error(1)
}

// txMock provides the shared transaction lifecycle expectations.
type txMock struct{ mock.Mock }

func (m *txMock) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *txMock) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *txMock) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockDeliveryUoW struct{ txMock }

func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockDeliveryUoW) LoyaltyLedger() ports.LoyaltyLedger {
	args := m.Called()
	return args.Get(0).(ports.LoyaltyLedger)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockClaimUoW struct{ txMock }

func (m *MockClaimUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockClaimUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

type MockClaimUoWFactory struct{ mock.Mock }

func (m *MockClaimUoWFactory) Create() commands.ClaimUoW {
	args := m.Called()
	return args.Get(0).(commands.ClaimUoW)
}

type MockAdvanceUoW struct{ txMock }

func (m *MockAdvanceUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockAdvanceUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockAdvanceUoW) LoyaltyLedger() ports.LoyaltyLedger {
	args := m.Called()
	return args.Get(0).(ports.LoyaltyLedger)
}

type MockAdvanceUoWFactory struct{ mock.Mock }

func (m *MockAdvanceUoWFactory) Create() commands.AdvanceUoW {
	args := m.Called()
	return args.Get(0).(commands.AdvanceUoW)
}

type MockTenantUoW struct{ txMock }

func (m *MockTenantUoW) TenantRepository() ports.TenantRepository {
	args := m.Called()
	return args.Get(0).(ports.TenantRepository)
}

type MockTenantUoWFactory struct{ mock.Mock }

func (m *MockTenantUoWFactory) Create() commands.TenantUoW {
	args := m.Called()
	return args.Get(0).(commands.TenantUoW)
}

type MockCacheInvalidator struct{ mock.Mock }

func (m *MockCacheInvalidator) ClearAll() {
	m.Called()
}

func testSchedule(t *testing.T) tenant.FeeSchedule {
	t.Helper()

	baseFee, err := kernel.MoneyFromString("5.00")
	require.NoError(t, err)
	perMile, err := kernel.MoneyFromString("1.50")
	require.NoError(t, err)

	schedule, err := tenant.NewFeeSchedule(baseFee, perMile,
		decimal.NewFromInt(5), decimal.NewFromFloat(1.5))
	require.NoError(t, err)
	return schedule
}

func testTenant(t *testing.T, plan tenant.PlanTier) *tenant.Tenant {
	t.Helper()

	aggregate, err := tenant.NewTenant(kernel.NewUUID(), "Main St Couriers",
		"mainst", "", "mainst", "#336699", plan, testSchedule(t))
	require.NoError(t, err)
	return aggregate
}

func testDetails() delivery.Details {
	return delivery.Details{
		CustomerName:    "Pat Jones",
		CustomerPhone:   "555-0142",
		CustomerEmail:   "pat@example.com",
		PickupAddress:   "12 Mill St",
		DeliveryAddress: "88 Oak Ave",
		RequestedFor:    time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC),
		PaymentMethod:   "card",
	}
}

func testRequest(t *testing.T, tenantID kernel.UUID, customerUserID *kernel.UUID) *delivery.Request {
	t.Helper()

	fee, err := kernel.MoneyFromString("9.50")
	require.NoError(t, err)

	request, err := delivery.NewRequest(kernel.NewUUID(), tenantID, customerUserID,
		testDetails(), decimal.NewFromInt(8), 22, fee, delivery.StatusAvailable,
		false, time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return request
}
