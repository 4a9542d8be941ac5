package tenantdir_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"alltown/internal/core/application/tenantdir"
	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/core/domain/model/tenant"
	"alltown/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apex = "alltown.test"

// fakeTenantRepository counts lookups so tests can assert cache behavior.
type fakeTenantRepository struct {
	byID        map[string]*tenant.Tenant
	bySubdomain map[string]*tenant.Tenant
	byDomain    map[string]*tenant.Tenant
	calls       int
	failWith    error
}

func newFakeTenantRepository() *fakeTenantRepository {
	return &fakeTenantRepository{
		byID:        make(map[string]*tenant.Tenant),
		bySubdomain: make(map[string]*tenant.Tenant),
		byDomain:    make(map[string]*tenant.Tenant),
	}
}

func (f *fakeTenantRepository) add(t *tenant.Tenant) {
	f.byID[t.ID().String()] = t
	if t.Subdomain() != "" {
		f.bySubdomain[t.Subdomain()] = t
	}
	if t.CustomDomain() != "" {
		f.byDomain[t.CustomDomain()] = t
	}
}

func (f *fakeTenantRepository) Add(_ context.Context, _ *tenant.Tenant) error    { return nil }
func (f *fakeTenantRepository) Update(_ context.Context, _ *tenant.Tenant) error { return nil }

func (f *fakeTenantRepository) GetByID(_ context.Context, id kernel.UUID) (*tenant.Tenant, error) {
	return f.lookup(f.byID, id.String())
}

func (f *fakeTenantRepository) GetBySubdomain(_ context.Context, subdomain string) (*tenant.Tenant, error) {
	return f.lookup(f.bySubdomain, subdomain)
}

func (f *fakeTenantRepository) GetByCustomDomain(_ context.Context, domain string) (*tenant.Tenant, error) {
	return f.lookup(f.byDomain, domain)
}

func (f *fakeTenantRepository) lookup(m map[string]*tenant.Tenant, key string) (*tenant.Tenant, error) {
	f.calls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	if t, ok := m[key]; ok {
		return t, nil
	}
	return nil, errs.NewObjectNotFoundError("tenant", key)
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestTenant(t *testing.T, subdomain, customDomain string) *tenant.Tenant {
	t.Helper()

	baseFee, err := kernel.MoneyFromString("5.00")
	require.NoError(t, err)
	schedule, err := tenant.NewFeeSchedule(baseFee, baseFee,
		decimal.NewFromInt(5), decimal.NewFromInt(1))
	require.NoError(t, err)

	aggregate, err := tenant.NewTenant(kernel.NewUUID(), "Main St Couriers",
		subdomain, customDomain, subdomain, "#336699", tenant.PlanStandard, schedule)
	require.NoError(t, err)
	return aggregate
}

func newTestDirectory(t *testing.T, repo *fakeTenantRepository, clock *fakeClock) *tenantdir.Directory {
	t.Helper()

	directory, err := tenantdir.NewDirectory(repo, tenantdir.ModeProduction, apex,
		30*time.Second, clock.Now, nil)
	require.NoError(t, err)
	return directory
}

func TestDirectory_Resolve(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}

	t.Run("apex and www resolve to the main site without a lookup", func(t *testing.T) {
		repo := newFakeTenantRepository()
		directory := newTestDirectory(t, repo, clock)

		for _, host := range []string{apex, "www." + apex, "WWW." + apex + ":8080"} {
			resolved, err := directory.Resolve(ctx, host)
			require.NoError(t, err, host)
			assert.True(t, resolved.IsMainSite(), host)
		}
		assert.Zero(t, repo.calls)
	})

	t.Run("subdomain resolves to its tenant", func(t *testing.T) {
		repo := newFakeTenantRepository()
		shop := newTestTenant(t, "mainst", "")
		repo.add(shop)
		directory := newTestDirectory(t, repo, clock)

		resolved, err := directory.Resolve(ctx, "mainst."+apex)

		require.NoError(t, err)
		assert.True(t, resolved.IsEqual(shop))
	})

	t.Run("custom domain resolves to its tenant", func(t *testing.T) {
		repo := newFakeTenantRepository()
		shop := newTestTenant(t, "", "orders.mainst.example")
		repo.add(shop)
		directory := newTestDirectory(t, repo, clock)

		resolved, err := directory.Resolve(ctx, "orders.mainst.example")

		require.NoError(t, err)
		assert.True(t, resolved.IsEqual(shop))
	})

	t.Run("unknown subdomain is not found", func(t *testing.T) {
		repo := newFakeTenantRepository()
		directory := newTestDirectory(t, repo, clock)

		_, err := directory.Resolve(ctx, "ghost."+apex)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("nested subdomain is not found", func(t *testing.T) {
		repo := newFakeTenantRepository()
		repo.add(newTestTenant(t, "mainst", ""))
		directory := newTestDirectory(t, repo, clock)

		_, err := directory.Resolve(ctx, "a.mainst."+apex)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Zero(t, repo.calls)
	})

	t.Run("inactive tenant is not found", func(t *testing.T) {
		repo := newFakeTenantRepository()
		shop := newTestTenant(t, "closed", "")
		shop.SetActive(false)
		repo.add(shop)
		directory := newTestDirectory(t, repo, clock)

		_, err := directory.Resolve(ctx, "closed."+apex)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("repository failure surfaces as dependency error", func(t *testing.T) {
		repo := newFakeTenantRepository()
		repo.failWith = errors.New("connection refused")
		directory := newTestDirectory(t, repo, clock)

		_, err := directory.Resolve(ctx, "mainst."+apex)

		require.ErrorIs(t, err, errs.ErrDependencyUnavailable)
		require.NotErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestDirectory_ResolveCaching(t *testing.T) {
	ctx := context.Background()

	t.Run("second resolve within the TTL issues no lookup", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}
		repo := newFakeTenantRepository()
		repo.add(newTestTenant(t, "mainst", ""))
		directory := newTestDirectory(t, repo, clock)

		_, err := directory.Resolve(ctx, "mainst."+apex)
		require.NoError(t, err)
		_, err = directory.Resolve(ctx, "mainst."+apex)
		require.NoError(t, err)

		assert.Equal(t, 1, repo.calls)
	})

	t.Run("expired entry is reloaded", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}
		repo := newFakeTenantRepository()
		repo.add(newTestTenant(t, "mainst", ""))
		directory := newTestDirectory(t, repo, clock)

		_, err := directory.Resolve(ctx, "mainst."+apex)
		require.NoError(t, err)

		clock.advance(31 * time.Second)
		_, err = directory.Resolve(ctx, "mainst."+apex)
		require.NoError(t, err)

		assert.Equal(t, 2, repo.calls)
	})

	t.Run("clear all forces a reload before the TTL", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}
		repo := newFakeTenantRepository()
		repo.add(newTestTenant(t, "mainst", ""))
		directory := newTestDirectory(t, repo, clock)

		_, err := directory.Resolve(ctx, "mainst."+apex)
		require.NoError(t, err)

		directory.ClearAll()
		_, err = directory.Resolve(ctx, "mainst."+apex)
		require.NoError(t, err)

		assert.Equal(t, 2, repo.calls)
	})

	t.Run("subdomain and custom domain cache independently", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}
		repo := newFakeTenantRepository()
		repo.add(newTestTenant(t, "mainst", "orders.mainst.example"))
		directory := newTestDirectory(t, repo, clock)

		_, err := directory.Resolve(ctx, "mainst."+apex)
		require.NoError(t, err)
		_, err = directory.Resolve(ctx, "orders.mainst.example")
		require.NoError(t, err)

		assert.Equal(t, 2, repo.calls)
	})
}

func TestDirectory_ResolveByID(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}

	t.Run("resolves and caches by id", func(t *testing.T) {
		repo := newFakeTenantRepository()
		shop := newTestTenant(t, "mainst", "")
		repo.add(shop)
		directory := newTestDirectory(t, repo, clock)

		resolved, err := directory.ResolveByID(ctx, shop.ID())
		require.NoError(t, err)
		assert.True(t, resolved.IsEqual(shop))

		_, err = directory.ResolveByID(ctx, shop.ID())
		require.NoError(t, err)
		assert.Equal(t, 1, repo.calls)
	})

	t.Run("main site id needs no repository", func(t *testing.T) {
		repo := newFakeTenantRepository()
		directory := newTestDirectory(t, repo, clock)

		resolved, err := directory.ResolveByID(ctx, tenant.MainSite().ID())

		require.NoError(t, err)
		assert.True(t, resolved.IsMainSite())
		assert.Zero(t, repo.calls)
	})
}

func TestDirectory_DevelopmentMode(t *testing.T) {
	repo := newFakeTenantRepository()
	repo.add(newTestTenant(t, "mainst", ""))

	directory, err := tenantdir.NewDirectory(repo, tenantdir.ModeDevelopment, apex,
		30*time.Second, nil, nil)
	require.NoError(t, err)

	resolved, err := directory.Resolve(context.Background(), "mainst."+apex)

	require.NoError(t, err)
	assert.True(t, resolved.IsMainSite())
	assert.Zero(t, repo.calls)
}
