package cmd

import (
	"log/slog"
	"time"

	"alltown/internal/adapters/out/geo"
	"alltown/internal/adapters/out/postgres"
	"alltown/internal/core/application/tenantdir"
	"alltown/internal/core/application/usecases/commands"
	"alltown/internal/core/application/usecases/queries"
	"alltown/internal/core/domain/services"
	"alltown/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, application services, and use case
// handlers from a validated Config.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	directory  *tenantdir.Directory
	geoClient  *geo.Client
	pricer     services.Pricer
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph. The tenant directory and geo
// client are constructed eagerly so misconfiguration fails at startup, not on
// the first request.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB, config.LoyaltyThreshold)

	directory, err := tenantdir.NewDirectory(
		uowFactory.Create().TenantRepository(),
		config.AppMode,
		config.TenantApexDomain,
		config.TenantCacheTTL,
		nil,
		logger,
	)
	if err != nil {
		return CompositionRoot{}, err
	}

	geoClient, err := geo.NewClient(config.GeoBaseURL, nil, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *uowFactory,
		directory:  directory,
		geoClient:  geoClient,
		pricer:     services.NewPricer(),
		logger:     logger,
	}, nil
}

// TenantDirectory returns the shared host-to-tenant resolver.
func (c *CompositionRoot) TenantDirectory() *tenantdir.Directory {
	return c.directory
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryCommandHandler(f, c.geoClient, c.pricer, time.Now)
}

func (c *CompositionRoot) CreateClaimDeliveryCommandHandler() commands.ClaimDeliveryCommandHandler {
	var f commands.ClaimUoWFactory = FuncClaimUoWFactory(func() commands.ClaimUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimDeliveryCommandHandler(f, time.Now)
}

func (c *CompositionRoot) CreateAdvanceDeliveryCommandHandler() commands.AdvanceDeliveryCommandHandler {
	var f commands.AdvanceUoWFactory = FuncAdvanceUoWFactory(func() commands.AdvanceUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateReleaseStaleClaimsCommandHandler() commands.ReleaseStaleClaimsCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseStaleClaimsCommandHandler(f, time.Now)
}

func (c *CompositionRoot) CreateRegisterTenantCommandHandler() commands.RegisterTenantCommandHandler {
	var f commands.TenantUoWFactory = FuncTenantUoWFactory(func() commands.TenantUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterTenantCommandHandler(f, c.directory)
}

func (c *CompositionRoot) CreateUpdateTenantSettingsCommandHandler() commands.UpdateTenantSettingsCommandHandler {
	var f commands.TenantUoWFactory = FuncTenantUoWFactory(func() commands.TenantUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateTenantSettingsCommandHandler(f, c.directory)
}

func (c *CompositionRoot) CreateListAvailableDeliveriesQueryHandler() queries.ListAvailableDeliveriesQueryHandler {
	return queries.NewListAvailableDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

// CreateJobManager wires all background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReleaseStaleClaimsCommandHandler(), c.config.StaleClaimAge, c.logger)
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncClaimUoWFactory func() commands.ClaimUoW

func (f FuncClaimUoWFactory) Create() commands.ClaimUoW {
	return f()
}

type FuncAdvanceUoWFactory func() commands.AdvanceUoW

func (f FuncAdvanceUoWFactory) Create() commands.AdvanceUoW {
	return f()
}

type FuncTenantUoWFactory func() commands.TenantUoW

func (f FuncTenantUoWFactory) Create() commands.TenantUoW {
	return f()
}
