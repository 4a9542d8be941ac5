package commands

import (
	"context"

	"alltown/internal/core/domain/model/tenant"
)

// RegisterTenantCommandHandler handles platform onboarding of new tenants.
// Uniqueness of subdomain, custom domain, and slug is enforced by the
// persistence layer; a collision surfaces as a conflict.
type RegisterTenantCommandHandler struct {
	uowFactory TenantUoWFactory
	cache      TenantCacheInvalidator
}

// NewRegisterTenantCommandHandler creates a handler for tenant registration.
func NewRegisterTenantCommandHandler(
	uowFactory TenantUoWFactory,
	cache TenantCacheInvalidator,
) RegisterTenantCommandHandler {
	return RegisterTenantCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle registers the tenant and clears the directory cache so the new
// routing attributes take effect immediately.
func (h *RegisterTenantCommandHandler) Handle(ctx context.Context, cmd RegisterTenantCommand) (*tenant.Tenant, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := tenant.NewTenant(
		cmd.TenantID(),
		cmd.CompanyName(),
		cmd.Subdomain(),
		cmd.CustomDomain(),
		cmd.Slug(),
		cmd.BrandColor(),
		cmd.Plan(),
		cmd.FeeSchedule(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TenantRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.cache.ClearAll()
	return aggregate, nil
}
