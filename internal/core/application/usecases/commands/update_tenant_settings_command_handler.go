package commands

import (
	"context"

	"alltown/internal/core/domain/model/tenant"
)

// UpdateTenantSettingsCommandHandler handles administrative tenant updates.
// Every successful update clears the directory cache so no request observes
// settings older than the change.
type UpdateTenantSettingsCommandHandler struct {
	uowFactory TenantUoWFactory
	cache      TenantCacheInvalidator
}

// NewUpdateTenantSettingsCommandHandler creates a handler for tenant updates.
func NewUpdateTenantSettingsCommandHandler(
	uowFactory TenantUoWFactory,
	cache TenantCacheInvalidator,
) UpdateTenantSettingsCommandHandler {
	return UpdateTenantSettingsCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle applies the requested changes and returns the updated tenant.
func (h *UpdateTenantSettingsCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateTenantSettingsCommand,
) (*tenant.Tenant, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.TenantRepository().GetByID(ctx, cmd.TenantID())
	if err != nil {
		return nil, err
	}

	if cmd.BrandColor() != nil {
		aggregate.UpdateBranding(*cmd.BrandColor())
	}

	if cmd.Active() != nil {
		aggregate.SetActive(*cmd.Active())
	}

	if cmd.FeeSchedule() != nil {
		if err = aggregate.ChangeFeeSchedule(*cmd.FeeSchedule()); err != nil {
			return nil, err
		}
	}

	if err = uow.TenantRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.cache.ClearAll()
	return aggregate, nil
}
