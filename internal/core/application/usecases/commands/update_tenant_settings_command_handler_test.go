package commands_test

import (
	"testing"

	"alltown/internal/core/application/usecases/commands"
	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/core/domain/model/tenant"
	"alltown/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateTenantSettingsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	existing := testTenant(t, tenant.PlanStandard)
	color := "#aa0000"
	inactive := false
	cmd, err := commands.NewUpdateTenantSettingsCommand(existing.ID(), &color, &inactive, nil)
	require.NoError(t, err)

	repo := new(MockTenantRepository)
	cache := new(MockCacheInvalidator)
	uow := new(MockTenantUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TenantRepository").Return(repo),
		repo.On("GetByID", mock.Anything, existing.ID()).Return(existing, nil).Once(),
		repo.On("Update", mock.Anything, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		cache.On("ClearAll").Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockTenantUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateTenantSettingsCommandHandler(factory, cache)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "#aa0000", updated.BrandColor())
	assert.False(t, updated.IsActive())
	cache.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestUpdateTenantSettingsCommandHandler_Handle_UnknownTenant(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewUpdateTenantSettingsCommand(id, nil, nil, nil)
	require.NoError(t, err)

	repo := new(MockTenantRepository)
	repo.On("GetByID", mock.Anything, id).
		Return(nil, errs.NewObjectNotFoundError("tenant", id)).Once()
	cache := new(MockCacheInvalidator)
	uow := new(MockTenantUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TenantRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockTenantUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateTenantSettingsCommandHandler(factory, cache)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	cache.AssertNotCalled(t, "ClearAll")
}
