package commands_test

import (
	"testing"
	"time"

	"alltown/internal/core/application/usecases/commands"
	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReleaseStaleClaimsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReleaseStaleClaimsCommand(30 * time.Minute)
	require.NoError(t, err)

	released := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("ReleaseStaleClaims", mock.Anything, testNow.Add(-30*time.Minute)).
			Return(released, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReleaseStaleClaimsCommandHandler(factory, testClock)
	got, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestNewReleaseStaleClaimsCommand_RejectsNonPositiveAge(t *testing.T) {
	_, err := commands.NewReleaseStaleClaimsCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
