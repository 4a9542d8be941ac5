package commands

import (
	"context"
	"time"

	"alltown/internal/core/domain/model/kernel"
)

// ReleaseStaleClaimsCommandHandler periodically returns abandoned claims to
// the available pool so a driver who claims and disappears does not strand
// the request.
type ReleaseStaleClaimsCommandHandler struct {
	uowFactory DeliveryUoWFactory
	clock      func() time.Time
}

// NewReleaseStaleClaimsCommandHandler creates a handler for the stale-claim sweep.
func NewReleaseStaleClaimsCommandHandler(
	uowFactory DeliveryUoWFactory,
	clock func() time.Time,
) ReleaseStaleClaimsCommandHandler {
	if clock == nil {
		clock = time.Now
	}
	return ReleaseStaleClaimsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle releases every claim older than the command's age that never moved
// to in progress, and returns the ids of the released requests.
func (h *ReleaseStaleClaimsCommandHandler) Handle(
	ctx context.Context,
	cmd ReleaseStaleClaimsCommand,
) ([]kernel.UUID, error) {
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

	cutoff := h.clock().Add(-cmd.MaxClaimAge())
	released, err := uow.DeliveryRepository().ReleaseStaleClaims(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return released, nil
}
