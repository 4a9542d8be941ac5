package commands

import (
	"context"
	"fmt"
	"time"

	"alltown/internal/core/domain/model/delivery"
	"alltown/internal/pkg/errs"
)

// ClaimDeliveryCommandHandler handles the business logic for claiming a
// delivery request.
//
// Business rules:
//   - The driver must belong to the request's tenant and be on duty
//   - At most one driver ever holds a claim; concurrent claims are decided
//     by a single conditional write, and losers receive a conflict
//   - A lost race is reported, never silently swapped for success
type ClaimDeliveryCommandHandler struct {
	uowFactory ClaimUoWFactory
	clock      func() time.Time
}

// NewClaimDeliveryCommandHandler creates a handler for claim operations.
func NewClaimDeliveryCommandHandler(uowFactory ClaimUoWFactory, clock func() time.Time) ClaimDeliveryCommandHandler {
	if clock == nil {
		clock = time.Now
	}
	return ClaimDeliveryCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the claim command and returns the claimed request.
func (h *ClaimDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd ClaimDeliveryCommand,
) (*delivery.Request, error) {
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

	profile, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}

	if !profile.BelongsTo(cmd.TenantID()) {
		return nil, errs.NewNotAuthorizedError("driver belongs to another tenant")
	}

	if !profile.IsOnDuty() {
		return nil, errs.NewNotAuthorizedErrorWithCause("driver is off duty",
			fmt.Errorf("driver %s", profile.ID()))
	}

	request, err := uow.DeliveryRepository().Claim(ctx,
		cmd.TenantID(), cmd.DeliveryID(), cmd.DriverID(), h.clock())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}
