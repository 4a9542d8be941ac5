package commands

import (
	"context"
	"time"

	"alltown/internal/core/domain/model/delivery"
	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/core/domain/services"
	"alltown/internal/core/ports"
)

// CreateDeliveryCommandHandler handles the business logic for delivery
// creation: route estimation, pricing, and the transactional write that may
// also spend a loyalty credit.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	geo        ports.GeoClient
	pricer     services.Pricer
	clock      func() time.Time
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
func NewCreateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	geo ports.GeoClient,
	pricer services.Pricer,
	clock func() time.Time,
) CreateDeliveryCommandHandler {
	if clock == nil {
		clock = time.Now
	}
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		geo:        geo,
		pricer:     pricer,
		clock:      clock,
	}
}

// Handle processes the delivery creation command.
//
// The route is estimated before the transaction opens so a slow or failing
// geocoding provider never holds database locks. The fee is computed from the
// owning tenant's schedule; a spent free-delivery credit waives it entirely
// and is consumed in the same transaction as the insert, so either both
// happen or neither does. The initial status follows the tenant's plan tier.
func (h *CreateDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd CreateDeliveryCommand,
) (*delivery.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	details := cmd.Details()
	route, err := h.geo.EstimateRoute(ctx, details.PickupAddress, details.DeliveryAddress)
	if err != nil {
		return nil, err
	}

	quote, err := h.pricer.Quote(route.DistanceMiles, details.Rush, cmd.Tenant().FeeSchedule())
	if err != nil {
		return nil, err
	}

	fee := quote.Total
	if cmd.UseFreeDelivery() {
		fee = kernel.ZeroMoney()
	}

	request, err := delivery.NewRequest(
		cmd.DeliveryID(),
		cmd.Tenant().ID(),
		cmd.CustomerUserID(),
		details,
		route.DistanceMiles,
		route.DurationMinutes,
		fee,
		delivery.InitialStatus(cmd.Tenant().Plan()),
		cmd.UseFreeDelivery(),
		h.clock(),
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

	if cmd.UseFreeDelivery() {
		if err = uow.LoyaltyLedger().SpendFreeDelivery(ctx, cmd.Tenant().ID(), *cmd.CustomerUserID()); err != nil {
			return nil, err
		}
	}

	if err = uow.DeliveryRepository().Add(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}
