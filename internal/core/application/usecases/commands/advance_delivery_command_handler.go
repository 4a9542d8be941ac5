package commands

import (
	"context"

	"alltown/internal/core/domain/model/delivery"
	"alltown/internal/core/domain/model/driver"
	"alltown/internal/pkg/errs"
)

// AdvanceDeliveryCommandHandler handles the business logic for delivery
// lifecycle transitions.
//
// Business rules:
//   - Drivers may only move their own claimed request forward or release it
//   - Dispatchers and admins may force any legal transition, including cancel
//   - Completion credits the customer's loyalty account in the same
//     transaction; a retried completion never credits twice
type AdvanceDeliveryCommandHandler struct {
	uowFactory AdvanceUoWFactory
}

// NewAdvanceDeliveryCommandHandler creates a handler for lifecycle transitions.
func NewAdvanceDeliveryCommandHandler(uowFactory AdvanceUoWFactory) AdvanceDeliveryCommandHandler {
	return AdvanceDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transition command and returns the updated request.
func (h *AdvanceDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceDeliveryCommand,
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

	actor, err := uow.DriverRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return nil, err
	}

	if !actor.BelongsTo(cmd.TenantID()) {
		return nil, errs.NewNotAuthorizedError("actor belongs to another tenant")
	}

	request, err := uow.DeliveryRepository().Get(ctx, cmd.TenantID(), cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	if err = authorizeTransition(actor, request, cmd.Target()); err != nil {
		return nil, err
	}

	if err = applyTransition(request, cmd.Target()); err != nil {
		return nil, err
	}

	if cmd.DriverNotes() != "" {
		request.RecordDriverNotes(cmd.DriverNotes())
	}

	if cmd.Target() == delivery.StatusCompleted && request.CustomerUserID() != nil {
		err = uow.LoyaltyLedger().CreditCompletion(ctx,
			request.TenantID(), *request.CustomerUserID(), request.ID())
		if err != nil {
			return nil, err
		}
	}

	if err = uow.DeliveryRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}

// authorizeTransition enforces who may move a request where. Managers may
// force anything the state machine allows; a driver is limited to the request
// they currently hold.
func authorizeTransition(actor *driver.Profile, request *delivery.Request, target delivery.Status) error {
	if actor.Role().CanManage() {
		return nil
	}

	if target == delivery.StatusCancelled {
		return errs.NewNotAuthorizedError("only dispatchers and admins may cancel")
	}

	if target == delivery.StatusAvailable && request.Status() == delivery.StatusPending {
		return errs.NewNotAuthorizedError("only dispatchers and admins may approve pending requests")
	}

	claimedBy := request.ClaimedBy()
	if claimedBy == nil || !claimedBy.IsEqual(actor.ID()) {
		return errs.NewNotAuthorizedError("request is not claimed by this driver")
	}

	return nil
}

// applyTransition maps the target status onto the aggregate's transition
// methods. An "available" target means approval for a pending request and
// release for a claimed one.
func applyTransition(request *delivery.Request, target delivery.Status) error {
	switch target {
	case delivery.StatusAvailable:
		if request.Status() == delivery.StatusPending {
			return request.MakeAvailable()
		}
		return request.Release()
	case delivery.StatusInProgress:
		return request.Start()
	case delivery.StatusCompleted:
		return request.Complete()
	case delivery.StatusCancelled:
		return request.Cancel()
	default:
		return errs.NewValueIsInvalidError("target status")
	}
}
