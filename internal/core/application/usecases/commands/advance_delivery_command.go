package commands

import (
	"errors"
	"fmt"

	"alltown/internal/core/domain/model/delivery"
	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/pkg/errs"
	"alltown/internal/pkg/guard"
)

var ErrAdvanceDeliveryCommandIsNotConstructed = errors.New(
	"AdvanceDeliveryCommand must be created via NewAdvanceDeliveryCommand constructor",
)

// AdvanceDeliveryCommand represents a request to move a delivery to a target
// status: starting, completing, cancelling, or releasing it back to the pool.
//
// Example:
//
//	cmd, err := NewAdvanceDeliveryCommand(tenantID, deliveryID, actorID,
//	    delivery.StatusCompleted, "left at the back door")
//	if err != nil {
//	    return err
//	}
//
//	handler := NewAdvanceDeliveryCommandHandler(uowFactory)
//	request, err := handler.Handle(ctx, cmd)
type AdvanceDeliveryCommand struct { //nolint:recvcheck //using for validation
	tenantID    kernel.UUID
	deliveryID  kernel.UUID
	actorID     kernel.UUID
	target      delivery.Status
	driverNotes string

	guard guard.ConstructorGuard
}

// NewAdvanceDeliveryCommand creates a command to transition a delivery
// request. The target must be available (release), in_progress, completed, or
// cancelled; pending and claimed are never reachable through this command.
func NewAdvanceDeliveryCommand(
	tenantID kernel.UUID,
	deliveryID kernel.UUID,
	actorID kernel.UUID,
	target delivery.Status,
	driverNotes string,
) (AdvanceDeliveryCommand, error) {
	cmd := AdvanceDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setDeliveryID(deliveryID),
		cmd.setActorID(actorID),
		cmd.setTarget(target),
	); err != nil {
		return AdvanceDeliveryCommand{}, err
	}

	cmd.driverNotes = driverNotes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDeliveryCommandIsNotConstructed)
}

// TenantID returns the tenant the transition is scoped to.
func (c AdvanceDeliveryCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// DeliveryID returns the delivery request being transitioned.
func (c AdvanceDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// ActorID returns the profile performing the transition.
func (c AdvanceDeliveryCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Target returns the requested destination status.
func (c AdvanceDeliveryCommand) Target() delivery.Status {
	return c.target
}

// DriverNotes returns the notes to record with the transition, if any.
func (c AdvanceDeliveryCommand) DriverNotes() string {
	return c.driverNotes
}

func (c *AdvanceDeliveryCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *AdvanceDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *AdvanceDeliveryCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}

func (c *AdvanceDeliveryCommand) setTarget(target delivery.Status) error {
	switch target {
	case delivery.StatusAvailable, delivery.StatusInProgress,
		delivery.StatusCompleted, delivery.StatusCancelled:
		c.target = target
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("target status",
			fmt.Errorf("%s is not reachable through a status update", target))
	}
}
