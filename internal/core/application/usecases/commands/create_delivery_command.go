package commands

import (
	"errors"

	"alltown/internal/core/domain/model/delivery"
	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/core/domain/model/tenant"
	"alltown/internal/pkg/errs"
	"alltown/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand represents a customer's request for a new delivery.
// The owning tenant comes from host resolution, never from client input.
//
// Example:
//
//	cmd, err := NewCreateDeliveryCommand(kernel.NewUUID(), resolvedTenant, userID, details, false)
//	if err != nil {
//	    return fmt.Errorf("invalid delivery data: %w", err)
//	}
//
//	handler := NewCreateDeliveryCommandHandler(uowFactory, geoClient, pricer, time.Now)
//	request, err := handler.Handle(ctx, cmd)
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID      kernel.UUID
	tenant          *tenant.Tenant
	customerUserID  *kernel.UUID
	details         delivery.Details
	useFreeDelivery bool

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to register a new delivery
// request. The tenant must be a real resolved tenant; the main site cannot own
// deliveries. Spending a free-delivery credit requires an authenticated
// customer.
func NewCreateDeliveryCommand(
	deliveryID kernel.UUID,
	owner *tenant.Tenant,
	customerUserID *kernel.UUID,
	details delivery.Details,
	useFreeDelivery bool,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setTenant(owner),
		cmd.setCustomerUserID(customerUserID, useFreeDelivery),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	cmd.details = details
	cmd.useFreeDelivery = useFreeDelivery
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier assigned to the new delivery request.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Tenant returns the resolved tenant that will own the delivery request.
func (c CreateDeliveryCommand) Tenant() *tenant.Tenant {
	return c.tenant
}

// CustomerUserID returns the authenticated customer's identifier, or nil.
func (c CreateDeliveryCommand) CustomerUserID() *kernel.UUID {
	return c.customerUserID
}

// Details returns the customer-supplied request details.
func (c CreateDeliveryCommand) Details() delivery.Details {
	return c.details
}

// UseFreeDelivery reports whether a loyalty credit should be spent on this
// request.
func (c CreateDeliveryCommand) UseFreeDelivery() bool {
	return c.useFreeDelivery
}

func (c *CreateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *CreateDeliveryCommand) setTenant(owner *tenant.Tenant) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	if owner.IsMainSite() {
		return errs.NewValueIsInvalidError("the main site cannot own deliveries")
	}
	c.tenant = owner
	return nil
}

func (c *CreateDeliveryCommand) setCustomerUserID(customerUserID *kernel.UUID, useFreeDelivery bool) error {
	if customerUserID != nil {
		if err := customerUserID.Validate(); err != nil {
			return err
		}
	} else if useFreeDelivery {
		return errs.NewValueIsRequiredError("customer user id to spend a free delivery")
	}
	c.customerUserID = customerUserID
	return nil
}
