package commands

import (
	"errors"

	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/pkg/guard"
)

var ErrClaimDeliveryCommandIsNotConstructed = errors.New(
	"ClaimDeliveryCommand must be created via NewClaimDeliveryCommand constructor",
)

// ClaimDeliveryCommand represents a driver's attempt to claim an available
// delivery request in their tenant.
type ClaimDeliveryCommand struct { //nolint:recvcheck //using for validation
	tenantID   kernel.UUID
	deliveryID kernel.UUID
	driverID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimDeliveryCommand creates a command to claim a delivery request.
func NewClaimDeliveryCommand(tenantID, deliveryID, driverID kernel.UUID) (ClaimDeliveryCommand, error) {
	cmd := ClaimDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setDeliveryID(deliveryID),
		cmd.setDriverID(driverID),
	); err != nil {
		return ClaimDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrClaimDeliveryCommandIsNotConstructed)
}

// TenantID returns the tenant the claim is scoped to.
func (c ClaimDeliveryCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// DeliveryID returns the delivery request being claimed.
func (c ClaimDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// DriverID returns the claiming driver's profile identifier.
func (c ClaimDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *ClaimDeliveryCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *ClaimDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *ClaimDeliveryCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}
