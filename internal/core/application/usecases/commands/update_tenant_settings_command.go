package commands

import (
	"errors"

	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/core/domain/model/tenant"
	"alltown/internal/pkg/guard"
)

var ErrUpdateTenantSettingsCommandIsNotConstructed = errors.New(
	"UpdateTenantSettingsCommand must be created via NewUpdateTenantSettingsCommand constructor",
)

// UpdateTenantSettingsCommand represents an administrative change to a
// tenant's branding, active flag, or fee schedule. Unset optional fields
// leave the current value untouched.
type UpdateTenantSettingsCommand struct { //nolint:recvcheck //using for validation
	tenantID    kernel.UUID
	brandColor  *string
	active      *bool
	feeSchedule *tenant.FeeSchedule

	guard guard.ConstructorGuard
}

// NewUpdateTenantSettingsCommand creates a command to update tenant settings.
// Nil pointers mean "leave unchanged".
func NewUpdateTenantSettingsCommand(
	tenantID kernel.UUID,
	brandColor *string,
	active *bool,
	feeSchedule *tenant.FeeSchedule,
) (UpdateTenantSettingsCommand, error) {
	cmd := UpdateTenantSettingsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setFeeSchedule(feeSchedule),
	); err != nil {
		return UpdateTenantSettingsCommand{}, err
	}

	cmd.brandColor = brandColor
	cmd.active = active
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateTenantSettingsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTenantSettingsCommandIsNotConstructed)
}

// TenantID returns the tenant being updated.
func (c UpdateTenantSettingsCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// BrandColor returns the new brand color, or nil to leave unchanged.
func (c UpdateTenantSettingsCommand) BrandColor() *string {
	return c.brandColor
}

// Active returns the new active flag, or nil to leave unchanged.
func (c UpdateTenantSettingsCommand) Active() *bool {
	return c.active
}

// FeeSchedule returns the new pricing configuration, or nil to leave unchanged.
func (c UpdateTenantSettingsCommand) FeeSchedule() *tenant.FeeSchedule {
	return c.feeSchedule
}

func (c *UpdateTenantSettingsCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *UpdateTenantSettingsCommand) setFeeSchedule(feeSchedule *tenant.FeeSchedule) error {
	if feeSchedule != nil {
		if err := feeSchedule.Validate(); err != nil {
			return err
		}
	}
	c.feeSchedule = feeSchedule
	return nil
}
