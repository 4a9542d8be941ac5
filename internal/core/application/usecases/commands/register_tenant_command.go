package commands

import (
	"errors"

	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/core/domain/model/tenant"
	"alltown/internal/pkg/errs"
	"alltown/internal/pkg/guard"
)

var ErrRegisterTenantCommandIsNotConstructed = errors.New(
	"RegisterTenantCommand must be created via NewRegisterTenantCommand constructor",
)

// RegisterTenantCommand represents platform onboarding of a new tenant.
type RegisterTenantCommand struct { //nolint:recvcheck //using for validation
	tenantID     kernel.UUID
	companyName  string
	subdomain    string
	customDomain string
	slug         string
	brandColor   string
	plan         tenant.PlanTier
	feeSchedule  tenant.FeeSchedule

	guard guard.ConstructorGuard
}

// NewRegisterTenantCommand creates a command to register a new tenant.
func NewRegisterTenantCommand(
	tenantID kernel.UUID,
	companyName string,
	subdomain string,
	customDomain string,
	slug string,
	brandColor string,
	plan tenant.PlanTier,
	feeSchedule tenant.FeeSchedule,
) (RegisterTenantCommand, error) {
	cmd := RegisterTenantCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setCompanyName(companyName),
		cmd.setPlan(plan),
		cmd.setFeeSchedule(feeSchedule),
	); err != nil {
		return RegisterTenantCommand{}, err
	}

	cmd.subdomain = subdomain
	cmd.customDomain = customDomain
	cmd.slug = slug
	cmd.brandColor = brandColor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterTenantCommand) Validate() error {
	return c.guard.Validate(ErrRegisterTenantCommandIsNotConstructed)
}

// TenantID returns the identifier for the new tenant.
func (c RegisterTenantCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// CompanyName returns the business name.
func (c RegisterTenantCommand) CompanyName() string {
	return c.companyName
}

// Subdomain returns the requested subdomain label, or "".
func (c RegisterTenantCommand) Subdomain() string {
	return c.subdomain
}

// CustomDomain returns the requested custom domain, or "".
func (c RegisterTenantCommand) CustomDomain() string {
	return c.customDomain
}

// Slug returns the requested URL slug, or "".
func (c RegisterTenantCommand) Slug() string {
	return c.slug
}

// BrandColor returns the branding color.
func (c RegisterTenantCommand) BrandColor() string {
	return c.brandColor
}

// Plan returns the subscription tier.
func (c RegisterTenantCommand) Plan() tenant.PlanTier {
	return c.plan
}

// FeeSchedule returns the pricing configuration.
func (c RegisterTenantCommand) FeeSchedule() tenant.FeeSchedule {
	return c.feeSchedule
}

func (c *RegisterTenantCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}

func (c *RegisterTenantCommand) setCompanyName(companyName string) error {
	if companyName == "" {
		return errs.NewValueIsRequiredError("company name")
	}
	c.companyName = companyName
	return nil
}

func (c *RegisterTenantCommand) setPlan(plan tenant.PlanTier) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	c.plan = plan
	return nil
}

func (c *RegisterTenantCommand) setFeeSchedule(feeSchedule tenant.FeeSchedule) error {
	if err := feeSchedule.Validate(); err != nil {
		return err
	}
	c.feeSchedule = feeSchedule
	return nil
}
