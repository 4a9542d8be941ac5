package tenant

import (
	"errors"

	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrTenantIsNotConstructed is returned when a Tenant instance was not
	// created through the NewTenant or RestoreTenant factory methods.
	ErrTenantIsNotConstructed = errors.New("Tenant must be created via NewTenant or RestoreTenant")

	// mainSiteID identifies the synthetic platform main-site tenant. It is a
	// fixed well-known value so that marketing traffic is stable across
	// processes and never collides with a real tenant row.
	mainSiteID = "00000000-0000-0000-0000-000000000001"
)

// Tenant is the aggregate root for an isolated business instance. It carries
// the routing attributes used by the tenant directory (subdomain, custom
// domain, slug), branding, the plan tier, and the fee schedule consumed by the
// pricing engine.
//
// Tenants are created by platform onboarding and mutated only through
// administrative operations; the delivery core reads them continuously but
// never changes them.
type Tenant struct {
	id           kernel.UUID
	companyName  string
	subdomain    string
	customDomain string
	slug         string
	brandColor   string
	active       bool
	plan         PlanTier
	feeSchedule  FeeSchedule

	isConstructed bool
}

// NewTenant creates a new active tenant with validation. Subdomain, custom
// domain, slug, and brand color are optional; global uniqueness of the routing
// attributes is enforced by the persistence layer.
func NewTenant(
	id kernel.UUID,
	companyName string,
	subdomain string,
	customDomain string,
	slug string,
	brandColor string,
	plan PlanTier,
	feeSchedule FeeSchedule,
) (*Tenant, error) {
	t := &Tenant{
		active:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setCompanyName(companyName),
		t.setPlan(plan),
		t.setFeeSchedule(feeSchedule),
	); err != nil {
		return nil, err
	}

	t.subdomain = subdomain
	t.customDomain = customDomain
	t.slug = slug
	t.brandColor = brandColor

	return t, nil
}

// RestoreTenant reconstructs a tenant from persistence, including its active
// flag. Used by repository implementations only.
func RestoreTenant(
	id kernel.UUID,
	companyName string,
	subdomain string,
	customDomain string,
	slug string,
	brandColor string,
	active bool,
	plan PlanTier,
	feeSchedule FeeSchedule,
) (*Tenant, error) {
	t, err := NewTenant(id, companyName, subdomain, customDomain, slug, brandColor, plan, feeSchedule)
	if err != nil {
		return nil, err
	}

	t.active = active
	return t, nil
}

// MainSite returns the synthetic pseudo-tenant representing the platform's
// own marketing/landing site. It is always active, carries no fee schedule
// semantics of its own, and must never own delivery requests.
func MainSite() *Tenant {
	id, _ := kernel.UUIDFromString(mainSiteID)
	baseFee := kernel.ZeroMoney()
	schedule, _ := NewFeeSchedule(baseFee, baseFee, decimal.Zero, decimal.NewFromInt(1))

	return &Tenant{
		id:            id,
		companyName:   "Platform Main Site",
		active:        true,
		plan:          PlanStandard,
		feeSchedule:   schedule,
		isConstructed: true,
	}
}

// Validate ensures the Tenant instance was properly constructed.
func (t *Tenant) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTenantIsNotConstructed
	}
	return nil
}

// IsEqual compares two tenants by their unique identifiers.
func (t *Tenant) IsEqual(other *Tenant) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// IsMainSite reports whether this is the synthetic main-site pseudo-tenant.
func (t *Tenant) IsMainSite() bool {
	return t.id.String() == mainSiteID
}

// ID returns the tenant's unique identifier.
func (t *Tenant) ID() kernel.UUID {
	return t.id
}

// CompanyName returns the business name.
func (t *Tenant) CompanyName() string {
	return t.companyName
}

// Subdomain returns the tenant's subdomain under the platform apex, or ""
// when none is configured.
func (t *Tenant) Subdomain() string {
	return t.subdomain
}

// CustomDomain returns the tenant's fully custom domain, or "" when none is
// configured.
func (t *Tenant) CustomDomain() string {
	return t.customDomain
}

// Slug returns the tenant's URL slug, or "" when none is configured.
func (t *Tenant) Slug() string {
	return t.slug
}

// BrandColor returns the tenant's branding color.
func (t *Tenant) BrandColor() string {
	return t.brandColor
}

// IsActive reports whether the tenant accepts traffic.
func (t *Tenant) IsActive() bool {
	return t.active
}

// Plan returns the tenant's subscription tier.
func (t *Tenant) Plan() PlanTier {
	return t.plan
}

// FeeSchedule returns the tenant's pricing configuration.
func (t *Tenant) FeeSchedule() FeeSchedule {
	return t.feeSchedule
}

// UpdateBranding changes the brand color. Administrative operation; callers
// must clear the tenant directory cache afterwards.
func (t *Tenant) UpdateBranding(brandColor string) {
	t.brandColor = brandColor
}

// SetActive toggles whether the tenant accepts traffic.
func (t *Tenant) SetActive(active bool) {
	t.active = active
}

// ChangeFeeSchedule replaces the pricing configuration.
func (t *Tenant) ChangeFeeSchedule(feeSchedule FeeSchedule) error {
	return t.setFeeSchedule(feeSchedule)
}

func (t *Tenant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Tenant) setCompanyName(companyName string) error {
	if companyName == "" {
		return errs.NewValueIsRequiredError("company name")
	}
	t.companyName = companyName
	return nil
}

func (t *Tenant) setPlan(plan PlanTier) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	t.plan = plan
	return nil
}

func (t *Tenant) setFeeSchedule(feeSchedule FeeSchedule) error {
	if err := feeSchedule.Validate(); err != nil {
		return err
	}
	t.feeSchedule = feeSchedule
	return nil
}
