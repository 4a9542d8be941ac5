// Package tenantrepo provides data transfer objects and mapping functions
// for tenant persistence. Routing attributes (subdomain, custom domain, slug)
// carry partial unique indexes so the database is the single authority on
// their global uniqueness.
package tenantrepo

import (
	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/core/domain/model/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TenantDTO represents the database structure for persisting tenant
// aggregates. Unset routing attributes are stored as NULL so the unique
// indexes ignore them.
type TenantDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyName     string
	Subdomain       *string `gorm:"uniqueIndex"`
	CustomDomain    *string `gorm:"uniqueIndex"`
	Slug            *string `gorm:"uniqueIndex"`
	BrandColor      string
	Active          bool
	Plan            string          `gorm:"type:varchar(16)"`
	BaseFee         decimal.Decimal `gorm:"type:numeric(10,2)"`
	PricePerMile    decimal.Decimal `gorm:"type:numeric(10,2)"`
	BaseRadiusMiles decimal.Decimal `gorm:"type:numeric(8,2)"`
	RushMultiplier  decimal.Decimal `gorm:"type:numeric(4,2)"`
}

// TableName specifies the database table name for tenants.
func (TenantDTO) TableName() string {
	return "tenants"
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// fromDomain converts a tenant aggregate to its database representation.
func fromDomain(aggregate *tenant.Tenant) TenantDTO {
	schedule := aggregate.FeeSchedule()
	return TenantDTO{
		ID:              aggregate.ID().Bytes(),
		CompanyName:     aggregate.CompanyName(),
		Subdomain:       optional(aggregate.Subdomain()),
		CustomDomain:    optional(aggregate.CustomDomain()),
		Slug:            optional(aggregate.Slug()),
		BrandColor:      aggregate.BrandColor(),
		Active:          aggregate.IsActive(),
		Plan:            aggregate.Plan().String(),
		BaseFee:         schedule.BaseFee().Decimal(),
		PricePerMile:    schedule.PricePerMile().Decimal(),
		BaseRadiusMiles: schedule.BaseRadiusMiles(),
		RushMultiplier:  schedule.RushMultiplier(),
	}
}

// toDomain converts a database DTO to a tenant aggregate.
func toDomain(dto TenantDTO) (*tenant.Tenant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	plan, err := tenant.PlanTierFromString(dto.Plan)
	if err != nil {
		return nil, err
	}

	baseFee, err := kernel.NewMoney(dto.BaseFee)
	if err != nil {
		return nil, err
	}

	pricePerMile, err := kernel.NewMoney(dto.PricePerMile)
	if err != nil {
		return nil, err
	}

	schedule, err := tenant.NewFeeSchedule(baseFee, pricePerMile, dto.BaseRadiusMiles, dto.RushMultiplier)
	if err != nil {
		return nil, err
	}

	return tenant.RestoreTenant(id, dto.CompanyName, orEmpty(dto.Subdomain),
		orEmpty(dto.CustomDomain), orEmpty(dto.Slug), dto.BrandColor,
		dto.Active, plan, schedule)
}
