package ports

import (
	"context"

	"alltown/internal/core/domain/model/kernel"
	"alltown/internal/core/domain/model/tenant"
)

// TenantRepository defines the persistence contract for tenant aggregates.
// Subdomain, custom domain, and slug are unique across all tenants; Add and
// Update surface a conflict error when a write would violate that.
type TenantRepository interface {
	// Add persists a new tenant aggregate.
	Add(ctx context.Context, aggregate *tenant.Tenant) error

	// Update persists changes to an existing tenant aggregate.
	Update(ctx context.Context, aggregate *tenant.Tenant) error

	// GetByID retrieves a tenant by its unique identifier.
	GetByID(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error)

	// GetBySubdomain retrieves a tenant by its subdomain label.
	GetBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error)

	// GetByCustomDomain retrieves a tenant by an exact custom domain match.
	GetByCustomDomain(ctx context.Context, domain string) (*tenant.Tenant, error)
}
